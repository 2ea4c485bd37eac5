package registry

import (
	"time"

	"github.com/holiman/uint256"
)

// EventType is an enum-like string type for registry notifications.
type EventType string

const (
	EventMasterSetup   EventType = "MasterSetup"
	EventOwnerAddition EventType = "OwnerAddition"
	EventOwnerRemoval  EventType = "OwnerRemoval"
	EventTransfer      EventType = "Transfer"
)

// Event describes one successful state transition. Account is the master for
// MasterSetup, the owner for OwnerAddition/OwnerRemoval, and the receiver for
// Transfer. Amount is set only on Transfer events.
type Event struct {
	Seq     uint64
	Type    EventType
	Account Address
	Amount  *uint256.Int
	At      time.Time
}

// Sink receives events as they are emitted, in emission order. Publish is
// invoked while the registry lock is held; implementations must not call
// back into the registry.
type Sink interface {
	Publish(Event)
}
