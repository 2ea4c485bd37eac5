package registry

import (
	"fmt"
	"sync"
	"time"

	"github.com/holiman/uint256"
)

const (
	// MasterSeedShare is minted to the master at construction.
	MasterSeedShare = 10_000_000
	// OwnerSeedShare is minted to each account the first time it is added as
	// an owner.
	OwnerSeedShare = 5_000_000
)

// Registry is the share ledger and owner-set manager. One master account is
// fixed at construction; owners are added and removed by the master; share
// moves between accounts under role checks. Every mutating operation either
// fully applies or fails with a typed error and no state change.
//
// A single RWMutex serializes mutations, which keeps the conservation and
// membership invariants intact on multi-threaded hosts. Reads only take the
// read lock and never block each other.
type Registry struct {
	mu sync.RWMutex

	master    Address
	ownerList []Address
	owners    map[Address]bool
	shares    map[Address]*uint256.Int

	journal []Event
	seq     uint64
	sink    Sink
}

// New constructs the registry with the given master, mints the master seed
// share and emits MasterSetup. The master assignment is permanent. Sink may
// be nil.
func New(master Address, sink Sink) (*Registry, error) {
	if master.IsZero() {
		return nil, fmt.Errorf("master: %w", ErrInvalidArgument)
	}

	r := &Registry{
		master: master,
		owners: make(map[Address]bool),
		shares: make(map[Address]*uint256.Int),
		sink:   sink,
	}
	r.shares[master] = uint256.NewInt(MasterSeedShare)
	r.emit(Event{Type: EventMasterSetup, Account: master})
	return r, nil
}

// Master returns the privileged account fixed at construction.
func (r *Registry) Master() Address {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.master
}

// Owners returns a snapshot of the owner set in its current internal order.
// The order is insertion order disturbed by removals (see RemoveOwner).
func (r *Registry) Owners() []Address {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Address, len(r.ownerList))
	copy(out, r.ownerList)
	return out
}

// IsOwner reports whether addr is a current member of the owner set.
func (r *Registry) IsOwner(addr Address) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.owners[addr]
}

// Share returns addr's balance, zero for accounts that were never seeded.
func (r *Registry) Share(addr Address) *uint256.Int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if bal, ok := r.shares[addr]; ok {
		return bal.Clone()
	}
	return uint256.NewInt(0)
}

// Events returns a snapshot of the journal in emission order.
func (r *Registry) Events() []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Event, len(r.journal))
	copy(out, r.journal)
	return out
}

// AddOwner marks owner as a member of the owner set, appends it to the owner
// sequence, mints the owner seed share onto its balance and emits
// OwnerAddition. Only the master may call it. Adding an existing owner is a
// silent no-op: no re-mint, no duplicate entry, no event.
func (r *Registry) AddOwner(caller, owner Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if caller != r.master {
		return fmt.Errorf("add owner: %w", ErrUnauthorized)
	}
	if r.owners[owner] {
		return nil
	}

	r.owners[owner] = true
	r.ownerList = append(r.ownerList, owner)
	r.credit(owner, uint256.NewInt(OwnerSeedShare))
	r.emit(Event{Type: EventOwnerAddition, Account: owner})
	return nil
}

// RemoveOwner clears owner's membership and emits OwnerRemoval. Only the
// master may call it; removing a non-owner fails with ErrNotOwner. The owner
// sequence uses swap-with-last-and-pop removal, so the relative order of the
// remaining owners is not preserved.
func (r *Registry) RemoveOwner(caller, owner Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if caller != r.master {
		return fmt.Errorf("remove owner: %w", ErrUnauthorized)
	}
	if !r.owners[owner] {
		return fmt.Errorf("remove owner %s: %w", owner, ErrNotOwner)
	}

	last := len(r.ownerList) - 1
	for i, addr := range r.ownerList {
		if addr == owner {
			r.ownerList[i] = r.ownerList[last]
			break
		}
	}
	r.ownerList = r.ownerList[:last]
	delete(r.owners, owner)
	r.emit(Event{Type: EventOwnerRemoval, Account: owner})
	return nil
}

// GiveShare moves amount from the caller to receiver. The caller must be the
// master or an owner; the receiver is unrestricted. Emits Transfer.
func (r *Registry) GiveShare(caller, receiver Address, amount *uint256.Int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkAdmin(caller); err != nil {
		return fmt.Errorf("give share: %w", err)
	}
	return r.transfer(caller, receiver, amount)
}

// AddShare moves amount from the caller to receiver, with the same caller
// rules as GiveShare plus a stricter receiver rule: the receiver must be a
// current owner. The master, without owner membership, does not qualify.
// Emits Transfer.
func (r *Registry) AddShare(caller, receiver Address, amount *uint256.Int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkAdmin(caller); err != nil {
		return fmt.Errorf("add share: %w", err)
	}
	if !r.owners[receiver] {
		return fmt.Errorf("add share to %s: %w", receiver, ErrInvalidReceiver)
	}
	return r.transfer(caller, receiver, amount)
}

func (r *Registry) checkAdmin(caller Address) error {
	if caller != r.master && !r.owners[caller] {
		return ErrUnauthorized
	}
	return nil
}

// transfer applies the balanced posting. Callers hold the write lock and have
// already authorized the caller account.
func (r *Registry) transfer(caller, receiver Address, amount *uint256.Int) error {
	if amount == nil {
		return fmt.Errorf("amount: %w", ErrInvalidArgument)
	}

	balance, ok := r.shares[caller]
	if !ok || balance.Lt(amount) {
		return fmt.Errorf("balance of %s: %w", caller, ErrInsufficientShare)
	}

	r.shares[caller] = new(uint256.Int).Sub(balance, amount)
	r.credit(receiver, amount)
	r.emit(Event{Type: EventTransfer, Account: receiver, Amount: amount.Clone()})
	return nil
}

// credit adds amount onto addr's balance, seeding the entry when absent.
func (r *Registry) credit(addr Address, amount *uint256.Int) {
	current, ok := r.shares[addr]
	if !ok {
		current = uint256.NewInt(0)
	}
	r.shares[addr] = new(uint256.Int).Add(current, amount)
}

// emit stamps, journals and publishes an event. Callers hold the write lock.
func (r *Registry) emit(ev Event) {
	r.seq++
	ev.Seq = r.seq
	ev.At = time.Now().UTC()
	r.journal = append(r.journal, ev)
	if r.sink != nil {
		r.sink.Publish(ev)
	}
}
