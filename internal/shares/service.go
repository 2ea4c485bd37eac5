package shares

import (
	"context"

	"github.com/holiman/uint256"

	"github.com/share-registry/share_registry/internal/registry"
)

// Service exposes share balance reads and role-gated transfers over the
// registry.
type Service struct {
	reg *registry.Registry
}

// NewService builds a shares service instance.
func NewService(reg *registry.Registry) *Service {
	return &Service{reg: reg}
}

// Share returns the balance for addr, zero when never seeded.
func (s *Service) Share(_ context.Context, addr registry.Address) *uint256.Int {
	return s.reg.Share(addr)
}

// Give moves amount from caller to an unrestricted receiver. Caller must be
// the master or an owner.
func (s *Service) Give(_ context.Context, caller, receiver registry.Address, amount *uint256.Int) error {
	return s.reg.GiveShare(caller, receiver, amount)
}

// Allocate moves amount from caller to a receiver that must currently hold
// the owner role. Same caller rules as Give.
func (s *Service) Allocate(_ context.Context, caller, receiver registry.Address, amount *uint256.Int) error {
	return s.reg.AddShare(caller, receiver, amount)
}

// Events returns the registry journal snapshot.
func (s *Service) Events(_ context.Context) []registry.Event {
	return s.reg.Events()
}
