package ownership

import (
	"context"

	"github.com/share-registry/share_registry/internal/registry"
)

// Service exposes owner-set operations over the registry. The context is
// accepted for interface symmetry with transport handlers; the registry
// itself is synchronous and in-process.
type Service struct {
	reg *registry.Registry
}

// NewService builds an ownership service instance.
func NewService(reg *registry.Registry) *Service {
	return &Service{reg: reg}
}

// Master returns the registry's privileged account.
func (s *Service) Master(_ context.Context) registry.Address {
	return s.reg.Master()
}

// Owners returns the current owner set in internal order.
func (s *Service) Owners(_ context.Context) []registry.Address {
	return s.reg.Owners()
}

// IsOwner reports current owner-set membership.
func (s *Service) IsOwner(_ context.Context, addr registry.Address) bool {
	return s.reg.IsOwner(addr)
}

// AddOwner grants the owner role. Only the master may call it; re-adding a
// current owner is a no-op.
func (s *Service) AddOwner(_ context.Context, caller, owner registry.Address) error {
	return s.reg.AddOwner(caller, owner)
}

// RemoveOwner revokes the owner role. Only the master may call it.
func (s *Service) RemoveOwner(_ context.Context, caller, owner registry.Address) error {
	return s.reg.RemoveOwner(caller, owner)
}
