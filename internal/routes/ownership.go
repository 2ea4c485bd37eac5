package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/share-registry/share_registry/internal/ownership"
)

// RegisterOwnershipRoutes wires owner-set endpoints.
func RegisterOwnershipRoutes(r fiber.Router, h *ownership.Handler) {
	r.Get("/registry/master", h.Master)
	r.Get("/registry/owners", h.Owners)
	r.Get("/registry/owners/:address", h.Check)
	r.Post("/registry/owners", h.Add)
	r.Delete("/registry/owners/:address", h.Remove)
}
