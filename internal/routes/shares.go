package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/share-registry/share_registry/internal/shares"
)

// RegisterShareRoutes wires share balance and transfer endpoints.
func RegisterShareRoutes(r fiber.Router, h *shares.Handler, rateLimiter fiber.Handler) {
	r.Get("/registry/accounts/:address/share", h.Balance)
	r.Get("/registry/events", h.Events)
	r.Post("/registry/transfers", rateLimiter, h.Give)
	r.Post("/registry/allocations", rateLimiter, h.Allocate)
}
