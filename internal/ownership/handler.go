package ownership

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/share-registry/share_registry/internal/middleware"
	"github.com/share-registry/share_registry/internal/registry"
)

// Handler exposes owner-set HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds an ownership HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type addOwnerRequest struct {
	OwnerAddress string `json:"owner_address"`
}

// Master returns the privileged account fixed at deployment.
func (h *Handler) Master(c *fiber.Ctx) error {
	master := h.service.Master(c.UserContext())
	return c.Status(http.StatusOK).JSON(fiber.Map{"master": master.String()})
}

// Owners returns the owner-set snapshot in its current internal order.
func (h *Handler) Owners(c *fiber.Ctx) error {
	owners := h.service.Owners(c.UserContext())
	out := make([]string, len(owners))
	for i, o := range owners {
		out[i] = o.String()
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"owners": out, "count": len(out)})
}

// Check reports owner-set membership for one address.
func (h *Handler) Check(c *fiber.Ctx) error {
	addr, err := registry.ParseAddress(c.Params("address"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"address": addr.String(),
		"owner":   h.service.IsOwner(c.UserContext(), addr),
	})
}

// Add grants the owner role to the requested address.
func (h *Handler) Add(c *fiber.Ctx) error {
	caller, ok := middleware.CallerAddress(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req addOwnerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	owner, err := registry.ParseAddress(req.OwnerAddress)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.AddOwner(c.UserContext(), caller, owner); err != nil {
		return fiber.NewError(statusForError(err), err.Error())
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"owner": owner.String()})
}

// Remove revokes the owner role from the requested address.
func (h *Handler) Remove(c *fiber.Ctx) error {
	caller, ok := middleware.CallerAddress(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	owner, err := registry.ParseAddress(c.Params("address"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.RemoveOwner(c.UserContext(), caller, owner); err != nil {
		return fiber.NewError(statusForError(err), err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"owner": owner.String(), "removed": true})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, registry.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, registry.ErrNotOwner):
		return http.StatusNotFound
	case errors.Is(err, registry.ErrInvalidArgument):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
