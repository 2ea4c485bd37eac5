package shares

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/holiman/uint256"

	"github.com/share-registry/share_registry/internal/middleware"
	"github.com/share-registry/share_registry/internal/registry"
)

// Handler exposes share HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a shares HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type transferRequest struct {
	ReceiverAddress string `json:"receiver_address"`
	Amount          string `json:"amount"`
}

type eventResponse struct {
	Seq     uint64    `json:"seq"`
	Type    string    `json:"type"`
	Account string    `json:"account"`
	Amount  string    `json:"amount,omitempty"`
	At      time.Time `json:"at"`
}

// Balance returns the share balance for one account.
func (h *Handler) Balance(c *fiber.Ctx) error {
	addr, err := registry.ParseAddress(c.Params("address"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	balance := h.service.Share(c.UserContext(), addr)
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"address": addr.String(),
		"share":   balance.Dec(),
	})
}

// Give posts an unrestricted-receiver transfer from the caller.
func (h *Handler) Give(c *fiber.Ctx) error {
	return h.post(c, h.service.Give)
}

// Allocate posts an owner-receiver transfer from the caller.
func (h *Handler) Allocate(c *fiber.Ctx) error {
	return h.post(c, h.service.Allocate)
}

// Events returns the registry journal.
func (h *Handler) Events(c *fiber.Ctx) error {
	events := h.service.Events(c.UserContext())
	out := make([]eventResponse, len(events))
	for i, ev := range events {
		out[i] = eventResponse{
			Seq:     ev.Seq,
			Type:    string(ev.Type),
			Account: ev.Account.String(),
			At:      ev.At,
		}
		if ev.Amount != nil {
			out[i].Amount = ev.Amount.Dec()
		}
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"events": out})
}

type postFunc func(ctx context.Context, caller, receiver registry.Address, amount *uint256.Int) error

func (h *Handler) post(c *fiber.Ctx, apply postFunc) error {
	caller, ok := middleware.CallerAddress(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	receiver, err := registry.ParseAddress(req.ReceiverAddress)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	amount, err := uint256.FromDecimal(req.Amount)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "amount: "+err.Error())
	}

	if err := apply(c.UserContext(), caller, receiver, amount); err != nil {
		return fiber.NewError(statusForError(err), err.Error())
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"receiver":       receiver.String(),
		"amount":         amount.Dec(),
		"caller_balance": h.service.Share(c.UserContext(), caller).Dec(),
	})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, registry.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, registry.ErrInsufficientShare), errors.Is(err, registry.ErrInvalidReceiver):
		return http.StatusUnprocessableEntity
	case errors.Is(err, registry.ErrInvalidArgument):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
