package middleware

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/share-registry/share_registry/internal/registry"
)

const (
	callerHeader     = "X-Caller-Address"
	callerAddressKey = "caller_address"
)

// Caller resolves the calling account from the X-Caller-Address header on
// unsafe methods and stores it in Locals. Reads pass through untouched: every
// read operation on the registry is public. There is deliberately no
// authentication beyond the asserted identity; authorization is the
// registry's role checks.
func Caller() fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}

		raw := c.Get(callerHeader)
		if raw == "" {
			return fiber.NewError(http.StatusUnauthorized, "missing "+callerHeader+" header")
		}
		addr, err := registry.ParseAddress(raw)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}

		c.Locals(callerAddressKey, addr)
		return c.Next()
	}
}

// CallerAddress returns the caller identity resolved by Caller.
func CallerAddress(c *fiber.Ctx) (registry.Address, bool) {
	addr, ok := c.Locals(callerAddressKey).(registry.Address)
	return addr, ok
}
