// Package handler contains the Fiber HTTP handlers for the booking API.
package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/eventify/eventify-api/internal/model"
)

// Header names set by the upstream auth proxy. Authentication itself is out
// of scope for this service; the proxy strips these headers from untrusted
// traffic before they reach us.
const (
	headerUserEmail = "X-User-Email"
	headerUserRole  = "X-User-Role"
)

// identityFrom reads the caller identity forwarded by the auth proxy.
// Absent headers yield an anonymous, non-staff identity.
func identityFrom(c *fiber.Ctx) model.Identity {
	return model.Identity{
		Email: c.Get(headerUserEmail),
		Role:  model.Role(c.Get(headerUserRole)),
	}
}

// requireAdmin returns a 403 response when the caller is not staff, or nil
// when the request may proceed.
func requireAdmin(c *fiber.Ctx) error {
	if !identityFrom(c).IsAdmin() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin access required"})
	}
	return nil
}
