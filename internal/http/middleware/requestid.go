package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader is the header used to propagate request IDs.
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocalKey is the key under which the request ID is stored in
	// Fiber's context locals.
	RequestIDLocalKey = "request_id"
)

// RequestID ensures every request carries a request ID: an incoming
// X-Request-ID is preserved, a missing one is replaced by a fresh UUID. The
// value is stored in context locals and echoed on the response header so logs
// and error payloads can be correlated with the caller's view.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals(RequestIDLocalKey, id)
		c.Set(RequestIDHeader, id)

		return c.Next()
	}
}
