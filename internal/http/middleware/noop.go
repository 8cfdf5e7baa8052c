package middleware

import "github.com/gofiber/fiber/v2"

// Noop passes the request straight through. It marks the slot where optional
// middleware can be swapped in without touching the wiring.
func Noop() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Next()
	}
}
