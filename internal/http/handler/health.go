package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"studyvault/internal/drive"
)

// Pinger checks connectivity to the document store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck verifies both external dependencies: the document store and
// the object store. Either one failing makes the whole service unhealthy.
func HealthCheck(p Pinger, d drive.Drive) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		if err := p.Ping(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "Service unavailable")
		}
		if err := d.Health(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "Service unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is the bare process-up probe.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
