package handler

import (
	"github.com/gofiber/fiber/v2"

	"studyvault/internal/http/middleware"
)

// errorPayload is the error response body every endpoint shares.
type errorPayload struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes the standardized JSON error response. message must be a
// safe, human-readable sentence with no internal details.
func writeError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(errorPayload{
		Success:   false,
		Error:     message,
		RequestID: requestIDFromCtx(c),
	})
}

// ErrorHandler returns a Fiber global error handler that standardizes error
// responses for errors that escape the handlers.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "Bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "Not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "Method not allowed")
		default:
			return writeError(c, status, "Internal server error")
		}
	}
}
