package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"studyvault/internal/identity"
	"studyvault/internal/model"
)

// PrincipalLocalKey is the key used to store the verified principal in
// Fiber's context locals.
const PrincipalLocalKey = "principal"

// RequireAuth verifies the Bearer token on the request and stores the
// resulting principal in context locals. Requests without a token are
// rejected before any handler work happens.
func RequireAuth(verifier identity.Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return unauthorized(c, "Unauthorized: no token")
		}

		principal, err := verifier.Verify(c.UserContext(), token)
		if err != nil {
			return unauthorized(c, "Unauthorized: invalid token")
		}

		c.Locals(PrincipalLocalKey, principal)
		return c.Next()
	}
}

// PrincipalFromCtx returns the principal stored by RequireAuth, or nil when
// the route is not behind it.
func PrincipalFromCtx(c *fiber.Ctx) *model.Principal {
	p, _ := c.Locals(PrincipalLocalKey).(*model.Principal)
	return p
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

func unauthorized(c *fiber.Ctx, message string) error {
	body := fiber.Map{
		"success": false,
		"error":   message,
	}
	if rid, _ := c.Locals(RequestIDLocalKey).(string); rid != "" {
		body["request_id"] = rid
	}
	return c.Status(fiber.StatusUnauthorized).JSON(body)
}
