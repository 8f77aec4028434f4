package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"docgate/internal/auth"
)

// IdentityLocalKey is the key under which the verified caller identity is
// stored in Fiber's context locals.
const IdentityLocalKey = "identity"

// Auth verifies the bearer token and stores the resulting identity in the
// request locals. It runs before any Firestore access: a request without a
// valid token never reaches the service layer.
//
// The Authorization scheme is matched case-insensitively; a single
// verification attempt is made.
func Auth(verifier auth.Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Token de autorizacion requerido",
			})
		}

		ident, err := verifier.Verify(c.UserContext(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Token invalido",
			})
		}

		c.Locals(IdentityLocalKey, ident)
		return c.Next()
	}
}

// IdentityFromCtx returns the identity stored by Auth, or nil.
func IdentityFromCtx(c *fiber.Ctx) *auth.Identity {
	ident, _ := c.Locals(IdentityLocalKey).(*auth.Identity)
	return ident
}

func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
