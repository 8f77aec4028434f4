package middleware

import (
	"regexp"

	"github.com/gofiber/fiber/v2"
)

// localhostOrigin accepts any local dev origin, with or without a port.
var localhostOrigin = regexp.MustCompile(`^https?://localhost(:\d+)?$`)

// CORS is the request gate's origin check. The allow-list is an exact-match
// set of production origins; localhost origins always pass.
//
// Every response, including rejections, carries Vary: Origin and the static
// allow headers/methods so the browser can read the outcome. The caller's
// origin is echoed only when allowed. Accepted preflights are answered 204
// with no body.
func CORS(allowedOrigins []string) fiber.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderVary, fiber.HeaderOrigin)
		c.Set(fiber.HeaderAccessControlAllowHeaders, "Authorization, Content-Type")
		c.Set(fiber.HeaderAccessControlAllowMethods, "POST, OPTIONS")

		origin := c.Get(fiber.HeaderOrigin)
		if origin != "" {
			_, ok := allowed[origin]
			if !ok && !localhostOrigin.MatchString(origin) {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"success": false,
					"error":   "Origen no permitido",
				})
			}
			c.Set(fiber.HeaderAccessControlAllowOrigin, origin)
		}

		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}

		return c.Next()
	}
}
