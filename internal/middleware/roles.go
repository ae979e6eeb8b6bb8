package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fjvbn2003/fingerscore/internal/models"
)

// RequireRole allows the request through only when the role stored by Auth is
// one of roles; everything else gets 403.
//
//	api.Delete("/matches/:id", middleware.RequireRole(models.UserRoleAdmin), handlers.DeleteMatch(s))
//
// It must be registered after Auth.
func RequireRole(roles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userRole := UserRole(c)
		if userRole == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "forbidden",
			})
		}

		for _, role := range roles {
			if userRole == role {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "insufficient permissions",
		})
	}
}
