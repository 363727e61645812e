package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireAdmin checks the role claim set by JWTMiddleware. The learning
// service keeps no user table (learner ids are opaque), so the role
// travels in the token rather than a permissions table.
func RequireAdmin(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "ADMIN" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Access denied! Admin only.",
		})
	}
	return c.Next()
}
