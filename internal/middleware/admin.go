package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/whisperbox/backend/internal/dto"
)

// AdminRequired gates admin routes on the caller's admin flag. Must follow
// RequireActiveUser.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
		}
		if !user.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(dto.Fail("Admin access required"))
		}
		return c.Next()
	}
}
