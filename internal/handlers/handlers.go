package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/whisperbox/backend/internal/apperr"
	"github.com/whisperbox/backend/internal/dto"
)

// fail maps a service error onto the uniform envelope.
func fail(c *fiber.Ctx, err error) error {
	return c.Status(apperr.StatusCode(err)).JSON(dto.Fail(apperr.ClientMessage(err)))
}

func ok(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(dto.OK(message, data))
}

// pagination reads page/limit query params with sane bounds.
func pagination(c *fiber.Ctx) (page, limit int) {
	page, _ = strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.Query("limit", "20"))
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
