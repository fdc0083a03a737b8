package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/whisperbox/backend/internal/database"
	"github.com/whisperbox/backend/internal/dto"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(); err != nil {
		dbStatus = "down"
	}

	status := fiber.StatusOK
	if dbStatus != "ok" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(dto.OK("health", fiber.Map{
		"db":        dbStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}))
}
