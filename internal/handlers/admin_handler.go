package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/whisperbox/backend/internal/dto"
	"github.com/whisperbox/backend/internal/middleware"
	"github.com/whisperbox/backend/internal/services"
)

type AdminHandler struct {
	userService    *services.UserService
	messageService *services.MessageService
}

func NewAdminHandler(userService *services.UserService, messageService *services.MessageService) *AdminHandler {
	return &AdminHandler{userService: userService, messageService: messageService}
}

// SetUserStatus returns the previous and new status for the audit trail.
func (h *AdminHandler) SetUserStatus(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)

	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid user ID"))
	}

	var req dto.SetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	change, err := h.userService.SetStatus(actor, targetID, &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "status updated", change)
}

func (h *AdminHandler) DeleteMessage(c *fiber.Ctx) error {
	messageID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid message ID"))
	}

	if err := h.messageService.AdminDelete(messageID); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "message deleted", nil)
}
