package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/whisperbox/backend/internal/dto"
	"github.com/whisperbox/backend/internal/middleware"
	"github.com/whisperbox/backend/internal/services"
)

type MessageHandler struct {
	messageService *services.MessageService
}

func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// Send accepts both authenticated and anonymous callers (optional auth).
func (h *MessageHandler) Send(c *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	message, err := h.messageService.Send(middleware.CurrentUser(c), &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, "message sent", fiber.Map{"id": message.ID})
}

func (h *MessageHandler) Inbox(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	page, limit := pagination(c)

	views, total, err := h.messageService.Inbox(user.ID, page, limit)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "inbox", dto.Page{Items: views, Total: total, Page: page, Limit: limit})
}

func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	messageID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid message ID"))
	}

	if err := h.messageService.MarkRead(user.ID, messageID); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "marked read", nil)
}

func (h *MessageHandler) Reply(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	messageID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid message ID"))
	}

	var req dto.ReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	message, err := h.messageService.Reply(user.ID, messageID, &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, "reply posted", fiber.Map{"id": message.ID})
}

func (h *MessageHandler) Delete(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	messageID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid message ID"))
	}

	if err := h.messageService.Delete(user.ID, messageID); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "message deleted", nil)
}

func (h *MessageHandler) Feed(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	page, limit := pagination(c)

	items, total, err := h.messageService.Feed(user.ID, page, limit)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "feed", dto.Page{Items: items, Total: total, Page: page, Limit: limit})
}
