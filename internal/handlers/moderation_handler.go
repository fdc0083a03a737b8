package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/whisperbox/backend/internal/dto"
	"github.com/whisperbox/backend/internal/middleware"
	"github.com/whisperbox/backend/internal/services"
)

type ModerationHandler struct {
	moderationService *services.ModerationService
}

func NewModerationHandler(moderationService *services.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService}
}

func (h *ModerationHandler) ReportMessage(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	messageID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid message ID"))
	}

	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	report, err := h.moderationService.CreateReport(user.ID, messageID, &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, "report filed", report)
}

func (h *ModerationHandler) ListReports(c *fiber.Ctx) error {
	page, limit := pagination(c)

	reports, total, err := h.moderationService.ListReports(c.Query("status", ""), page, limit)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "reports", dto.Page{Items: reports, Total: total, Page: page, Limit: limit})
}

func (h *ModerationHandler) ReviewReport(c *fiber.Ctx) error {
	reviewer := middleware.CurrentUser(c)

	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid report ID"))
	}

	var req dto.ReviewReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	report, err := h.moderationService.ReviewReport(reviewer, reportID, &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "report reviewed", report)
}
