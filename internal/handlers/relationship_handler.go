package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/whisperbox/backend/internal/dto"
	"github.com/whisperbox/backend/internal/middleware"
	"github.com/whisperbox/backend/internal/services"
)

type RelationshipHandler struct {
	relationships *services.RelationshipService
}

func NewRelationshipHandler(relationships *services.RelationshipService) *RelationshipHandler {
	return &RelationshipHandler{relationships: relationships}
}

func (h *RelationshipHandler) Follow(c *fiber.Ctx) error {
	return h.edgeAction(c, h.relationships.Follow, "followed")
}

func (h *RelationshipHandler) Unfollow(c *fiber.Ctx) error {
	return h.edgeAction(c, h.relationships.Unfollow, "unfollowed")
}

func (h *RelationshipHandler) Block(c *fiber.Ctx) error {
	return h.edgeAction(c, h.relationships.Block, "blocked")
}

func (h *RelationshipHandler) Unblock(c *fiber.Ctx) error {
	return h.edgeAction(c, h.relationships.Unblock, "unblocked")
}

func (h *RelationshipHandler) edgeAction(c *fiber.Ctx, action func(actor, target uuid.UUID) error, message string) error {
	actor := middleware.CurrentUser(c)

	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid user ID"))
	}

	if err := action(actor.ID, targetID); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, message, nil)
}
