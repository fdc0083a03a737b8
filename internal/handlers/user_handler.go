package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/whisperbox/backend/internal/dto"
	"github.com/whisperbox/backend/internal/middleware"
	"github.com/whisperbox/backend/internal/models"
	"github.com/whisperbox/backend/internal/services"
)

type UserHandler struct {
	userService   *services.UserService
	relationships *services.RelationshipService
}

func NewUserHandler(userService *services.UserService, relationships *services.RelationshipService) *UserHandler {
	return &UserHandler{userService: userService, relationships: relationships}
}

// GetProfile is block-aware: an authenticated viewer blocked either way with
// the target gets Forbidden; anonymous viewers see any active profile.
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	var viewerID *uuid.UUID
	if user := middleware.CurrentUser(c); user != nil {
		viewerID = &user.ID
	}

	profile, err := h.userService.GetPublicProfile(viewerID, c.Params("handle"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "profile", profile)
}

func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	updated, err := h.userService.UpdateProfile(user.ID, &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "profile updated", updated)
}

func (h *UserHandler) Followers(c *fiber.Ctx) error {
	return h.listEdges(c, h.relationships.Followers)
}

func (h *UserHandler) Following(c *fiber.Ctx) error {
	return h.listEdges(c, h.relationships.Following)
}

func (h *UserHandler) listEdges(c *fiber.Ctx, list func(uuid.UUID, int, int) ([]models.User, int64, error)) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid user ID"))
	}

	page, limit := pagination(c)
	users, total, err := list(userID, page, limit)
	if err != nil {
		return fail(c, err)
	}

	profiles := make([]dto.PublicProfile, len(users))
	for i := range users {
		profiles[i] = services.PublicProfileOf(&users[i])
	}
	return ok(c, fiber.StatusOK, "users", dto.Page{Items: profiles, Total: total, Page: page, Limit: limit})
}
