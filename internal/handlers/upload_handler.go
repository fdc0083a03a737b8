package handlers

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/whisperbox/backend/internal/dto"
	"github.com/whisperbox/backend/internal/storage"
)

const maxUploadSize = 4 * 1024 * 1024

type UploadHandler struct {
	store storage.ObjectStorage
}

func NewUploadHandler(store storage.ObjectStorage) *UploadHandler {
	return &UploadHandler{store: store}
}

// Upload stores an image (message attachment or report screenshot) and
// returns the opaque object key callers embed in later requests.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	if h.store == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.Fail("uploads are not available"))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("file is required"))
	}
	if fileHeader.Size > maxUploadSize {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("file exceeds 4MB limit"))
	}

	contentType := fileHeader.Header.Get("Content-Type")
	switch contentType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("only image uploads are allowed"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("could not read file"))
	}
	defer file.Close()

	key := uuid.New().String() + filepath.Ext(fileHeader.Filename)
	if err := h.store.PutObject(c.Context(), key, file, fileHeader.Size, contentType); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("upload failed"))
	}

	return ok(c, fiber.StatusCreated, "uploaded", fiber.Map{"key": key})
}
