package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"rentwheels/internal/middleware"
	"rentwheels/internal/service/imagestore"
)

type ImageHandler struct {
	imageService imagestore.Service
}

func NewImageHandler(imageService imagestore.Service) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

func (h *ImageHandler) Upload(c *fiber.Ctx) error {
	ownerID := middleware.GetCurrentUserID(c)
	if ownerID == uuid.Nil {
		return middleware.Unauthorized("User not authenticated")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("Missing file field")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.BadRequest("Unable to read uploaded file")
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	url, err := h.imageService.Upload(c.Context(), ownerID, fileHeader.Filename, fileHeader.Size, contentType, file)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}
