package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/soryntech/portfolio-api/internal/api/dto"
	"github.com/soryntech/portfolio-api/internal/service"
	apperrors "github.com/soryntech/portfolio-api/pkg/util"
)

// UploadHandler exposes the image upload endpoint.
type UploadHandler struct {
	uploads *service.UploadService
}

// NewUploadHandler constructs handler.
func NewUploadHandler(uploads *service.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// Post handles POST /api/upload. Exactly one multipart field named "image"
// is accepted.
func (h *UploadHandler) Post(c *fiber.Ctx) error {
	contentType := c.Get(fiber.HeaderContentType)
	if !strings.Contains(contentType, "multipart/form-data") {
		return apperrors.NewInvalidRequest("Expected multipart/form-data")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return apperrors.NewInvalidRequest("Missing image file")
	}

	url, err := h.uploads.Upload(c.Context(), file)
	if err != nil {
		return err
	}
	return c.JSON(dto.UploadResponse{URL: url})
}
