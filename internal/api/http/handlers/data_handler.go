package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/soryntech/portfolio-api/internal/auth"
	"github.com/soryntech/portfolio-api/internal/service"
	apperrors "github.com/soryntech/portfolio-api/pkg/util"
)

// DataHandler exposes the content document endpoints.
type DataHandler struct {
	content *service.ContentService
}

// NewDataHandler constructs handler.
func NewDataHandler(content *service.ContentService) *DataHandler {
	return &DataHandler{content: content}
}

// Get handles GET /api/data.
func (h *DataHandler) Get(c *fiber.Ctx) error {
	doc, err := h.content.Read(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(doc)
}

// Put handles PUT /api/data. The role decides the write shape: owner
// replaces the document, commission persists only the commissions field.
func (h *DataHandler) Put(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized")
	}

	updated, err := h.content.Write(c.Context(), session, c.Body())
	if err != nil {
		return err
	}
	return c.JSON(updated)
}
