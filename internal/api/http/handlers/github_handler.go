package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/soryntech/portfolio-api/internal/service"
	apperrors "github.com/soryntech/portfolio-api/pkg/util"
)

// GitHubHandler exposes the GitHub passthrough endpoints.
type GitHubHandler struct {
	github *service.GitHubService
}

// NewGitHubHandler constructs handler.
func NewGitHubHandler(github *service.GitHubService) *GitHubHandler {
	return &GitHubHandler{github: github}
}

// User handles GET /api/github/user.
func (h *GitHubHandler) User(c *fiber.Ctx) error {
	username := c.Query("username")
	if username == "" {
		return apperrors.NewInvalidRequest("Missing username")
	}

	user, err := h.github.User(c.Context(), username)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// Contributions handles GET /api/github/contributions.
func (h *GitHubHandler) Contributions(c *fiber.Ctx) error {
	username := c.Query("username")
	if username == "" {
		return apperrors.NewInvalidRequest("Missing username")
	}

	calendar, err := h.github.Contributions(c.Context(), username)
	if err != nil {
		return err
	}
	return c.JSON(calendar)
}
