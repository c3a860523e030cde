package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/soryntech/portfolio-api/internal/api/dto"
	"github.com/soryntech/portfolio-api/internal/auth"
	"github.com/soryntech/portfolio-api/internal/service"
	apperrors "github.com/soryntech/portfolio-api/pkg/util"
)

// AuthHandler exposes login, session introspection, and the public
// credentials endpoint.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidRequest("Invalid request")
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewInvalidRequest("Invalid request")
	}

	result, err := h.auth.Login(c.Context(), c.IP(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{
		Token:    result.Token,
		Role:     string(result.Role),
		Username: result.Username,
	})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized")
	}
	return c.JSON(dto.MeResponse{Username: session.Username, Role: string(session.Role)})
}

// Credentials handles GET /api/credentials. Intentionally public: it backs
// the demo guest-login flow without weakening the other secrets.
func (h *AuthHandler) Credentials(c *fiber.Ctx) error {
	user, pass := h.auth.GuestCredentials()
	return c.JSON(dto.CredentialsResponse{GuestUser: user, GuestPass: pass})
}
