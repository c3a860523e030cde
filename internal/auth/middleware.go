package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/soryntech/portfolio-api/internal/domain"
	apperrors "github.com/soryntech/portfolio-api/pkg/util"
)

const sessionKey = "auth_session"

// Middleware validates bearer tokens and attaches the session to the
// request. A missing, malformed, or invalid token is rejected identically.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized("Unauthorized")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("Unauthorized")
	}

	session, err := m.tokens.Verify(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("Unauthorized")
	}

	c.Locals(sessionKey, session)
	return c.Next()
}

// RequireRole ensures the session role is one of the allowed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		session, ok := SessionFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("Unauthorized")
		}
		if _, exists := allowedSet[session.Role]; !exists {
			return apperrors.NewForbidden("Forbidden")
		}
		return c.Next()
	}
}

// SessionFromContext retrieves the authenticated session.
func SessionFromContext(c *fiber.Ctx) (domain.Session, bool) {
	val := c.Locals(sessionKey)
	if val == nil {
		return domain.Session{}, false
	}
	session, ok := val.(domain.Session)
	return session, ok
}
