package service

import (
	"context"
	"strings"
	"time"

	"github.com/soryntech/portfolio-api/internal/auth"
	"github.com/soryntech/portfolio-api/internal/domain"
	"github.com/soryntech/portfolio-api/internal/ratelimit"
	apperrors "github.com/soryntech/portfolio-api/pkg/util"
)

// AuthService coordinates the login flow: rate check, configuration check,
// credential match, token issuance.
type AuthService struct {
	authn   *auth.Authenticator
	tokens  *auth.TokenManager
	limiter *ratelimit.Limiter
}

// NewAuthService builds the service.
func NewAuthService(authn *auth.Authenticator, tokens *auth.TokenManager, limiter *ratelimit.Limiter) *AuthService {
	return &AuthService{authn: authn, tokens: tokens, limiter: limiter}
}

// LoginResult carries a successful login response.
type LoginResult struct {
	Token     string
	Role      domain.Role
	Username  string
	ExpiresAt time.Time
}

// Login authenticates a credential pair and issues a session token.
// The failure response never reveals which field or role was wrong.
func (s *AuthService) Login(ctx context.Context, clientIP, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)

	if !s.limiter.Allow(ctx, clientIP) {
		return nil, apperrors.NewTooManyRequests("Too many attempts")
	}

	if missing := s.authn.MissingSecrets(); len(missing) > 0 {
		return nil, apperrors.NewConfigurationError(missing)
	}

	role, ok := s.authn.Authenticate(username, password)
	if !ok {
		return nil, apperrors.NewUnauthorized("Invalid credentials")
	}

	token, expiresAt, err := s.tokens.Generate(username, role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &LoginResult{Token: token, Role: role, Username: username, ExpiresAt: expiresAt}, nil
}

// GuestCredentials exposes the public demo credentials.
func (s *AuthService) GuestCredentials() (user, pass string) {
	return s.authn.GuestCredentials()
}
