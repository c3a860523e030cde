package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/soryntech/portfolio-api/internal/domain"
)

// Fixed issuer/audience pair. Tokens minted for other systems never verify
// here, and ours never verify elsewhere.
const (
	TokenIssuer   = "soryntech-api"
	TokenAudience = "soryntech-app"
)

// TokenManager handles issuing and validating session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 168 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Claims describes the session token payload: subject plus role, nothing else.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Generate builds and signs a session token for the subject.
func (tm *TokenManager) Generate(username string, role domain.Role) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    TokenIssuer,
			Audience:  jwt.ClaimStrings{TokenAudience},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify validates the token signature, issuer, audience, and expiry, and
// returns the embedded session. Any failure yields an error; callers treat
// all failures identically.
func (tm *TokenManager) Verify(tokenStr string) (domain.Session, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithIssuer(TokenIssuer), jwt.WithAudience(TokenAudience), jwt.WithExpirationRequired())
	if err != nil {
		return domain.Session{}, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return domain.Session{}, errors.New("invalid token claims")
	}
	role, ok := domain.ParseRole(claims.Role)
	if !ok {
		return domain.Session{}, errors.New("unknown role claim")
	}
	if claims.Subject == "" {
		return domain.Session{}, errors.New("missing subject claim")
	}
	return domain.Session{Username: claims.Subject, Role: role}, nil
}
