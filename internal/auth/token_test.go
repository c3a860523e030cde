package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/soryntech/portfolio-api/internal/domain"
)

func TestGenerateAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", time.Hour)

	for _, role := range []domain.Role{domain.RoleOwner, domain.RoleCommission, domain.RoleGuest} {
		token, expiresAt, err := tm.Generate("soryn", role)
		require.NoError(t, err)
		require.True(t, expiresAt.After(time.Now()))

		session, err := tm.Verify(token)
		require.NoError(t, err)
		require.Equal(t, "soryn", session.Username)
		require.Equal(t, role, session.Role)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	tm := &TokenManager{secret: []byte("super-secret"), ttl: -time.Minute}
	token, _, err := tm.Generate("soryn", domain.RoleOwner)
	require.NoError(t, err)

	_, err = tm.Verify(token)
	require.Error(t, err)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	token, _, err := NewTokenManager("right-secret", time.Hour).Generate("soryn", domain.RoleGuest)
	require.NoError(t, err)

	_, err = NewTokenManager("wrong-secret", time.Hour).Verify(token)
	require.Error(t, err)
}

func TestVerify_TamperedPayload(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", time.Hour)
	token, _, err := tm.Generate("soryn", domain.RoleGuest)
	require.NoError(t, err)

	// Re-sign the same claims with role escalated but a different key; any
	// payload mutation breaks the original signature.
	forged, _, err := NewTokenManager("attacker-key", time.Hour).Generate("soryn", domain.RoleOwner)
	require.NoError(t, err)
	require.NotEqual(t, token, forged)

	_, err = tm.Verify(forged)
	require.Error(t, err)
}

func TestVerify_WrongIssuerOrAudience(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	tm := NewTokenManager(string(secret), time.Hour)

	sign := func(issuer, audience string) string {
		claims := &Claims{
			Role: string(domain.RoleOwner),
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "soryn",
				Issuer:    issuer,
				Audience:  jwt.ClaimStrings{audience},
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				IssuedAt:  jwt.NewNumericDate(time.Now()),
			},
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
		require.NoError(t, err)
		return signed
	}

	_, err := tm.Verify(sign("some-other-api", TokenAudience))
	require.Error(t, err, "wrong issuer must be rejected")

	_, err = tm.Verify(sign(TokenIssuer, "some-other-app"))
	require.Error(t, err, "wrong audience must be rejected")

	_, err = tm.Verify(sign(TokenIssuer, TokenAudience))
	require.NoError(t, err)
}

func TestVerify_UnknownRoleClaim(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	claims := &Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "soryn",
			Issuer:    TokenIssuer,
			Audience:  jwt.ClaimStrings{TokenAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	_, err = NewTokenManager(string(secret), time.Hour).Verify(signed)
	require.Error(t, err)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", time.Hour)
	_, err := tm.Verify("not.a.jwt")
	require.Error(t, err)
}
