package http

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAdmits(t *testing.T) {
	t.Parallel()

	guard := NewOriginGuard([]string{".github.io", "example.com", "https://portfolio.dev"}, zap.NewNop())

	tests := []struct {
		origin string
		want   bool
	}{
		{"https://soryntech.github.io", true},
		{"https://github.io", true},
		{"https://evil-github.io", false},
		{"https://evilgithub.io", false},
		{"https://deep.sub.github.io", true},
		{"https://example.com", true},
		{"https://www.example.com", false},
		{"https://portfolio.dev", true},
		{"https://example.com.attacker.net", false},
		{"", false},
		{"not a url", false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, guard.Admits(tt.origin), "origin %q", tt.origin)
	}
}

func TestAdmits_EmptyListFailsOpen(t *testing.T) {
	t.Parallel()

	guard := NewOriginGuard(nil, zap.NewNop())
	require.True(t, guard.Admits("https://anything.example"))
	require.True(t, guard.Admits(""))
}

func newGuardedApp(t *testing.T, origins []string) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(errorHandlingMiddleware(zap.NewNop(), nil))
	app.Use(NewOriginGuard(origins, zap.NewNop()).Middleware())
	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

func TestMiddleware_DeniedOriginShortCircuits(t *testing.T) {
	t.Parallel()

	app := newGuardedApp(t, []string{".github.io"})

	req := httptest.NewRequest(fiber.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "https://evil-github.io")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	require.Equal(t, ".github.io", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestMiddleware_AllowedOriginReflected(t *testing.T) {
	t.Parallel()

	app := newGuardedApp(t, []string{".github.io"})

	req := httptest.NewRequest(fiber.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "https://soryntech.github.io")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "https://soryntech.github.io", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestMiddleware_PreflightAlwaysSucceeds(t *testing.T) {
	t.Parallel()

	app := newGuardedApp(t, []string{"https://portfolio.dev", ".github.io"})

	// Preflight is keyed to the first configured origin regardless of the
	// requesting origin.
	req := httptest.NewRequest(fiber.MethodOptions, "/api/health", nil)
	req.Header.Set("Origin", "https://evil-github.io")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "https://portfolio.dev", resp.Header.Get("Access-Control-Allow-Origin"))
	require.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "PUT")
	require.Equal(t, "86400", resp.Header.Get("Access-Control-Max-Age"))
}

func TestMiddleware_MissingOriginDenied(t *testing.T) {
	t.Parallel()

	app := newGuardedApp(t, []string{".github.io"})

	req := httptest.NewRequest(fiber.MethodGet, "/api/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
