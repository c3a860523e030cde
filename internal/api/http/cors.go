package http

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/soryntech/portfolio-api/pkg/util"
)

// OriginGuard admits or denies requests by their Origin header before any
// other processing. Allow-list entries are exact hosts (scheme stripped when
// the entry is a full URL) or dot-prefixed domain-suffix wildcards.
type OriginGuard struct {
	allowed []string
}

// NewOriginGuard normalizes the configured entries. An empty list allows all
// origins; that is a configuration hazard, so it is logged loudly.
func NewOriginGuard(entries []string, logger *zap.Logger) *OriginGuard {
	allowed := make([]string, 0, len(entries))
	for _, e := range entries {
		if trimmed := strings.TrimSpace(e); trimmed != "" {
			allowed = append(allowed, trimmed)
		}
	}
	if len(allowed) == 0 {
		logger.Warn("ALLOWED_ORIGINS is empty; all origins will be admitted")
	}
	return &OriginGuard{allowed: allowed}
}

// Middleware answers preflight, stamps CORS headers, and rejects
// disallowed origins before anything touches an upstream.
func (g *OriginGuard) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Preflight always succeeds, keyed to the first configured origin.
		if c.Method() == fiber.MethodOptions {
			c.Set(fiber.HeaderAccessControlAllowOrigin, g.firstOrigin())
			c.Set(fiber.HeaderAccessControlAllowMethods, "GET, POST, PUT, OPTIONS")
			c.Set(fiber.HeaderAccessControlAllowHeaders, "Content-Type, Authorization")
			c.Set(fiber.HeaderAccessControlMaxAge, "86400")
			return c.SendStatus(fiber.StatusOK)
		}

		origin := c.Get(fiber.HeaderOrigin)
		admitted := g.Admits(origin)

		allowOrigin := g.firstOrigin()
		if admitted && origin != "" {
			allowOrigin = origin
		}
		c.Set(fiber.HeaderAccessControlAllowOrigin, allowOrigin)
		c.Set(fiber.HeaderAccessControlAllowCredentials, "true")

		if !admitted {
			return apperrors.NewForbidden("Forbidden")
		}
		return c.Next()
	}
}

// Admits reports whether the Origin header value passes the allow-list.
// A malformed or missing origin is denied unless the list is empty, which
// fails open.
func (g *OriginGuard) Admits(origin string) bool {
	if len(g.allowed) == 0 {
		return true
	}

	parsed, err := url.Parse(origin)
	if err != nil {
		return false
	}
	host := parsed.Host
	if host == "" {
		return false
	}

	for _, entry := range g.allowed {
		if matchOriginEntry(entry, host) {
			return true
		}
	}
	return false
}

// matchOriginEntry matches a request host against one allow-list entry.
// ".github.io" admits "github.io" and any "*.github.io" subdomain, but not
// "evil-github.io"; plain entries match on exact host only.
func matchOriginEntry(entry, host string) bool {
	if strings.HasPrefix(entry, ".") {
		bare := entry[1:]
		if host == bare {
			return true
		}
		return len(host) > len(entry) && strings.HasSuffix(host, entry)
	}

	entryHost := entry
	if strings.Contains(entry, "://") {
		parsed, err := url.Parse(entry)
		if err != nil {
			return false
		}
		entryHost = parsed.Host
	}
	return host == entryHost
}

func (g *OriginGuard) firstOrigin() string {
	if len(g.allowed) == 0 {
		return "*"
	}
	return g.allowed[0]
}
