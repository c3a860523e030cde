package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/soryntech/portfolio-api/internal/api/http/handlers"
	"github.com/soryntech/portfolio-api/internal/auth"
	"github.com/soryntech/portfolio-api/internal/domain"
	apperrors "github.com/soryntech/portfolio-api/pkg/util"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Data           *handlers.DataHandler
	Upload         *handlers.UploadHandler
	GitHub         *handlers.GitHubHandler
	Metrics        *handlers.MetricsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	api := app.Group("/api")

	// Public routes.
	api.Get("/health", cfg.Health.Check)
	api.Get("/credentials", cfg.Auth.Credentials)
	api.Post("/auth/login", cfg.Auth.Login)
	api.Get("/github/user", cfg.GitHub.User)
	api.Get("/github/contributions", cfg.GitHub.Contributions)

	// Bearer-token routes.
	protected := api.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/auth/me", cfg.Auth.Me)
	protected.Get("/data", cfg.Data.Get)
	protected.Put("/data", auth.RequireRole(domain.RoleOwner, domain.RoleCommission), cfg.Data.Put)
	protected.Post("/upload", auth.RequireRole(domain.RoleOwner, domain.RoleCommission), cfg.Upload.Post)
	protected.Get("/metrics", auth.RequireRole(domain.RoleOwner), cfg.Metrics.Get)

	app.Use(func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("Not Found")
	})
}
