package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/soryntech/portfolio-api/internal/api/http"
	"github.com/soryntech/portfolio-api/internal/api/http/handlers"
	"github.com/soryntech/portfolio-api/internal/auth"
	"github.com/soryntech/portfolio-api/internal/config"
	"github.com/soryntech/portfolio-api/internal/observability"
	"github.com/soryntech/portfolio-api/internal/persistence"
	"github.com/soryntech/portfolio-api/internal/ratelimit"
	"github.com/soryntech/portfolio-api/internal/service"
	"github.com/soryntech/portfolio-api/internal/upstream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, cleanup, err := newStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to init document store", zap.Error(err))
	}
	defer cleanup()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()
	limiter := ratelimit.New(redis.Client, cfg.RateLimit.LoginLimit, cfg.RateLimit.LoginWindow(), logger)

	upstreamTimeout := cfg.Upstream.Timeout()
	imgbb := upstream.NewImgBBClient(cfg.ImgBB, upstreamTimeout)
	github := upstream.NewGitHubClient(cfg.GitHub, upstreamTimeout)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	authn := auth.NewAuthenticator(cfg.Credentials, cfg.Auth.JWTSecret)
	authMiddleware := auth.NewMiddleware(tokens)

	authService := service.NewAuthService(authn, tokens, limiter)
	contentService := service.NewContentService(store)
	uploadService := service.NewUploadService(imgbb)
	githubService := service.NewGitHubService(github)

	metrics := observability.NewMetrics()
	guard := httptransport.NewOriginGuard(cfg.CORS.AllowedOrigins, logger)

	// Body limit sits above the upload ceiling so oversized files reach the
	// gateway's own 413 path instead of fiber's.
	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: service.MaxUploadBytes + 1<<20,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, guard)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(),
		Auth:           handlers.NewAuthHandler(authService),
		Data:           handlers.NewDataHandler(contentService),
		Upload:         handlers.NewUploadHandler(uploadService),
		GitHub:         handlers.NewGitHubHandler(githubService),
		Metrics:        handlers.NewMetricsHandler(metrics),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// newStore selects the backing document store.
func newStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (upstream.Store, func(), error) {
	switch strings.ToLower(cfg.Store.Backend) {
	case "postgres":
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, func() {}, err
		}
		store, err := upstream.NewPostgresStore(ctx, pg.PoolHandle())
		if err != nil {
			pg.Close()
			return nil, func() {}, err
		}
		return store, pg.Close, nil
	default:
		return upstream.NewJSONBinStore(cfg.JSONBin, cfg.Upstream.Timeout()), func() {}, nil
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
