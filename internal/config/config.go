package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the gateway.
type Config struct {
	App         AppConfig
	Logger      LoggerConfig
	Auth        AuthConfig
	Credentials CredentialsConfig
	CORS        CORSConfig
	Store       StoreConfig
	JSONBin     JSONBinConfig
	Postgres    PostgresConfig
	Redis       RedisConfig
	ImgBB       ImgBBConfig
	GitHub      GitHubConfig
	RateLimit   RateLimitConfig
	Upstream    UpstreamConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name    string
	Env     string
	Host    string
	Port    string
	Version string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines token parameters.
type AuthConfig struct {
	JWTSecret     string
	TokenTTLHours int
}

// CredentialsConfig holds the three fixed credential pairs. Passwords may be
// plaintext or bcrypt hashes (see cmd/hashpass).
type CredentialsConfig struct {
	OwnerUser      string
	OwnerPass      string
	GuestUser      string
	GuestPass      string
	CommissionUser string
	CommissionPass string
	// PublishGuestCredentials exposes the guest password on the public
	// credentials endpoint, supporting a demo login flow.
	PublishGuestCredentials bool
}

// CORSConfig lists allowed origin hosts. Entries starting with "." are
// domain-suffix wildcards. An empty list allows all origins.
type CORSConfig struct {
	AllowedOrigins []string
}

// StoreConfig selects the backing document store.
type StoreConfig struct {
	Backend string // "jsonbin" or "postgres"
}

// JSONBinConfig holds JSONBin access values.
type JSONBinConfig struct {
	BaseURL string
	BinID   string
	APIKey  string
}

// PostgresConfig holds DB connection values for the relational store backend.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values for the login rate limiter.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// ImgBBConfig holds image-host access values.
type ImgBBConfig struct {
	UploadURL string
	APIKey    string
}

// GitHubConfig holds GitHub API access values. Token is required only for
// the contributions (GraphQL) endpoint.
type GitHubConfig struct {
	APIBaseURL string
	GraphQLURL string
	Token      string
}

// RateLimitConfig bounds login attempts per client IP. A zero limit
// disables limiting.
type RateLimitConfig struct {
	LoginLimit         int
	LoginWindowSeconds int
}

// UpstreamConfig applies to all outbound HTTP calls.
type UpstreamConfig struct {
	TimeoutSeconds int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "portfolio-api"),
			Env:     getEnv("APP_ENV", "development"),
			Host:    getEnv("APP_HOST", "0.0.0.0"),
			Port:    getEnv("APP_PORT", "8080"),
			Version: getEnv("APP_VERSION", "dev"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:     os.Getenv("JWT_SECRET"),
			TokenTTLHours: getEnvAsInt("AUTH_TOKEN_TTL_HOURS", 168),
		},
		Credentials: CredentialsConfig{
			OwnerUser:               getEnv("OWNER_USERNAME", "owner"),
			OwnerPass:               os.Getenv("OWNER_PASSWORD"),
			GuestUser:               getEnv("GUEST_USERNAME", "guest"),
			GuestPass:               os.Getenv("GUEST_PASSWORD"),
			CommissionUser:          getEnv("COMMISSION_USERNAME", "commission"),
			CommissionPass:          os.Getenv("COMMISSION_PASSWORD"),
			PublishGuestCredentials: getEnvAsBool("PUBLISH_GUEST_CREDENTIALS", false),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "https://soryntech.github.io")),
		},
		Store: StoreConfig{
			Backend: getEnv("STORE_BACKEND", "jsonbin"),
		},
		JSONBin: JSONBinConfig{
			BaseURL: getEnv("JSONBIN_BASE_URL", "https://api.jsonbin.io/v3"),
			BinID:   os.Getenv("JSONBIN_BIN_ID"),
			APIKey:  os.Getenv("JSONBIN_API_KEY"),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		ImgBB: ImgBBConfig{
			UploadURL: getEnv("IMGBB_UPLOAD_URL", "https://api.imgbb.com/1/upload"),
			APIKey:    os.Getenv("IMGBB_API_KEY"),
		},
		GitHub: GitHubConfig{
			APIBaseURL: getEnv("GITHUB_API_BASE_URL", "https://api.github.com"),
			GraphQLURL: getEnv("GITHUB_GRAPHQL_URL", "https://api.github.com/graphql"),
			Token:      os.Getenv("GITHUB_TOKEN"),
		},
		RateLimit: RateLimitConfig{
			LoginLimit:         getEnvAsInt("LOGIN_RATE_LIMIT", 10),
			LoginWindowSeconds: getEnvAsInt("LOGIN_RATE_WINDOW_SECONDS", 60),
		},
		Upstream: UpstreamConfig{
			TimeoutSeconds: getEnvAsInt("UPSTREAM_TIMEOUT_SECONDS", 15),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// Timeout returns the outbound HTTP timeout duration.
func (u UpstreamConfig) Timeout() time.Duration {
	if u.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(u.TimeoutSeconds) * time.Second
}

// TokenTTL returns the session token lifetime.
func (a AuthConfig) TokenTTL() time.Duration {
	if a.TokenTTLHours <= 0 {
		return 168 * time.Hour
	}
	return time.Duration(a.TokenTTLHours) * time.Hour
}

// LoginWindow returns the rate-limit window duration.
func (r RateLimitConfig) LoginWindow() time.Duration {
	if r.LoginWindowSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(r.LoginWindowSeconds) * time.Second
}

func splitList(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
