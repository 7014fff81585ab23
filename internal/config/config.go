package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// App holds the runtime configuration loaded from environment variables.
type App struct {
	Env                  string        `validate:"required"`
	HTTPPort             string        `validate:"required,numeric"`
	DatabaseURL          string        `validate:"required"`
	RedisAddr            string        `validate:"omitempty,hostname_port"`
	QueueBackend         string        `validate:"oneof=redis memory"`
	JWTIssuer            string        `validate:"required"`
	JWTAudience          string        `validate:"required"`
	JWTSigningKey        string        `validate:"min=16"`
	AccessTTL            time.Duration `validate:"gt=0"`
	SnapshotTTL          time.Duration `validate:"gt=0"`
	RateLimitPerMin      int           `validate:"min=1"`
	LoginRateLimitPerMin int           `validate:"min=1"`
	CORSOrigins          []string      `validate:"min=1,dive,required"`
	LogLevel             string        `validate:"oneof=debug info warn warning error"`
	LogFormat            string        `validate:"oneof=text json"`
	SeedAdminPassword    string        `validate:"min=8"`
}

// Production reports whether the app runs with production settings.
func (a App) Production() bool {
	return a.Env == "production" || a.Env == "prod"
}

// Load reads an optional .env file, then returns application config
// populated from environment variables with sensible defaults.
func Load() (App, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return App{}, fmt.Errorf("load .env: %w", err)
	}
	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return App{}, err
	}
	return cfg, nil
}

// FromEnv reads the environment without validating.
func FromEnv() App {
	return App{
		Env:                  getEnv("APP_ENV", "dev"),
		HTTPPort:             getEnv("HTTP_PORT", "8081"),
		DatabaseURL:          getEnv("DATABASE_URL", "sqlite://data/uepex.db"),
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		QueueBackend:         getEnv("QUEUE_BACKEND", "memory"),
		JWTIssuer:            getEnv("JWT_ISSUER", "uepex-api"),
		JWTAudience:          getEnv("JWT_AUDIENCE", "uepex-clients"),
		JWTSigningKey:        getEnv("JWT_SIGNING_KEY", "dev-signing-secret-change"),
		AccessTTL:            durationEnv("ACCESS_TTL", 60*time.Minute),
		SnapshotTTL:          durationEnv("SNAPSHOT_TTL", 10*time.Minute),
		RateLimitPerMin:      intEnv("RATE_LIMIT_PER_MIN", 120),
		LoginRateLimitPerMin: intEnv("LOGIN_RATE_LIMIT_PER_MIN", 10),
		CORSOrigins:          listEnv("CORS_ORIGINS", []string{"*"}),
		LogLevel:             strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:            strings.ToLower(getEnv("LOG_FORMAT", "text")),
		SeedAdminPassword:    getEnv("SEED_ADMIN_PASSWORD", "admin1234"),
	}
}

// Validate checks field constraints and backend combinations.
func (a App) Validate() error {
	if err := validator.New().Struct(a); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s fails %q", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if a.QueueBackend == "redis" && a.RedisAddr == "" {
		return errors.New("invalid config: QUEUE_BACKEND=redis requires REDIS_ADDR")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			slog.Warn("invalid duration, using fallback", "key", key, "error", err, "fallback", fallback)
			return fallback
		}
		return d
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			slog.Warn("invalid int, using fallback", "key", key, "fallback", fallback)
			return fallback
		}
		return parsed
	}
	return fallback
}

func listEnv(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
