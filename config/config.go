package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env      string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT" envDefault:"8080" validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	DatabaseURL    string `env:"DATABASE_URL,required" validate:"required"`
	DBMaxConns     int32  `env:"DB_MAX_CONNS" envDefault:"25" validate:"min=1,max=200"`
	DBMinConns     int32  `env:"DB_MIN_CONNS" envDefault:"5" validate:"min=0,max=100,ltefield=DBMaxConns"`
	MigrateOnStart bool   `env:"MIGRATE_ON_START" envDefault:"false"`

	MetricsPort     string `env:"METRICS_PORT" envDefault:"9090"`
	HealthCheckSpec string `env:"HEALTH_CHECK_SPEC" envDefault:"@every 30s" validate:"required"`

	JWTSecret string        `env:"JWT_SECRET,required" validate:"required,min=32"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"24h" validate:"gt=0"`

	Argon2MemoryKB    uint32 `env:"ARGON2_MEMORY_KB" envDefault:"65536" validate:"min=8192,max=2097152"`
	Argon2Time        uint32 `env:"ARGON2_TIME" envDefault:"3" validate:"min=1,max=10"`
	Argon2Parallelism uint8  `env:"ARGON2_PARALLELISM" envDefault:"2" validate:"min=1,max=16"`

	ResendAPIKey string `env:"RESEND_API_KEY" validate:"required_if=Env production,required_if=Env staging"`
	ResendFrom   string `env:"RESEND_FROM"    validate:"required_if=Env production,required_if=Env staging"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SlogLevel maps LOG_LEVEL onto slog levels. Unknown values fall back to info;
// Load has already rejected them.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
