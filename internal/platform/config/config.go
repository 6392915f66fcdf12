package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string `envconfig:"SERVICE_NAME" default:"vecindario"`
	HTTPPort    string `envconfig:"HTTP_PORT" default:"8080"`
	PostgresDSN string `envconfig:"POSTGRES_DSN"`

	// JWTSecret signs and verifies bearer tokens issued by the auth service.
	JWTSecret string `envconfig:"JWT_SECRET"`

	// OutboxPollInterval is the sleep between worker relay cycles.
	OutboxPollInterval time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"5s"`
	OutboxBatchSize    int           `envconfig:"OUTBOX_BATCH_SIZE" default:"100"`

	// StatementPaidWindow caps how many paid charges the resident account
	// statement returns.
	StatementPaidWindow int `envconfig:"STATEMENT_PAID_WINDOW" default:"12"`
}

// Load reads .env (best effort, local development only) and then the process
// environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process environment config: %w", err)
	}
	return cfg, nil
}
