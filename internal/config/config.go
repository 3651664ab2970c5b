package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Medistock"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Session struct {
		// Dir holds the JSON snapshot of the inventory and the sales ledger.
		Dir string `envconfig:"SESSION_DIR" default:".medistock"`
	}

	Auth struct {
		Secret   string        `envconfig:"AUTH_SECRET" default:"medistock-dev-secret"`
		TokenTTL time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"12h"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
