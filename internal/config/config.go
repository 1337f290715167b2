// Package config loads process configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Storage backends the bot can run against
const (
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Discord struct {
		ClientSecret  string `env:"DISCORD_CLIENT_SECRET,required,notEmpty"`
		CommandPrefix string `env:"COMMAND_PREFIX" envDefault:"!"`
	}

	// StorageBackend selects where beacons live: redis or sqlite
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"redis"`

	Redis struct {
		Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	SQLite struct {
		Path string `env:"SQLITE_PATH" envDefault:"data/beacons.db"`
	}
}

// Load reads the environment into a Config. A missing .env file is not an
// error; production sets variables directly.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	switch cfg.StorageBackend {
	case BackendRedis, BackendSQLite:
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	return cfg, nil
}
