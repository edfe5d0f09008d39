package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port                string        `env:"PORT" envDefault:"8080"`
	LogLevel            string        `env:"LOG_LEVEL" envDefault:"info"`
	LogDevelopment      bool          `env:"LOG_DEVELOPMENT" envDefault:"false"`
	EmitPatches         bool          `env:"EMIT_PATCHES" envDefault:"true"`
	MaxRequestBodyBytes int           `env:"MAX_REQUEST_BODY_BYTES" envDefault:"4194304"`
	ReadTimeout         time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout        time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout     time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Load reads the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MaxRequestBodyBytes <= 0 {
		return Config{}, fmt.Errorf("MAX_REQUEST_BODY_BYTES must be positive, got %d", cfg.MaxRequestBodyBytes)
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}
