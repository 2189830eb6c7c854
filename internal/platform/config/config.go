// Package config loads server configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ServerConfig is everything the server binary reads from its environment.
type ServerConfig struct {
	Addr         string  `env:"MANOR_ADDR" envDefault:":8080"`
	DBPath       string  `env:"MANOR_DB" envDefault:"./data/mansion.db"`
	TimeRatio    float64 `env:"MANOR_TIME_RATIO" envDefault:"60"`
	Seed         int64   `env:"MANOR_SEED" envDefault:"0"`
	LowResource  bool    `env:"MANOR_LOW_RESOURCE" envDefault:"false"`
	SaveInterval int     `env:"MANOR_SAVE_INTERVAL" envDefault:"30"` // seconds

	TracingEnabled bool   `env:"MANOR_TRACING" envDefault:"false"`
	OTLPEndpoint   string `env:"MANOR_OTLP_ENDPOINT" envDefault:"http://localhost:4318/v1/traces"`
	Environment    string `env:"MANOR_ENV" envDefault:"development"`
}

// Load parses the environment into a ServerConfig.
func Load() (ServerConfig, error) {
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.TimeRatio <= 0 {
		return ServerConfig{}, fmt.Errorf("MANOR_TIME_RATIO must be positive, got %v", cfg.TimeRatio)
	}
	if cfg.SaveInterval <= 0 {
		return ServerConfig{}, fmt.Errorf("MANOR_SAVE_INTERVAL must be positive, got %v", cfg.SaveInterval)
	}
	return cfg, nil
}
