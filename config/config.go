// Package config loads process-wide settings from the environment. Endpoint
// locations are fixed here at startup and never change at runtime.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	Port int `env:"PORT" envDefault:"8080"`

	DataURL   string `env:"PLANET_DATA_URL" envDefault:"https://api.planet.com/data/v1"`
	OrdersURL string `env:"PLANET_ORDERS_URL" envDefault:"https://api.planet.com/compute/ops/orders/v2"`
	TilesURL  string `env:"PLANET_TILES_URL" envDefault:"https://tiles.planet.com/data/v1"`

	CatalogDir string `env:"CATALOG_DIR" envDefault:"data"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.DataURL == "" || c.OrdersURL == "" || c.TilesURL == "" {
		return fmt.Errorf("planet endpoint locations must not be empty")
	}
	if c.CatalogDir == "" {
		return fmt.Errorf("catalog directory must not be empty")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("bad log level %q: %v", c.LogLevel, err)
	}
	return nil
}
