// Package config reads the settings shared by the basetcg commands from
// the environment. Command-line flags override these values.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/peterkuimelis/basetcg/internal/game"
)

// Config holds the environment-derived defaults.
type Config struct {
	CatalogPath string `env:"BASETCG_CATALOG"`
	DecksFile   string `env:"BASETCG_DECKS"     envDefault:"decks.yaml"`
	Port        string `env:"BASETCG_PORT"      envDefault:"9000"`
	WebPort     int    `env:"BASETCG_WEB_PORT"  envDefault:"8080"`
	Seed        int64  `env:"BASETCG_SEED"`
	MaxTurns    int    `env:"BASETCG_MAX_TURNS" envDefault:"200"`
}

// Load parses the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MaxTurns < 0 {
		return Config{}, fmt.Errorf("BASETCG_MAX_TURNS must not be negative, got %d", cfg.MaxTurns)
	}
	return cfg, nil
}

// Catalog loads the card catalog named by CatalogPath, or the built-in
// Base Set subset when it is empty.
func (c Config) Catalog() (*game.Catalog, error) {
	cat, err := game.LoadCatalogFile(c.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", c.CatalogPath, err)
	}
	return cat, nil
}
