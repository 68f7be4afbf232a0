// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (catalog client, cache) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Pokédex API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Remote catalog (PokeAPI)
	PokeAPIBaseURL string        `env:"POKEAPI_BASE_URL" envDefault:"https://pokeapi.co/api/v2"`
	PokeAPITimeout time.Duration `env:"POKEAPI_TIMEOUT"  envDefault:"10s"`
	PokeAPIRPS     float64       `env:"POKEAPI_RPS"      envDefault:"20"`
	PokeAPIBurst   int           `env:"POKEAPI_BURST"    envDefault:"20"`

	// CatalogLimit and CatalogOffset select the window fetched once at startup.
	CatalogLimit  int `env:"CATALOG_LIMIT"  envDefault:"150"`
	CatalogOffset int `env:"CATALOG_OFFSET" envDefault:"0"`

	// LookupConcurrency bounds concurrent detail lookups during type filtering.
	LookupConcurrency int `env:"LOOKUP_CONCURRENCY" envDefault:"8"`

	// Key-Value Cache (Redis). Empty selects the in-process cache.
	RedisURL string `env:"REDIS_URL"`

	// DetailCacheTTL is how long resolved details are reused. Zero disables caching.
	DetailCacheTTL time.Duration `env:"DETAIL_CACHE_TTL" envDefault:"1h"`

	// Cross-Origin Resource Sharing, comma-separated origin suffixes
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// validate rejects values that parse but cannot be used.
func (c *Config) validate() error {
	var errs []error

	if c.CatalogLimit < 1 {
		errs = append(errs, errors.New("CATALOG_LIMIT must be positive"))
	}
	if c.CatalogOffset < 0 {
		errs = append(errs, errors.New("CATALOG_OFFSET must not be negative"))
	}
	if c.LookupConcurrency < 1 {
		errs = append(errs, errors.New("LOOKUP_CONCURRENCY must be positive"))
	}
	if c.PokeAPIRPS < 0 {
		errs = append(errs, errors.New("POKEAPI_RPS must not be negative"))
	}
	if c.DetailCacheTTL < 0 {
		errs = append(errs, errors.New("DETAIL_CACHE_TTL must not be negative"))
	}

	return errors.Join(errs...)
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the CORS origin suffixes accepted outside development.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
