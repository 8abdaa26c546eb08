package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. .env file in the working directory, if present
//  3. file (YAML) if PARTY_CONFIG is set
//  4. env (prefix PARTY_)
func Load(_ context.Context) (*Config, error) {
	// A missing .env file is the normal case outside development.
	_ = godotenv.Load()

	base := New()

	k := koanf.New(".")

	if path := os.Getenv("PARTY_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: PARTY_ADDR, PARTY_DATA_DIR, ...
	// Map env keys like PARTY_DATA_DIR -> data_dir (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("PARTY_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "party_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.DataDir == "" {
		return fmt.Errorf("%w: data_dir must not be empty", ErrInvalidConfig)
	}
	if cfg.MaxNearbyKm <= 0 {
		return fmt.Errorf("%w: max_nearby_km must be positive", ErrInvalidConfig)
	}
	if cfg.AuthLatencyMaxMS < cfg.AuthLatencyMinMS {
		return fmt.Errorf("%w: auth_latency_max_ms below auth_latency_min_ms", ErrInvalidConfig)
	}
	return nil
}
