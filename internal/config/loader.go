package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if MATCHDAY_CONFIG is set
//  3. env (prefix MATCHDAY_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv("MATCHDAY_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: MATCHDAY_ADDR, MATCHDAY_SCHEDULE_SOURCE, ...
	// Map env keys like MATCHDAY_SCHEDULE_SOURCE -> schedule_source, keeping
	// underscores to match the koanf tags on the struct.
	envProvider := env.Provider("MATCHDAY_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "matchday_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
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
	if cfg.ScheduleSource == "" {
		return fmt.Errorf("%w: schedule_source must not be empty", ErrInvalidConfig)
	}
	switch cfg.SourceFormat {
	case "auto", "json", "csv", "html":
	default:
		return fmt.Errorf("%w: source_format must be auto, json, csv or html", ErrInvalidConfig)
	}
	if cfg.RefreshIntervalSec < 0 {
		return fmt.Errorf("%w: refresh_interval_sec must not be negative", ErrInvalidConfig)
	}
	return nil
}
