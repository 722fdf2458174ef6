// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file and env.
// - External errors must be wrapped via this package's error helpers.
package config

import "context"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// ScheduleSource is the path or URL of the season schedule document.
	ScheduleSource string `koanf:"schedule_source"`

	// SourceFormat selects how the source bytes are decoded:
	// auto, json, csv or html.
	SourceFormat string `koanf:"source_format"`

	// CacheBust appends a timestamp query parameter to HTTP fetches so
	// intermediary caches never serve a stale schedule.
	CacheBust bool `koanf:"cache_bust"`

	// RefreshIntervalSec re-runs a load attempt this often; 0 disables
	// background refresh entirely.
	RefreshIntervalSec int `koanf:"refresh_interval_sec"`

	// AdminCredsFile protects POST /api/reload. The file holds one
	// "username:hash" line where hash is an encoded argon2id digest.
	// Empty leaves the endpoint unprotected.
	AdminCredsFile string `koanf:"admin_creds_file"`

	// DefaultDivision labels games whose source record carries no division.
	DefaultDivision string `koanf:"default_division"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":9080",
		ScheduleSource:     "assets/data/schedule.json",
		SourceFormat:       "auto",
		CacheBust:          true,
		RefreshIntervalSec: 0,
		AdminCredsFile:     "",
		DefaultDivision:    "Unknown",
	}
}
