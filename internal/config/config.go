// Librarium - PDF Book Library Catalog and Search
// Copyright 2026 The Librarium Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML config file, and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (librarium.yaml) for persistent settings
//  3. Environment Variables: Override any setting
//
// Example - Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	db, err := database.New(&cfg.Library)
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Library LibraryConfig `koanf:"library"`
	Search  SearchConfig  `koanf:"search"`
	Logging LoggingConfig `koanf:"logging"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// LibraryConfig holds catalog database settings.
type LibraryConfig struct {
	// Path is the SQLite catalog file. Relative paths resolve against the
	// working directory.
	Path string `koanf:"path"`

	// CreateIfMissing creates an empty catalog with the fixed schema when
	// Path does not exist. When false, a missing file is a connection error.
	CreateIfMissing bool `koanf:"create_if_missing"`

	// BusyTimeout is how long a connection waits on a locked database before
	// failing. The catalog may be shared with a running import.
	BusyTimeout time.Duration `koanf:"busy_timeout"`

	// MaxOpenConns caps the connection pool (0 = use NumCPU).
	MaxOpenConns int `koanf:"max_open_conns"`
}

// SearchConfig holds presentation-side search settings. These are applied by
// the CLI when building criteria; the query layer itself executes whatever
// limit the criteria carry.
type SearchConfig struct {
	// DefaultLimit is applied when no limit flag is given (0 = all matches).
	DefaultLimit int `koanf:"default_limit"`

	// MaxLimit caps a user-supplied limit (0 = uncapped).
	MaxLimit int `koanf:"max_limit"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: console
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// MetricsConfig holds Prometheus instrumentation settings.
type MetricsConfig struct {
	// Enabled turns on query instrumentation. The metrics handler is exposed
	// by embedding applications, not by the CLI itself.
	Enabled bool `koanf:"enabled"`

	// PushgatewayURL, when set, is the Prometheus Pushgateway the CLI
	// pushes collected metrics to after each command. Empty disables
	// pushing. Requires Enabled.
	PushgatewayURL string `koanf:"pushgateway_url"`
}

// Validate checks configuration consistency. It is called by Load after all
// layers are merged, so it sees the effective configuration.
func (c *Config) Validate() error {
	if c.Library.Path == "" {
		return fmt.Errorf("library.path must not be empty")
	}
	if c.Library.BusyTimeout < 0 {
		return fmt.Errorf("library.busy_timeout must not be negative")
	}
	if c.Library.MaxOpenConns < 0 {
		return fmt.Errorf("library.max_open_conns must not be negative")
	}

	if c.Search.DefaultLimit < 0 || c.Search.MaxLimit < 0 {
		return fmt.Errorf("search limits must not be negative")
	}
	if c.Search.MaxLimit > 0 && c.Search.DefaultLimit > c.Search.MaxLimit {
		return fmt.Errorf("search.default_limit %d exceeds search.max_limit %d",
			c.Search.DefaultLimit, c.Search.MaxLimit)
	}

	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of trace, debug, info, warn, error; got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console; got %q", c.Logging.Format)
	}

	if c.Metrics.PushgatewayURL != "" && !c.Metrics.Enabled {
		return fmt.Errorf("metrics.pushgateway_url requires metrics.enabled")
	}

	return nil
}
