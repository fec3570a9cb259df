// Librarium - PDF Book Library Catalog and Search
// Copyright 2026 The Librarium Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Library.Path != "library.db" {
		t.Errorf("default path: expected library.db, got %q", cfg.Library.Path)
	}
	if cfg.Library.CreateIfMissing {
		t.Error("CreateIfMissing should default to false")
	}
	if cfg.Library.BusyTimeout != 5*time.Second {
		t.Errorf("default busy timeout: expected 5s, got %v", cfg.Library.BusyTimeout)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Errorf("default logging: expected info/console, got %s/%s", cfg.Logging.Level, cfg.Logging.Format)
	}
	if !cfg.Metrics.Enabled {
		t.Error("metrics should default to enabled")
	}
	if cfg.Metrics.PushgatewayURL != "" {
		t.Error("pushgateway URL should default to empty")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Library.Path == "" {
		t.Error("loaded config must have a catalog path")
	}
	if cfg.Logging.Level == "" {
		t.Error("loaded config must have a log level")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LIBRARY_PATH", "/data/books/library.db")
	t.Setenv("LIBRARY_CREATE_IF_MISSING", "true")
	t.Setenv("LIBRARY_BUSY_TIMEOUT", "10s")
	t.Setenv("SEARCH_MAX_LIMIT", "500")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("METRICS_PUSHGATEWAY_URL", "http://localhost:9091")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Library.Path != "/data/books/library.db" {
		t.Errorf("path: expected /data/books/library.db, got %q", cfg.Library.Path)
	}
	if !cfg.Library.CreateIfMissing {
		t.Error("CreateIfMissing should be overridden to true")
	}
	if cfg.Library.BusyTimeout != 10*time.Second {
		t.Errorf("busy timeout: expected 10s, got %v", cfg.Library.BusyTimeout)
	}
	if cfg.Search.MaxLimit != 500 {
		t.Errorf("max limit: expected 500, got %d", cfg.Search.MaxLimit)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level: expected debug, got %q", cfg.Logging.Level)
	}
	if cfg.Metrics.PushgatewayURL != "http://localhost:9091" {
		t.Errorf("pushgateway: expected override, got %q", cfg.Metrics.PushgatewayURL)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	content := `library:
  path: /data/books.db
  busy_timeout: 2s
search:
  default_limit: 25
  max_limit: 100
logging:
  level: warn
`
	path := filepath.Join(t.TempDir(), "librarium.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Library.Path != "/data/books.db" {
		t.Errorf("path: expected /data/books.db, got %q", cfg.Library.Path)
	}
	if cfg.Library.BusyTimeout != 2*time.Second {
		t.Errorf("busy timeout: expected 2s, got %v", cfg.Library.BusyTimeout)
	}
	if cfg.Search.DefaultLimit != 25 || cfg.Search.MaxLimit != 100 {
		t.Errorf("search limits: expected 25/100, got %d/%d", cfg.Search.DefaultLimit, cfg.Search.MaxLimit)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("log level: expected warn, got %q", cfg.Logging.Level)
	}

	// Unset fields keep their defaults through the merge.
	if cfg.Logging.Format != "console" {
		t.Errorf("log format should stay at default, got %q", cfg.Logging.Format)
	}
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	content := "logging:\n  level: warn\n"
	path := filepath.Join(t.TempDir(), "librarium.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("env must beat file: expected error, got %q", cfg.Logging.Level)
	}
}

func TestLoad_InvalidConfigRejected(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")

	_, err := Load()
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if !strings.Contains(err.Error(), "logging.level") {
		t.Errorf("error should name the offending key: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty path", func(c *Config) { c.Library.Path = "" }},
		{"negative busy timeout", func(c *Config) { c.Library.BusyTimeout = -time.Second }},
		{"negative max open conns", func(c *Config) { c.Library.MaxOpenConns = -1 }},
		{"negative default limit", func(c *Config) { c.Search.DefaultLimit = -1 }},
		{"negative max limit", func(c *Config) { c.Search.MaxLimit = -10 }},
		{"default limit above max", func(c *Config) { c.Search.DefaultLimit = 200; c.Search.MaxLimit = 100 }},
		{"unknown log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"unknown log format", func(c *Config) { c.Logging.Format = "xml" }},
		{"pushgateway without metrics", func(c *Config) {
			c.Metrics.Enabled = false
			c.Metrics.PushgatewayURL = "http://localhost:9091"
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"LIBRARY_PATH", "library.path"},
		{"LIBRARY_CREATE_IF_MISSING", "library.create_if_missing"},
		{"LIBRARY_BUSY_TIMEOUT", "library.busy_timeout"},
		{"LIBRARY_MAX_OPEN_CONNS", "library.max_open_conns"},
		{"SEARCH_DEFAULT_LIMIT", "search.default_limit"},
		{"SEARCH_MAX_LIMIT", "search.max_limit"},
		{"LOG_LEVEL", "logging.level"},
		{"LOG_FORMAT", "logging.format"},
		{"LOG_CALLER", "logging.caller"},
		{"METRICS_ENABLED", "metrics.enabled"},
		{"METRICS_PUSHGATEWAY_URL", "metrics.pushgateway_url"},

		// Unrelated variables are dropped, not guessed at.
		{"PATH", ""},
		{"HOME", ""},
		{"LIBRARY_UNKNOWN_KEY", ""},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.env); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.env, tt.want, got)
		}
	}
}

func TestFindConfigFile_EnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: info\n"), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	if got := findConfigFile(); got != path {
		t.Errorf("expected %q, got %q", path, got)
	}
}

func TestFindConfigFile_MissingEnvPathIgnored(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "absent.yaml"))

	// A dangling override falls through to the regular search paths; in a
	// bare test directory that means no file at all.
	if got := findConfigFile(); got != "" && !strings.HasSuffix(got, "config.yaml") {
		t.Errorf("expected fallback search, got %q", got)
	}
}
