// Librarium - PDF Book Library Catalog and Search
// Copyright 2026 The Librarium Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package config provides centralized configuration management for Librarium.

This package implements a layered configuration system using Koanf v2,
merging built-in defaults, an optional YAML config file, and environment
variables into a single validated Config struct.

# Overview

Configuration is loaded from three sources with clear precedence:

 1. Defaults: Built-in sensible defaults for all settings
 2. Config File: Optional YAML file for persistent settings
 3. Environment Variables: Highest priority, override anything

# Configuration Structure

The Config struct has four sections:

  - LibraryConfig: Catalog file path, creation policy, connection settings
  - SearchConfig: Default and maximum result limits applied by the CLI
  - LoggingConfig: Log level, format, and caller reporting
  - MetricsConfig: Prometheus instrumentation and Pushgateway export

# Environment Variables

Library Catalog (LibraryConfig):
  - LIBRARY_PATH: SQLite catalog file path (default: library.db)
  - LIBRARY_CREATE_IF_MISSING: Create an empty catalog when the file is
    absent (default: false)
  - LIBRARY_BUSY_TIMEOUT: Wait on a locked catalog, e.g. "10s" (default: 5s)
  - LIBRARY_MAX_OPEN_CONNS: Connection pool cap, 0 = CPU count (default: 0)

Search (SearchConfig):
  - SEARCH_DEFAULT_LIMIT: Limit applied when no flag is given, 0 = all
    matches (default: 0)
  - SEARCH_MAX_LIMIT: Cap on a user-supplied limit, 0 = uncapped (default: 0)

Logging (LoggingConfig):
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: console, json (default: console)
  - LOG_CALLER: Include caller file:line (default: false)

Metrics (MetricsConfig):
  - METRICS_ENABLED: Enable query instrumentation (default: true)
  - METRICS_PUSHGATEWAY_URL: Pushgateway to push metrics to after each
    command, empty disables pushing (default: empty)

Unmapped environment variables are ignored, so PATH or HOME never leak
into the configuration.

# Config File Discovery

The config file is located by checking, in order:

 1. The path in LIBRARIUM_CONFIG (ignored if the file does not exist)
 2. librarium.yaml, librarium.yml, config.yaml in the working directory
 3. The per-user config directory, e.g. ~/.config/librarium/config.yaml

The first file found is used; absence of a config file is not an error.

# Quick Start

	import "librarium/internal/config"

	func main() {
	    cfg, err := config.Load()
	    if err != nil {
	        logging.Fatal().Err(err).Msg("Failed to load configuration")
	    }

	    db, err := database.New(&cfg.Library)
	    // ...
	}

Override settings in tests:

	t.Setenv("LIBRARY_PATH", filepath.Join(t.TempDir(), "library.db"))
	t.Setenv("LOG_LEVEL", "debug")
	cfg, err := config.Load()

# Example Config File

	library:
	  path: /home/alice/Books/library.db
	  create_if_missing: false
	  busy_timeout: 5s

	search:
	  default_limit: 0
	  max_limit: 0

	logging:
	  level: info
	  format: console

	metrics:
	  enabled: true
	  pushgateway_url: ""

# Validation

Load validates the merged configuration before returning it:

  - library.path must not be empty
  - library.busy_timeout and library.max_open_conns must not be negative
  - search limits must not be negative, and default_limit must not exceed
    a non-zero max_limit
  - logging.level and logging.format must come from their whitelists
  - metrics.pushgateway_url requires metrics.enabled

A validation failure names the offending key, so LOG_LEVEL=verbose fails
with a message mentioning logging.level.

# Thread Safety

Config is immutable after Load() and safe for concurrent read access.

# See Also

  - internal/logging: Consumes LoggingConfig at startup
  - internal/database: Consumes LibraryConfig when opening the catalog
  - github.com/knadh/koanf/v2: Underlying configuration library
*/
package config
