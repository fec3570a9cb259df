// Librarium - PDF Book Library Catalog and Search
// Copyright 2026 The Librarium Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging provides centralized zerolog-based structured logging for Librarium.
//
// This package implements a unified logging layer using zerolog, providing
// human-readable console output for interactive terminal use and structured
// JSON output for hosts that collect logs. All application code logs through
// this package instead of owning logger instances.
//
// # Overview
//
// The package provides:
//   - Zero-allocation structured logging via zerolog
//   - Console output format for interactive use (default)
//   - JSON output format for machine consumption
//   - Global logger configured once at startup from the config package
//   - Component loggers with preset fields
//   - Test loggers that capture output in a buffer
//
// # Quick Start
//
//	import "librarium/internal/logging"
//
//	// Initialize at application startup
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "console",
//	})
//
//	// Log messages with structured fields
//	logging.Info().Str("path", cfg.Library.Path).Msg("Catalog opened")
//	logging.Error().Err(err).Str("category", name).Msg("Lookup failed")
//
// # Configuration
//
// The logging section of the application config maps onto Config:
//
//	LOG_LEVEL   - Minimum log level: trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - Output format: console, json (default: console)
//
// Environment variables and the YAML config file are read by the config
// package; main passes the resulting logging config to Init. Before Init
// runs, the package-level default (info/console) is active, so early
// startup logging still works.
//
// Programmatic Configuration:
//
//	logging.Init(logging.Config{
//	    Level:     "debug",    // trace, debug, info, warn, error, fatal
//	    Format:    "console",  // console or json
//	    Caller:    true,       // Include caller file:line
//	    Timestamp: true,       // Include timestamps
//	    Output:    os.Stderr,  // Output writer
//	})
//
// # Log Levels
//
// Supported log levels (from most to least verbose):
//
//	trace  - Per-query diagnostic information (built SQL, argument counts)
//	debug  - Detailed diagnostic information
//	info   - General operational information (default)
//	warn   - Warning conditions that should be addressed
//	error  - Error conditions requiring attention
//	fatal  - Fatal errors that terminate the program
//
// # Structured Logging Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
//
// Use structured fields instead of string formatting:
//
//	// Good - structured, searchable, efficient
//	logging.Info().
//	    Str("category", name).
//	    Int("books", count).
//	    Dur("elapsed", duration).
//	    Msg("Search complete")
//
//	// Avoid - unstructured, harder to parse
//	logging.Info().Msgf("Found %d books in %s in %v", count, name, duration)
//
// # Component Loggers
//
// Create component-specific loggers with default fields:
//
//	catalogLogger := logging.With().Str("component", "catalog").Logger()
//	catalogLogger.Info().Msg("Integrity check started")
//	catalogLogger.Error().Err(err).Msg("Integrity check failed")
//
// # Output Formats
//
// Console Format (interactive, default):
//
//	10:30:00 INF Catalog opened path=library.db books=1312
//
// JSON Format (log collection):
//
//	{"level":"info","time":"2026-01-03T10:30:00Z","message":"Catalog opened","path":"library.db"}
//
// # Thread Safety
//
// All exported functions are safe for concurrent use. The global logger
// is protected by sync.RWMutex for configuration changes.
//
// # Testing
//
// Create test loggers that capture output:
//
//	var buf bytes.Buffer
//	logger := logging.NewTestLogger(&buf)
//	logger.Info().Msg("test message")
//	output := buf.String()
//
// # See Also
//
//   - github.com/rs/zerolog: Underlying logging library
//   - internal/config: LoggingConfig loaded from file and environment
package logging
