// Librarium - PDF Book Library Catalog and Search
// Copyright 2026 The Librarium Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package main is the entry point for the librarium command line tool.
//
// Librarium manages a catalog of PDF books stored in a single SQLite
// file and shared with the desktop application and the importer. The
// CLI searches and browses that catalog; it never modifies book rows
// (the init subcommand only creates empty tables in a new file).
//
// # Subcommands
//
//	search      Search books by text and filters
//	categories  List categories that contain books
//	subjects    List subjects of one category
//	books       List books of one subject within a category
//	authors     List distinct authors
//	stats       Show catalog counts
//	check       Scan the catalog for dangling references
//	init        Create an empty catalog file
//	version     Print the version
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (e.g. LIBRARY_PATH, LOG_LEVEL)
//   - Config file (librarium.yaml, or LIBRARIUM_CONFIG)
//   - Built-in defaults
//
// # Example Usage
//
// Search every book with "algebra" in the title or author:
//
//	librarium search algebra
//
// Search within two categories, highest rated first, as JSON:
//
//	librarium search --category "Computer Science" --category Math \
//	  --sort rating --order desc --json
//
// Browse the catalog tree:
//
//	librarium categories
//	librarium subjects "Computer Science"
//	librarium books "Computer Science" Algorithms
//
// Create a fresh catalog and verify an existing one:
//
//	librarium init
//	librarium check
//
// # Exit Codes
//
//	0  success
//	1  error (bad arguments, catalog unreachable, malformed criteria)
//	2  integrity violations found by check
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"librarium/internal/config"
	"librarium/internal/database"
	"librarium/internal/logging"
	"librarium/internal/metrics"
)

const version = "0.3.0"

const (
	exitOK         = 0
	exitError      = 1
	exitViolations = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage(os.Stderr)
		return exitError
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "help", "-h", "--help":
		printUsage(os.Stdout)
		return exitOK
	case "version", "--version":
		fmt.Println("librarium " + version)
		return exitOK
	}

	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Error().Err(err).Msg("Failed to load configuration")
		return exitError
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := dispatch(ctx, cfg, command, args)

	if cfg.Metrics.Enabled && cfg.Metrics.PushgatewayURL != "" {
		if err := metrics.Push(cfg.Metrics.PushgatewayURL, command); err != nil {
			logging.Warn().Err(err).Msg("Failed to push metrics")
		}
	}

	return code
}

func dispatch(ctx context.Context, cfg *config.Config, command string, args []string) int {
	switch command {
	case "search":
		return cmdSearch(ctx, cfg, args)
	case "categories":
		return cmdCategories(ctx, cfg, args)
	case "subjects":
		return cmdSubjects(ctx, cfg, args)
	case "books":
		return cmdBooks(ctx, cfg, args)
	case "authors":
		return cmdAuthors(ctx, cfg, args)
	case "stats":
		return cmdStats(ctx, cfg, args)
	case "check":
		return cmdCheck(ctx, cfg, args)
	case "init":
		return cmdInit(cfg)
	default:
		fmt.Fprintf(os.Stderr, "librarium: unknown command %q\n\n", command)
		printUsage(os.Stderr)
		return exitError
	}
}

// openCatalog opens the configured catalog for a read-only command. The
// file must already exist unless the configuration says otherwise.
func openCatalog(cfg *config.Config) (*database.DB, error) {
	libCfg := cfg.Library
	return database.New(&libCfg)
}

// closeCatalog closes db, logging instead of failing: the command's own
// result already happened by the time close runs.
func closeCatalog(db *database.DB) {
	if err := db.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing catalog")
	}
}

// stringList collects repeatable flag values, e.g.
// --category A --category B.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

func printUsage(w *os.File) {
	fmt.Fprint(w, `Usage: librarium <command> [options] [arguments]

Commands:
  search [options] [text]              Search books by text and filters
  categories [--json]                  List categories that contain books
  subjects [--json] <category>         List subjects of one category
  books [--json] <category> <subject>  List books of one subject
  authors [--json]                     List distinct authors
  stats [--json]                       Show catalog counts
  check [--json]                       Scan for dangling references
  init                                 Create an empty catalog file
  version                              Print the version
  help                                 Show this help

Search options:
  --category NAME   Restrict to a category (repeatable)
  --subject NAME    Restrict to a subject (repeatable)
  --author NAME     Restrict to an author (repeatable)
  --min-rating N    Minimum rating 0-5
  --max-rating N    Maximum rating 0-5
  --min-pages N     Minimum page count
  --max-pages N     Maximum page count
  --added-after D   Only books added on or after D (YYYY-MM-DD)
  --added-before D  Only books added on or before D (YYYY-MM-DD)
  --sort FIELD      Sort by title, author, or rating (default title)
  --order DIR       asc or desc (default asc)
  --limit N         Maximum rows to return
  --offset N        Rows to skip (requires --limit)
  --json            Emit JSON instead of a table

The catalog file is taken from library.path in librarium.yaml or the
LIBRARY_PATH environment variable.
`)
}
