// Librarium - PDF Book Library Catalog and Search
// Copyright 2026 The Librarium Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver

	"librarium/internal/config"
	"librarium/internal/logging"
)

// timeFormat is the canonical timestamp layout stored in the added_at
// column. It matches SQLite's datetime() output, so catalogs written by
// other tools stay readable and lexical order equals chronological order.
const timeFormat = "2006-01-02 15:04:05"

// DB wraps the catalog database connection and provides read-only access
// to books, categories, and subjects. All methods borrow a pooled
// connection for the duration of a single call.
type DB struct {
	conn *sql.DB
	cfg  *config.LibraryConfig
}

// New opens the catalog file at cfg.Path and verifies the schema contract.
// When cfg.CreateIfMissing is set, a missing file is created and
// initialized with empty catalog tables; otherwise a missing file is
// reported as a *ConnectionError. A file that exists but lacks the
// expected tables or columns is reported as a *SchemaError.
func New(cfg *config.LibraryConfig) (*DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("library config is required")
	}
	if cfg.Path == "" {
		return nil, fmt.Errorf("library path is required")
	}

	if _, err := os.Stat(cfg.Path); err != nil {
		if !os.IsNotExist(err) {
			return nil, &ConnectionError{Err: fmt.Errorf("failed to stat catalog file: %w", err)}
		}
		if !cfg.CreateIfMissing {
			return nil, &ConnectionError{Err: fmt.Errorf("catalog file does not exist: %s", cfg.Path)}
		}
		// Use 0750 permissions (owner: rwx, group: rx, other: none) per gosec G301
		if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, &ConnectionError{Err: fmt.Errorf("failed to create catalog directory %s: %w", dir, err)}
			}
		}
	}

	conn, err := sql.Open("sqlite", buildDSN(cfg))
	if err != nil {
		return nil, &ConnectionError{Err: fmt.Errorf("failed to open catalog: %w", err)}
	}

	db := &DB{conn: conn, cfg: cfg}
	db.configureConnectionPool()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		closeQuietly(conn)
		return nil, &ConnectionError{Err: fmt.Errorf("failed to connect to catalog: %w", err)}
	}

	if err := db.initialize(ctx); err != nil {
		closeQuietly(conn)
		return nil, err
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("create_if_missing", cfg.CreateIfMissing).
		Msg("Catalog opened")

	return db, nil
}

// buildDSN assembles the driver connection string. The busy timeout keeps
// reads from failing immediately while an importer briefly holds the
// write lock on the same file.
func buildDSN(cfg *config.LibraryConfig) string {
	timeout := cfg.BusyTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)", cfg.Path, timeout.Milliseconds())
}

// configureConnectionPool applies pool limits suited to a local
// single-file database.
func (db *DB) configureConnectionPool() {
	maxOpen := db.cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = runtime.NumCPU()
	}
	db.conn.SetMaxOpenConns(maxOpen)
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// initialize creates the catalog tables when requested and verifies the
// schema contract either way, so an existing file with a foreign layout
// is rejected before any query runs against it.
func (db *DB) initialize(ctx context.Context) error {
	if db.cfg.CreateIfMissing {
		if err := db.createTables(ctx); err != nil {
			return err
		}
	}
	return db.verifySchema(ctx)
}

// Ping checks that the catalog connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	if db == nil || db.conn == nil {
		return &ConnectionError{Err: fmt.Errorf("catalog is not open")}
	}
	if err := db.conn.PingContext(ctx); err != nil {
		return &ConnectionError{Err: err}
	}
	return nil
}

// Close releases the connection pool. Safe to call on a closed DB.
func (db *DB) Close() error {
	if db == nil || db.conn == nil {
		return nil
	}
	if err := db.conn.Close(); err != nil {
		return fmt.Errorf("failed to close catalog: %w", err)
	}
	logging.Debug().Str("path", db.cfg.Path).Msg("Catalog closed")
	return nil
}
