// Librarium - PDF Book Library Catalog and Search
// Copyright 2026 The Librarium Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
database_schema.go - Catalog Schema Management

This file creates and verifies the catalog schema. The table and column
names are a compatibility contract shared with the importer and with any
external tool that reads the same catalog file, so they must not change.

Tables:
  - books: One row per PDF in the library, with optional links to a
    category and a subject plus user metadata (rating, page count).
  - categories: Top-level grouping, names unique across the catalog.
  - subjects: Second-level grouping under a category. Subject names are
    only unique within their category, so the same name may exist under
    several categories.

Verification Strategy:
verifySchema probes each table with a SELECT naming every contract
column. A catalog created by an older tool that lacks a table or column
fails the probe, and the driver error is reported as *SchemaError. An
empty catalog passes: verification checks shape, not contents.

Referential integrity between books, subjects, and categories is not
enforced by the schema. Catalogs written by external tools may contain
dangling references, which is why CheckIntegrity exists.
*/
package database

import (
	"context"
	"fmt"
)

// createTables creates the catalog tables and indexes when they do not
// already exist. Only called when config requests catalog creation.
func (db *DB) createTables(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		);`,

		// Subject names repeat across categories, so uniqueness is scoped
		// to (name, category_id).
		`CREATE TABLE IF NOT EXISTS subjects (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			category_id INTEGER NOT NULL REFERENCES categories(id),
			UNIQUE(name, category_id)
		);`,

		`CREATE TABLE IF NOT EXISTS books (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			author TEXT,
			category_id INTEGER REFERENCES categories(id),
			subject_id INTEGER REFERENCES subjects(id),
			file_path TEXT,
			thumbnail_path TEXT,
			rating INTEGER NOT NULL DEFAULT 0,
			page_count INTEGER NOT NULL DEFAULT 0,
			added_at TEXT NOT NULL DEFAULT (datetime('now'))
		);`,

		`CREATE INDEX IF NOT EXISTS idx_books_title ON books(title);`,
		`CREATE INDEX IF NOT EXISTS idx_books_author ON books(author);`,
		`CREATE INDEX IF NOT EXISTS idx_books_category ON books(category_id);`,
		`CREATE INDEX IF NOT EXISTS idx_books_subject ON books(subject_id);`,
		`CREATE INDEX IF NOT EXISTS idx_subjects_category ON subjects(category_id);`,
	}

	for _, query := range queries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return classifyError(fmt.Errorf("failed to create catalog schema: %w", err))
		}
	}

	return nil
}

// schemaProbes name every contract column of every catalog table. Each
// probe fails on a missing table or column without reading any rows.
var schemaProbes = []string{
	`SELECT id, title, author, category_id, subject_id, file_path, thumbnail_path, rating, page_count, added_at FROM books LIMIT 0`,
	`SELECT id, name FROM categories LIMIT 0`,
	`SELECT id, name, category_id FROM subjects LIMIT 0`,
}

// verifySchema checks that the open file exposes the catalog contract.
// Any mismatch is reported as *SchemaError, never as an empty result.
func (db *DB) verifySchema(ctx context.Context) error {
	for _, probe := range schemaProbes {
		rows, err := db.conn.QueryContext(ctx, probe)
		if err != nil {
			return &SchemaError{Err: err}
		}
		if err := rows.Close(); err != nil {
			return &SchemaError{Err: err}
		}
		if err := rows.Err(); err != nil {
			return &SchemaError{Err: err}
		}
	}
	return nil
}
