// Librarium - PDF Book Library Catalog and Search
// Copyright 2026 The Librarium Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package database provides read-only data access to the Librarium catalog.
//
// # Overview
//
// This package is the data layer between the application and the SQLite
// catalog file, providing criteria-driven search, catalog enumeration, and
// integrity verification over the fixed three-table schema.
//
// # Architecture
//
// The package is organized into domain-specific files:
//
// Core Database Operations:
//   - database.go: Database lifecycle (open, pool configuration, schema verification, close)
//   - database_schema.go: Table creation for new catalogs and the schema contract check
//   - errors.go: Error taxonomy, driver error classification, cleanup helpers
//
// Query Operations:
//   - filter.go: SearchCriteria validation and WHERE clause construction
//   - search.go: Criteria search execution, row mapping, single-book lookups
//   - catalog.go: Category/subject/author enumeration, stats, integrity check
//
// # Database Technology
//
// The package uses SQLite via modernc.org/sqlite:
//   - Single-file catalog databases, the native format for a desktop library
//   - Pure-Go driver, no cgo required
//   - Case-insensitive matching via LOWER() and COLLATE NOCASE
//
// # Query Construction
//
// Every query is built from fixed SQL text plus parameter placeholders; user
// input only ever travels through the argument list. Filters combine with AND
// across dimensions and IN (OR) within a dimension. Result ordering is always
// deterministic: a whitelisted sort key followed by title and id tie-breaks.
//
// # Error Taxonomy
//
// Failures are classified into distinct, inspectable kinds (invalid criteria,
// unknown catalog entries, schema mismatch, connection loss) so callers can
// tell an empty catalog from a broken one. See errors.go.
package database
