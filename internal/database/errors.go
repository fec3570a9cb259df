// Librarium - PDF Book Library Catalog and Search
// Copyright 2026 The Librarium Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package database

import (
	"errors"
	"io"
	"strings"
)

// SchemaError indicates the catalog file does not match the fixed schema
// contract (missing table, missing or renamed column). It is reported at open
// time by the contract check and classified from driver errors at query time.
// A SchemaError means the file is not a usable catalog; it is never conflated
// with an empty result set.
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string {
	return "catalog schema mismatch: " + e.Err.Error()
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// ConnectionError indicates the catalog store could not be reached or has
// gone away (missing file, closed handle, locked database). The operation
// was not executed; callers decide whether to surface or abandon, this layer
// never retries.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return "catalog connection failed: " + e.Err.Error()
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// classifyError wraps driver errors into the package taxonomy so callers can
// use errors.As to distinguish a broken store from a broken query. Errors that
// are neither schema nor connection related pass through unchanged.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case isSchemaError(err):
		return &SchemaError{Err: err}
	case isConnectionError(err):
		return &ConnectionError{Err: err}
	default:
		return err
	}
}

// isSchemaError checks if an error indicates a schema mismatch
func isSchemaError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := err.Error()
	return strings.Contains(errMsg, "no such table") ||
		strings.Contains(errMsg, "no such column") ||
		strings.Contains(errMsg, "has no column named")
}

// isConnectionError checks if an error indicates catalog connection loss
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, io.EOF) {
		return true
	}
	errMsg := err.Error()
	return strings.Contains(errMsg, "database is closed") ||
		strings.Contains(errMsg, "sql: database is closed") ||
		strings.Contains(errMsg, "driver: bad connection") ||
		strings.Contains(errMsg, "unable to open database") ||
		strings.Contains(errMsg, "database is locked") ||
		strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "broken pipe")
}

// closeQuietly closes a resource and explicitly ignores any error
// Use this for cleanup operations in error paths where Close() errors are not actionable
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // Explicitly ignore error - cleanup is best-effort
	}
}
