// Librarium - PDF Book Library Catalog and Search
// Copyright 2026 The Librarium Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package metrics provides Prometheus metrics collection and export for observability.

This package instruments the catalog layer using the Prometheus client library,
exposing metrics for query performance, search result sizes, catalog dimensions,
and integrity check findings.

# Overview

The package provides metrics for:
  - Catalog query latency and error rates
  - Search result size distribution
  - Catalog size (books, categories, subjects)
  - Integrity check runs and violations found

# Available Metrics

Query Metrics:
  - catalog_query_duration_seconds: Query execution time (histogram)
    Labels: operation (search, get_book, list_categories, list_subjects,
    list_subject_books, list_authors, stats, integrity_check)
    Buckets: Prometheus defaults (.005 .. 10)
  - catalog_query_errors_total: Failed queries (counter)
    Labels: operation, error_type (invalid_criteria, unknown_entry, not_found,
    schema, connection, other)

Search Metrics:
  - catalog_search_result_size: Books returned per search (histogram)
    Buckets: 0, 1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000

Catalog Size Gauges (refreshed from Stats):
  - catalog_books: Current number of books
  - catalog_categories: Current number of categories
  - catalog_subjects: Current number of subjects

Integrity Metrics:
  - catalog_integrity_checks_total: Integrity checks run (counter)
  - catalog_integrity_violations: Violations found by the last check (gauge)
    Labels: kind (missing_category, missing_subject, category_mismatch,
    orphaned_subject)

# Usage Example

Recording query metrics in the database layer:

	func (db *DB) ListCategories(ctx context.Context) (categories []models.Category, err error) {
	    start := time.Now()
	    defer func() { metrics.RecordQuery("list_categories", time.Since(start), err) }()
	    // ...
	}

Recording a search with its result size:

	start := time.Now()
	result, err := db.Search(ctx, criteria)
	metrics.RecordSearch(time.Since(start), len(result.Books), err)

# Exporting Metrics

Librarium is a one-shot CLI, so there are two export paths:

Pushgateway (each run pushes before exit, enabled by config):

	metrics:
	  enabled: true
	  pushgateway_url: http://localhost:9091

	# Pushed as job "librarium" grouped by command
	curl http://localhost:9091/metrics | grep catalog_

Scrape handler (for embedding hosts that keep a process alive):

	http.Handle("/metrics", metrics.Handler())

# Example PromQL Queries

	# Search rate
	rate(catalog_query_duration_seconds_count{operation="search"}[5m])

	# p95 search latency
	histogram_quantile(0.95, rate(catalog_query_duration_seconds_bucket{operation="search"}[5m]))

	# Error rate by type
	rate(catalog_query_errors_total[5m])

	# Median search result size
	histogram_quantile(0.5, rate(catalog_search_result_size_bucket[5m]))

# Thread Safety

All metric recording functions are thread-safe and designed for concurrent use
from multiple goroutines. The Prometheus client library handles synchronization
internally.

# Cardinality Management

To prevent high cardinality issues:

  - Operation labels come from a fixed set of catalog operations
  - Error types are derived by categorizeError into six constants
  - No label ever carries user input (titles, names, paths)

# See Also

  - internal/database: Query metrics recording
  - cmd/librarium: Pushgateway export after each command
  - https://prometheus.io/docs/practices/naming/: Metric naming conventions
*/
package metrics
