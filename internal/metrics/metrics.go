// Librarium - PDF Book Library Catalog and Search
// Copyright 2026 The Librarium Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package metrics

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Prometheus Metrics Integration
// This package provides instrumentation for:
// - Catalog query performance (SQLite)
// - Search result sizes
// - Catalog dimensions (books, categories, subjects)
// - Integrity check findings

var (
	// Catalog Query Metrics
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_query_duration_seconds",
			Help:    "Duration of catalog queries in seconds",
			Buckets: prometheus.DefBuckets, // 0.005s .. 10s
		},
		[]string{"operation"},
	)

	QueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_query_errors_total",
			Help: "Total number of catalog query errors",
		},
		[]string{"operation", "error_type"},
	)

	// SearchResultSize tracks how many books each search returns
	SearchResultSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_search_result_size",
			Help:    "Number of books returned per search",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000},
		},
	)

	// Catalog Size Gauges (refreshed from Stats)
	CatalogBooks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_books",
			Help: "Current number of books in the catalog",
		},
	)

	CatalogCategories = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_categories",
			Help: "Current number of categories in the catalog",
		},
	)

	CatalogSubjects = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_subjects",
			Help: "Current number of subjects in the catalog",
		},
	)

	// Integrity Check Metrics
	IntegrityViolations = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_integrity_violations",
			Help: "Referential violations found by the last integrity check",
		},
		[]string{"kind"},
	)

	IntegrityChecksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_integrity_checks_total",
			Help: "Total number of integrity checks run",
		},
	)
)

// RecordQuery records a catalog query metric
func RecordQuery(operation string, duration time.Duration, err error) {
	QueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		QueryErrors.WithLabelValues(operation, categorizeError(err)).Inc()
	}
}

// RecordSearch records a completed search with its result size
func RecordSearch(duration time.Duration, resultCount int, err error) {
	RecordQuery("search", duration, err)
	if err == nil {
		SearchResultSize.Observe(float64(resultCount))
	}
}

// UpdateCatalogGauges refreshes catalog size gauges
func UpdateCatalogGauges(books, categories, subjects int) {
	CatalogBooks.Set(float64(books))
	CatalogCategories.Set(float64(categories))
	CatalogSubjects.Set(float64(subjects))
}

// RecordIntegrityCheck records the findings of one integrity check run
func RecordIntegrityCheck(violationsByKind map[string]int) {
	IntegrityChecksTotal.Inc()
	for kind, count := range violationsByKind {
		IntegrityViolations.WithLabelValues(kind).Set(float64(count))
	}
}

// categorizeError maps an error to a low-cardinality label value.
// Works on messages to avoid importing the database package (import cycle).
func categorizeError(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "invalid search criteria"):
		return "invalid_criteria"
	case strings.Contains(msg, "unknown category"), strings.Contains(msg, "unknown subject"):
		return "unknown_entry"
	case strings.Contains(msg, "not found"):
		return "not_found"
	case strings.Contains(msg, "schema"):
		return "schema"
	case strings.Contains(msg, "connection"), strings.Contains(msg, "database is closed"):
		return "connection"
	default:
		return "other"
	}
}

// Handler returns the Prometheus scrape handler for the default registry.
// Librarium itself is a one-shot CLI; embedding hosts (a GUI shell or a
// future server mode) mount this on their HTTP mux.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Push sends all collected metrics to a Prometheus Pushgateway, grouped
// by the command that produced them. One-shot CLI runs exit before any
// scraper could visit, so pushing is the only way their metrics survive.
func Push(gatewayURL, command string) error {
	return push.New(gatewayURL, "librarium").
		Gatherer(prometheus.DefaultGatherer).
		Grouping("command", command).
		Push()
}
