// Librarium - PDF Book Library Catalog and Search
// Copyright 2026 The Librarium Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"librarium/internal/config"
	"librarium/internal/logging"
	"librarium/internal/models"
)

// dateLayout is the calendar-day format accepted by the date flags.
const dateLayout = "2006-01-02"

func cmdSearch(ctx context.Context, cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var categories, subjects, authors stringList
	fs.Var(&categories, "category", "restrict to a category (repeatable)")
	fs.Var(&subjects, "subject", "restrict to a subject (repeatable)")
	fs.Var(&authors, "author", "restrict to an author (repeatable)")
	minRating := fs.Int("min-rating", -1, "minimum rating 0-5")
	maxRating := fs.Int("max-rating", -1, "maximum rating 0-5")
	minPages := fs.Int("min-pages", 0, "minimum page count")
	maxPages := fs.Int("max-pages", 0, "maximum page count")
	addedAfter := fs.String("added-after", "", "only books added on or after this date (YYYY-MM-DD)")
	addedBefore := fs.String("added-before", "", "only books added on or before this date (YYYY-MM-DD)")
	sortBy := fs.String("sort", "", "sort field: title, author, or rating")
	order := fs.String("order", "", "sort order: asc or desc")
	limit := fs.Int("limit", 0, "maximum rows to return")
	offset := fs.Int("offset", 0, "rows to skip (requires --limit)")
	jsonOut := fs.Bool("json", false, "emit JSON instead of a table")

	if err := fs.Parse(args); err != nil {
		return exitError
	}

	criteria := models.SearchCriteria{
		Text:       strings.Join(fs.Args(), " "),
		Categories: categories,
		Subjects:   subjects,
		Authors:    authors,
		SortBy:     models.SortField(*sortBy),
		SortOrder:  models.SortOrder(*order),
		Limit:      *limit,
		Offset:     *offset,
	}
	if *minRating >= 0 {
		value := *minRating
		criteria.MinRating = &value
	}
	if *maxRating >= 0 {
		value := *maxRating
		criteria.MaxRating = &value
	}
	if *minPages > 0 {
		value := *minPages
		criteria.MinPages = &value
	}
	if *maxPages > 0 {
		value := *maxPages
		criteria.MaxPages = &value
	}
	if *addedAfter != "" {
		t, err := time.Parse(dateLayout, *addedAfter)
		if err != nil {
			logging.Error().Str("value", *addedAfter).Msg("Invalid --added-after date, expected YYYY-MM-DD")
			return exitError
		}
		criteria.AddedAfter = &t
	}
	if *addedBefore != "" {
		t, err := time.Parse(dateLayout, *addedBefore)
		if err != nil {
			logging.Error().Str("value", *addedBefore).Msg("Invalid --added-before date, expected YYYY-MM-DD")
			return exitError
		}
		criteria.AddedBefore = &t
	}

	applySearchLimits(&criteria, cfg.Search)

	db, err := openCatalog(cfg)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to open catalog")
		return exitError
	}
	defer closeCatalog(db)

	result, err := db.Search(ctx, criteria)
	if err != nil {
		logging.Error().Err(err).Msg("Search failed")
		return exitError
	}

	if *jsonOut {
		return printJSON(result)
	}

	printBooks(result.Books)
	fmt.Printf("\n%d of %d book(s)\n", len(result.Books), result.TotalCount)
	return exitOK
}

// applySearchLimits applies the configured default and cap to the
// requested page size. The catalog itself never limits results, so an
// unlimited search stays unlimited unless configured otherwise.
func applySearchLimits(criteria *models.SearchCriteria, search config.SearchConfig) {
	if criteria.Limit == 0 && search.DefaultLimit > 0 {
		criteria.Limit = search.DefaultLimit
	}
	if search.MaxLimit > 0 && criteria.Limit > search.MaxLimit {
		criteria.Limit = search.MaxLimit
	}
}
