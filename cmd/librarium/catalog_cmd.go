// Librarium - PDF Book Library Catalog and Search
// Copyright 2026 The Librarium Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"librarium/internal/config"
	"librarium/internal/database"
	"librarium/internal/logging"
)

// parseListFlags handles the shared flag set of the listing subcommands,
// which only take --json.
func parseListFlags(name string, args []string) (jsonOut bool, rest []string, ok bool) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	j := fs.Bool("json", false, "emit JSON instead of a table")
	if err := fs.Parse(args); err != nil {
		return false, nil, false
	}
	return *j, fs.Args(), true
}

func cmdCategories(ctx context.Context, cfg *config.Config, args []string) int {
	jsonOut, _, ok := parseListFlags("categories", args)
	if !ok {
		return exitError
	}

	db, err := openCatalog(cfg)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to open catalog")
		return exitError
	}
	defer closeCatalog(db)

	categories, err := db.ListCategories(ctx)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to list categories")
		return exitError
	}

	if jsonOut {
		return printJSON(categories)
	}

	w := newTable()
	fmt.Fprintln(w, "CATEGORY\tBOOKS")
	for _, category := range categories {
		fmt.Fprintf(w, "%s\t%d\n", category.Name, category.BookCount)
	}
	flushTable(w)
	return exitOK
}

func cmdSubjects(ctx context.Context, cfg *config.Config, args []string) int {
	jsonOut, rest, ok := parseListFlags("subjects", args)
	if !ok {
		return exitError
	}
	if len(rest) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: librarium subjects [--json] <category>")
		return exitError
	}
	category := rest[0]

	db, err := openCatalog(cfg)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to open catalog")
		return exitError
	}
	defer closeCatalog(db)

	subjects, err := db.ListSubjectsForCategory(ctx, category)
	if err != nil {
		logging.Error().Err(err).Str("category", category).Msg("Failed to list subjects")
		return exitError
	}

	if jsonOut {
		return printJSON(subjects)
	}

	w := newTable()
	fmt.Fprintln(w, "SUBJECT\tBOOKS")
	for _, subject := range subjects {
		fmt.Fprintf(w, "%s\t%d\n", subject.Name, subject.BookCount)
	}
	flushTable(w)
	return exitOK
}

func cmdBooks(ctx context.Context, cfg *config.Config, args []string) int {
	jsonOut, rest, ok := parseListFlags("books", args)
	if !ok {
		return exitError
	}
	if len(rest) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: librarium books [--json] <category> <subject>")
		return exitError
	}
	category, subject := rest[0], rest[1]

	db, err := openCatalog(cfg)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to open catalog")
		return exitError
	}
	defer closeCatalog(db)

	books, err := db.ListBooksForSubject(ctx, category, subject)
	if err != nil {
		logging.Error().Err(err).
			Str("category", category).
			Str("subject", subject).
			Msg("Failed to list books")
		return exitError
	}

	if jsonOut {
		return printJSON(books)
	}

	printBooks(books)
	return exitOK
}

func cmdAuthors(ctx context.Context, cfg *config.Config, args []string) int {
	jsonOut, _, ok := parseListFlags("authors", args)
	if !ok {
		return exitError
	}

	db, err := openCatalog(cfg)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to open catalog")
		return exitError
	}
	defer closeCatalog(db)

	authors, err := db.ListAuthors(ctx)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to list authors")
		return exitError
	}

	if jsonOut {
		return printJSON(authors)
	}

	for _, author := range authors {
		fmt.Println(author)
	}
	return exitOK
}

func cmdStats(ctx context.Context, cfg *config.Config, args []string) int {
	jsonOut, _, ok := parseListFlags("stats", args)
	if !ok {
		return exitError
	}

	db, err := openCatalog(cfg)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to open catalog")
		return exitError
	}
	defer closeCatalog(db)

	stats, err := db.Stats(ctx)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to collect stats")
		return exitError
	}

	if jsonOut {
		return printJSON(stats)
	}

	w := newTable()
	fmt.Fprintf(w, "Books\t%d\n", stats.TotalBooks)
	fmt.Fprintf(w, "Categories\t%d\n", stats.TotalCategories)
	fmt.Fprintf(w, "Subjects\t%d\n", stats.TotalSubjects)
	fmt.Fprintf(w, "Authors\t%d\n", stats.TotalAuthors)
	fmt.Fprintf(w, "Rated books\t%d\n", stats.RatedBooks)
	flushTable(w)
	return exitOK
}

func cmdCheck(ctx context.Context, cfg *config.Config, args []string) int {
	jsonOut, _, ok := parseListFlags("check", args)
	if !ok {
		return exitError
	}

	db, err := openCatalog(cfg)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to open catalog")
		return exitError
	}
	defer closeCatalog(db)

	violations, err := db.CheckIntegrity(ctx)
	if err != nil {
		logging.Error().Err(err).Msg("Integrity check failed")
		return exitError
	}

	if jsonOut {
		if code := printJSON(violations); code != exitOK {
			return code
		}
	} else if len(violations) == 0 {
		fmt.Println("Catalog is consistent.")
	} else {
		w := newTable()
		fmt.Fprintln(w, "KIND\tDETAIL")
		for _, violation := range violations {
			fmt.Fprintf(w, "%s\t%s\n", violation.Kind, violation.Detail)
		}
		flushTable(w)
	}

	if len(violations) > 0 {
		return exitViolations
	}
	return exitOK
}

func cmdInit(cfg *config.Config) int {
	libCfg := cfg.Library
	libCfg.CreateIfMissing = true

	db, err := database.New(&libCfg)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to initialize catalog")
		return exitError
	}
	closeCatalog(db)

	fmt.Printf("Catalog ready at %s\n", libCfg.Path)
	return exitOK
}
