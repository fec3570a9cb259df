// Librarium - PDF Book Library Catalog and Search
// Copyright 2026 The Librarium Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	json "github.com/goccy/go-json"

	"librarium/internal/logging"
	"librarium/internal/models"
)

// printJSON writes v to stdout as indented JSON.
func printJSON(v interface{}) int {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logging.Error().Err(err).Msg("Failed to encode JSON")
		return exitError
	}
	fmt.Println(string(data))
	return exitOK
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func flushTable(w *tabwriter.Writer) {
	if err := w.Flush(); err != nil {
		logging.Error().Err(err).Msg("Failed to flush output")
	}
}

// printBooks renders books as an aligned table. Zero ratings and page
// counts mean unrated and unknown, shown as a dash.
func printBooks(books []models.Book) {
	w := newTable()
	fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tCATEGORY\tSUBJECT\tRATING\tPAGES")
	for _, book := range books {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			book.ID,
			book.Title,
			book.Author,
			book.Category,
			book.Subject,
			formatCount(book.Rating),
			formatCount(book.PageCount),
		)
	}
	flushTable(w)
}

// formatCount renders an optional non-negative count, using a dash for
// the zero "not set" value.
func formatCount(n int) string {
	if n == 0 {
		return "-"
	}
	return strconv.Itoa(n)
}
