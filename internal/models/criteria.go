// Librarium - PDF Book Library Catalog and Search
// Copyright 2026 The Librarium Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package models

import "time"

// SortField identifies a whitelisted search sort key. Sort keys map to fixed
// column expressions; anything outside the whitelist is rejected so user input
// can never reach the ORDER BY clause as raw SQL.
type SortField string

// Supported sort fields.
const (
	SortByTitle  SortField = "title"
	SortByAuthor SortField = "author"
	SortByRating SortField = "rating"
)

// SortOrder identifies the sort direction.
type SortOrder string

// Supported sort directions.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SearchCriteria contains filter parameters for catalog search queries.
//
// All filter fields are optional and combine using AND logic. Multi-select
// fields (slices) use OR logic within the field (e.g., Categories:
// ["History", "Science"] matches books in History OR Science). Text matches
// against title or author, case-insensitively, with LIKE metacharacters in
// the term treated literally.
//
// A filter list that is present but contains only blank values is rejected as
// invalid rather than silently dropped: the caller asked for a restriction
// that cannot match anything meaningful. Well-formed names that simply do not
// occur in the catalog are not an error; they match zero rows.
//
// Example - last month's well-rated computer science books:
//
//	minRating := 4
//	after := time.Now().AddDate(0, -1, 0)
//	criteria := models.SearchCriteria{
//	    Categories: []string{"Computer Science"},
//	    MinRating:  &minRating,
//	    AddedAfter: &after,
//	    SortBy:     models.SortByRating,
//	    SortOrder:  models.SortDesc,
//	    Limit:      50,
//	}
//
// SearchCriteria is immutable after creation and safe for concurrent read
// access; the same value may be passed to multiple queries.
type SearchCriteria struct {
	// Text matches title OR author, case-insensitive substring.
	Text string `json:"text,omitempty"`

	// Name filters; each matches via IN against the joined catalog names.
	Categories []string `json:"categories,omitempty"`
	Subjects   []string `json:"subjects,omitempty"`
	Authors    []string `json:"authors,omitempty"`

	// Range filters, nil = unbounded.
	MinRating   *int       `json:"min_rating,omitempty" validate:"omitempty,min=0,max=5"`
	MaxRating   *int       `json:"max_rating,omitempty" validate:"omitempty,min=0,max=5"`
	MinPages    *int       `json:"min_pages,omitempty" validate:"omitempty,min=0"`
	MaxPages    *int       `json:"max_pages,omitempty" validate:"omitempty,min=0"`
	AddedAfter  *time.Time `json:"added_after,omitempty"`
	AddedBefore *time.Time `json:"added_before,omitempty"`

	// Ordering; zero values mean title ascending.
	SortBy    SortField `json:"sort_by,omitempty" validate:"omitempty,oneof=title author rating"`
	SortOrder SortOrder `json:"sort_order,omitempty" validate:"omitempty,oneof=asc desc"`

	// Pagination. Limit 0 returns all matches; Offset requires a Limit.
	Limit  int `json:"limit,omitempty" validate:"min=0"`
	Offset int `json:"offset,omitempty" validate:"min=0"`
}

// IsZero reports whether no filter dimension is set. Ordering and pagination
// are presentation concerns and do not count as filters.
func (c SearchCriteria) IsZero() bool {
	return c.Text == "" &&
		len(c.Categories) == 0 &&
		len(c.Subjects) == 0 &&
		len(c.Authors) == 0 &&
		c.MinRating == nil && c.MaxRating == nil &&
		c.MinPages == nil && c.MaxPages == nil &&
		c.AddedAfter == nil && c.AddedBefore == nil
}

// SearchResult represents the response to a catalog search.
// Books are ordered by the criteria's sort key with a deterministic id
// tie-break; TotalCount is the number of matches ignoring Limit and Offset so
// callers can page without a second query.
type SearchResult struct {
	Books      []Book  `json:"books"`
	TotalCount int     `json:"total_count"`
	ElapsedMS  float64 `json:"elapsed_ms"`
}
