// Librarium - PDF Book Library Catalog and Search
// Copyright 2026 The Librarium Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package database

import (
	"errors"
	"fmt"
	"strings"

	"librarium/internal/models"
	"librarium/internal/validation"
)

// ErrInvalidCriteria indicates that search criteria are structurally
// invalid and cannot be compiled into a query. It is returned before any
// SQL executes, wrapped with a message naming the offending field.
var ErrInvalidCriteria = errors.New("invalid search criteria")

// searchSelectColumns lists the projected columns for book queries, in
// the order scanBookRows expects them.
const searchSelectColumns = `b.id, b.title, b.author, c.name, s.name, b.category_id, b.subject_id, b.file_path, b.thumbnail_path, b.rating, b.page_count, b.added_at`

// searchFromClause joins books to both lookup tables. LEFT JOINs keep
// uncategorized books in results with empty category and subject names.
const searchFromClause = `FROM books b
	LEFT JOIN categories c ON b.category_id = c.id
	LEFT JOIN subjects s ON b.subject_id = s.id`

const (
	searchBaseQuery  = `SELECT ` + searchSelectColumns + ` ` + searchFromClause + ` WHERE 1=1`
	searchCountQuery = `SELECT COUNT(*) ` + searchFromClause + ` WHERE 1=1`
)

// sortColumns whitelists the sortable fields. SQL identifiers only ever
// come from this map, never from criteria values.
var sortColumns = map[models.SortField]string{
	models.SortByTitle:  "b.title COLLATE NOCASE",
	models.SortByAuthor: "b.author COLLATE NOCASE",
	models.SortByRating: "b.rating",
}

// searchQuery holds a compiled search: the row query with its ordered
// args and a companion COUNT(*) over the same conditions without
// ordering or pagination.
type searchQuery struct {
	query      string
	args       []interface{}
	countQuery string
	countArgs  []interface{}
}

// buildSearchQuery compiles criteria into parameterized SQL. Criteria
// fields combine with AND; values within one list filter combine with
// OR via IN. Compilation is deterministic: the same criteria always
// yield the same SQL text and argument order.
//
// Structural problems (inverted ranges, all-blank filter lists, offset
// without limit, out-of-range ratings) return ErrInvalidCriteria.
// Well-formed filters naming absent categories, subjects, or authors
// compile fine and simply match zero rows.
func buildSearchQuery(c models.SearchCriteria) (*searchQuery, error) {
	if err := validateCriteria(c); err != nil {
		return nil, err
	}

	conditions, args, err := buildSearchConditions(c)
	if err != nil {
		return nil, err
	}

	order, err := buildOrderClause(c.SortBy, c.SortOrder)
	if err != nil {
		return nil, err
	}

	where := ""
	if len(conditions) > 0 {
		where = " AND " + strings.Join(conditions, " AND ")
	}

	sq := &searchQuery{
		query:      searchBaseQuery + where + " " + order,
		args:       args,
		countQuery: searchCountQuery + where,
		countArgs:  args,
	}

	if c.Limit > 0 {
		sq.query += " LIMIT ? OFFSET ?"
		paged := make([]interface{}, 0, len(args)+2)
		paged = append(paged, args...)
		sq.args = append(paged, c.Limit, c.Offset)
	}

	return sq, nil
}

// validateCriteria rejects criteria that cannot mean anything: tag-level
// violations (negative limits, ratings outside 0-5, unknown sort keys)
// and cross-field contradictions the tags cannot see.
func validateCriteria(c models.SearchCriteria) error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return fmt.Errorf("%w: %s", ErrInvalidCriteria, verr.Error())
	}
	if c.MinRating != nil && c.MaxRating != nil && *c.MinRating > *c.MaxRating {
		return fmt.Errorf("%w: min rating %d exceeds max rating %d", ErrInvalidCriteria, *c.MinRating, *c.MaxRating)
	}
	if c.MinPages != nil && c.MaxPages != nil && *c.MinPages > *c.MaxPages {
		return fmt.Errorf("%w: min pages %d exceeds max pages %d", ErrInvalidCriteria, *c.MinPages, *c.MaxPages)
	}
	if c.AddedAfter != nil && c.AddedBefore != nil && c.AddedAfter.After(*c.AddedBefore) {
		return fmt.Errorf("%w: added_after is later than added_before", ErrInvalidCriteria)
	}
	if c.Offset > 0 && c.Limit == 0 {
		return fmt.Errorf("%w: offset requires a limit", ErrInvalidCriteria)
	}
	return nil
}

// buildSearchConditions builds WHERE conditions and args from criteria.
// Condition order is fixed (text, categories, subjects, authors, rating,
// pages, added date) so generated SQL is reproducible.
func buildSearchConditions(c models.SearchCriteria) ([]string, []interface{}, error) {
	conditions := make([]string, 0, 8)
	args := make([]interface{}, 0, 12)

	if term := strings.TrimSpace(c.Text); term != "" {
		pattern := escapeLikePattern(term)
		conditions = append(conditions, `(LOWER(b.title) LIKE ? ESCAPE '\' OR LOWER(b.author) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}

	nameFilters := []struct {
		label  string
		column string
		values []string
	}{
		{"categories", "c.name", c.Categories},
		{"subjects", "s.name", c.Subjects},
		{"authors", "b.author", c.Authors},
	}
	for _, f := range nameFilters {
		if len(f.values) == 0 {
			continue
		}
		cleaned := cleanNameFilter(f.values)
		if len(cleaned) == 0 {
			return nil, nil, fmt.Errorf("%w: %s filter contains only blank values", ErrInvalidCriteria, f.label)
		}
		appendInClause(f.column, cleaned, &conditions, &args)
	}

	if c.MinRating != nil {
		conditions = append(conditions, "b.rating >= ?")
		args = append(args, *c.MinRating)
	}
	if c.MaxRating != nil {
		conditions = append(conditions, "b.rating <= ?")
		args = append(args, *c.MaxRating)
	}
	if c.MinPages != nil {
		conditions = append(conditions, "b.page_count >= ?")
		args = append(args, *c.MinPages)
	}
	if c.MaxPages != nil {
		conditions = append(conditions, "b.page_count <= ?")
		args = append(args, *c.MaxPages)
	}
	if c.AddedAfter != nil {
		conditions = append(conditions, "b.added_at >= ?")
		args = append(args, c.AddedAfter.UTC().Format(timeFormat))
	}
	if c.AddedBefore != nil {
		conditions = append(conditions, "b.added_at <= ?")
		args = append(args, c.AddedBefore.UTC().Format(timeFormat))
	}

	return conditions, args, nil
}

// appendInClause appends an IN-membership condition on column, one
// placeholder per value.
//
// Example:
//
//	appendInClause("c.name", []string{"History", "Science"}, &conditions, &args)
//	// Adds: "c.name IN (?,?)" to conditions
//	// Adds: ["History", "Science"] to args
func appendInClause(column string, values []string, conditions *[]string, args *[]interface{}) {
	if len(values) == 0 {
		return
	}
	placeholders := make([]string, len(values))
	for i, value := range values {
		placeholders[i] = "?"
		*args = append(*args, value)
	}
	*conditions = append(*conditions, fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ",")))
}

// cleanNameFilter trims each value and drops blanks. Callers treat a
// non-empty input collapsing to nothing as invalid criteria rather than
// silently matching every row.
func cleanNameFilter(values []string) []string {
	cleaned := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}

// likeEscaper escapes the LIKE wildcards so user text always matches
// literally. The backslash pair must be listed first in spirit, but
// strings.Replacer applies all pairs in a single pass, so escaped
// characters are never re-escaped.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLikePattern lowercases a search term, escapes LIKE wildcards,
// and wraps it for substring matching. Used with ESCAPE '\' and a
// LOWER()ed column for case-insensitive contains semantics.
func escapeLikePattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

// buildOrderClause produces a deterministic ORDER BY for the whitelisted
// sort field, defaulting to title ascending. Ties on the primary key
// break by title and finally by book id, so repeated identical searches
// return rows in the same order.
func buildOrderClause(sortBy models.SortField, sortOrder models.SortOrder) (string, error) {
	if sortBy == "" {
		sortBy = models.SortByTitle
	}
	column, ok := sortColumns[sortBy]
	if !ok {
		return "", fmt.Errorf("%w: unknown sort field %q", ErrInvalidCriteria, sortBy)
	}

	direction := "ASC"
	switch sortOrder {
	case "", models.SortAsc:
	case models.SortDesc:
		direction = "DESC"
	default:
		return "", fmt.Errorf("%w: unknown sort order %q", ErrInvalidCriteria, sortOrder)
	}

	clause := "ORDER BY " + column + " " + direction
	if sortBy != models.SortByTitle {
		clause += ", b.title COLLATE NOCASE ASC"
	}
	clause += ", b.id ASC"
	return clause, nil
}
