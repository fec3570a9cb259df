// Librarium - PDF Book Library Catalog and Search
// Copyright 2026 The Librarium Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"librarium/internal/logging"
	"librarium/internal/metrics"
	"librarium/internal/models"
)

// ErrBookNotFound indicates that no book matches the requested id or title.
var ErrBookNotFound = errors.New("book not found")

// Search executes the given criteria against the catalog and returns the
// matching books together with the total match count. TotalCount ignores
// Limit and Offset, so callers can page through results while showing
// how many books match overall.
//
// An empty criteria value matches every book in the catalog exactly
// once, ordered by title. Criteria that name absent categories, subjects,
// or authors return an empty result, not an error.
func (db *DB) Search(ctx context.Context, criteria models.SearchCriteria) (*models.SearchResult, error) {
	start := time.Now()

	sq, err := buildSearchQuery(criteria)
	if err != nil {
		metrics.RecordSearch(time.Since(start), 0, err)
		return nil, err
	}

	books, err := queryAndScan(ctx, db.conn, sq.query, sq.args, scanBookRows)
	if err != nil {
		wrapped := fmt.Errorf("failed to search books: %w", classifyError(err))
		metrics.RecordSearch(time.Since(start), 0, wrapped)
		return nil, wrapped
	}

	var total int
	if err := db.conn.QueryRowContext(ctx, sq.countQuery, sq.countArgs...).Scan(&total); err != nil {
		wrapped := fmt.Errorf("failed to count search results: %w", classifyError(err))
		metrics.RecordSearch(time.Since(start), 0, wrapped)
		return nil, wrapped
	}

	if books == nil {
		books = []models.Book{}
	}

	elapsed := time.Since(start)
	metrics.RecordSearch(elapsed, len(books), nil)

	logging.Debug().
		Int("results", len(books)).
		Int("total", total).
		Dur("elapsed", elapsed).
		Msg("Search completed")

	return &models.SearchResult{
		Books:      books,
		TotalCount: total,
		ElapsedMS:  float64(elapsed.Microseconds()) / 1000.0,
	}, nil
}

// GetBookByID returns the single book with the given id, or
// ErrBookNotFound.
func (db *DB) GetBookByID(ctx context.Context, id int64) (*models.Book, error) {
	return db.getBook(ctx, "b.id = ?", id)
}

// GetBookByTitle returns the first book whose title matches exactly, or
// ErrBookNotFound. Titles are not unique in the catalog; ties resolve to
// the book with the lowest id.
func (db *DB) GetBookByTitle(ctx context.Context, title string) (*models.Book, error) {
	return db.getBook(ctx, "b.title = ?", title)
}

func (db *DB) getBook(ctx context.Context, condition string, arg interface{}) (book *models.Book, err error) {
	start := time.Now()
	defer func() { metrics.RecordQuery("get_book", time.Since(start), err) }()

	qb := newQueryBuilder(searchBaseQuery)
	qb.addFilter(condition, arg)
	query, args := qb.build("ORDER BY b.id ASC LIMIT 1")

	books, err := queryAndScan(ctx, db.conn, query, args, scanBookRows)
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", classifyError(err))
	}
	if len(books) == 0 {
		return nil, ErrBookNotFound
	}
	return &books[0], nil
}

// scanBookRows scans one row of searchSelectColumns into a Book. All
// optional columns go through sql.Null wrappers first, so catalogs with
// NULLs produced by other tools scan without errors.
func scanBookRows(rows *sql.Rows) (models.Book, error) {
	var book models.Book
	var author, category, subject sql.NullString
	var categoryID, subjectID sql.NullInt64
	var filePath, thumbnailPath sql.NullString
	var rating, pageCount sql.NullInt64
	var addedAt sql.NullString

	err := rows.Scan(
		&book.ID,
		&book.Title,
		&author,
		&category,
		&subject,
		&categoryID,
		&subjectID,
		&filePath,
		&thumbnailPath,
		&rating,
		&pageCount,
		&addedAt,
	)
	if err != nil {
		return models.Book{}, fmt.Errorf("failed to scan book: %w", err)
	}

	book.Author = author.String
	book.Category = category.String
	book.Subject = subject.String
	if categoryID.Valid {
		id := categoryID.Int64
		book.CategoryID = &id
	}
	if subjectID.Valid {
		id := subjectID.Int64
		book.SubjectID = &id
	}
	book.FilePath = filePath.String
	book.ThumbnailPath = thumbnailPath.String
	book.Rating = int(rating.Int64)
	book.PageCount = int(pageCount.Int64)
	if addedAt.Valid {
		book.AddedAt = parseCatalogTime(addedAt.String)
	}

	return book, nil
}

// catalogTimeLayouts are the timestamp layouts accepted in added_at, in
// order of likelihood. Importers write timeFormat; the others appear in
// catalogs produced by older tools.
var catalogTimeLayouts = []string{
	timeFormat,
	time.RFC3339,
	"2006-01-02",
}

// parseCatalogTime parses a stored timestamp, returning nil for values
// no layout accepts. A book with an unreadable date is still a valid book.
func parseCatalogTime(value string) *time.Time {
	for _, layout := range catalogTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}
