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

var (
	// ErrUnknownCategory indicates that a category name passed to an
	// enumeration helper does not exist in the catalog.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrUnknownSubject indicates that a subject name does not exist
	// within the resolved category.
	ErrUnknownSubject = errors.New("unknown subject")
)

// ListCategories returns the categories that contain at least one book,
// with per-category book counts, ordered by name. Categories without
// books exist in the catalog but are not offered as filters.
func (db *DB) ListCategories(ctx context.Context) (categories []models.Category, err error) {
	start := time.Now()
	defer func() { metrics.RecordQuery("list_categories", time.Since(start), err) }()

	const query = `SELECT c.id, c.name, COUNT(b.id)
		FROM categories c
		INNER JOIN books b ON b.category_id = c.id
		GROUP BY c.id, c.name
		ORDER BY c.name COLLATE NOCASE, c.id`

	categories, err = queryAndScan(ctx, db.conn, query, nil, scanCategoryRows)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", classifyError(err))
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

// ListSubjectsForCategory returns the subjects of the named category that
// contain at least one book, with book counts, ordered by name. The
// category name resolves case-insensitively; an absent name is
// ErrUnknownCategory, not an empty result.
//
// Subjects are selected by the resolved category id, never by name
// alone. Two categories may each own a subject with the same name, and
// only the requested category's subject is returned.
func (db *DB) ListSubjectsForCategory(ctx context.Context, category string) (subjects []models.Subject, err error) {
	start := time.Now()
	defer func() { metrics.RecordQuery("list_subjects", time.Since(start), err) }()

	categoryID, err := db.resolveCategoryID(ctx, category)
	if err != nil {
		return nil, err
	}

	qb := newQueryBuilder(`SELECT s.id, s.name, s.category_id, COUNT(b.id)
		FROM subjects s
		INNER JOIN books b ON b.subject_id = s.id
		WHERE 1=1`)
	qb.addFilter("s.category_id = ?", categoryID)
	query, args := qb.build("GROUP BY s.id, s.name, s.category_id ORDER BY s.name COLLATE NOCASE, s.id")

	subjects, err = queryAndScan(ctx, db.conn, query, args, scanSubjectRows)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", classifyError(err))
	}
	if subjects == nil {
		subjects = []models.Subject{}
	}
	return subjects, nil
}

// ListBooksForSubject returns the books filed under the named subject of
// the named category, ordered by title. The category resolves first
// (ErrUnknownCategory), then the subject within that category's id
// (ErrUnknownSubject). A subject name that exists only under a different
// category is unknown here.
func (db *DB) ListBooksForSubject(ctx context.Context, category, subject string) (books []models.Book, err error) {
	start := time.Now()
	defer func() { metrics.RecordQuery("list_subject_books", time.Since(start), err) }()

	categoryID, err := db.resolveCategoryID(ctx, category)
	if err != nil {
		return nil, err
	}
	subjectID, err := db.resolveSubjectID(ctx, categoryID, subject)
	if err != nil {
		return nil, err
	}

	qb := newQueryBuilder(searchBaseQuery)
	qb.addFilter("b.subject_id = ?", subjectID)
	query, args := qb.build("ORDER BY b.title COLLATE NOCASE ASC, b.id ASC")

	books, err = queryAndScan(ctx, db.conn, query, args, scanBookRows)
	if err != nil {
		return nil, fmt.Errorf("failed to list books for subject: %w", classifyError(err))
	}
	if books == nil {
		books = []models.Book{}
	}
	return books, nil
}

// ListAuthors returns every distinct non-blank author in the catalog,
// ordered case-insensitively. Used to populate the author filter panel.
func (db *DB) ListAuthors(ctx context.Context) (authors []string, err error) {
	start := time.Now()
	defer func() { metrics.RecordQuery("list_authors", time.Since(start), err) }()

	const query = `SELECT DISTINCT author FROM books
		WHERE author IS NOT NULL AND TRIM(author) != ''
		ORDER BY author COLLATE NOCASE`

	authors, err = queryAndScan(ctx, db.conn, query, nil, func(rows *sql.Rows) (string, error) {
		var author string
		if err := rows.Scan(&author); err != nil {
			return "", fmt.Errorf("failed to scan author: %w", err)
		}
		return author, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", classifyError(err))
	}
	if authors == nil {
		authors = []string{}
	}
	return authors, nil
}

// Stats returns whole-catalog counts for the dashboard and refreshes the
// catalog size gauges.
func (db *DB) Stats(ctx context.Context) (stats *models.LibraryStats, err error) {
	start := time.Now()
	defer func() { metrics.RecordQuery("stats", time.Since(start), err) }()

	const query = `SELECT
		(SELECT COUNT(*) FROM books),
		(SELECT COUNT(*) FROM categories),
		(SELECT COUNT(*) FROM subjects),
		(SELECT COUNT(DISTINCT author) FROM books WHERE author IS NOT NULL AND TRIM(author) != ''),
		(SELECT COUNT(*) FROM books WHERE rating > 0)`

	stats = &models.LibraryStats{}
	err = db.conn.QueryRowContext(ctx, query).Scan(
		&stats.TotalBooks,
		&stats.TotalCategories,
		&stats.TotalSubjects,
		&stats.TotalAuthors,
		&stats.RatedBooks,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to collect catalog stats: %w", classifyError(err))
	}

	metrics.UpdateCatalogGauges(stats.TotalBooks, stats.TotalCategories, stats.TotalSubjects)
	return stats, nil
}

// CheckIntegrity scans the catalog for dangling references between
// books, subjects, and categories. The schema does not enforce
// referential integrity, and catalogs written by external tools may
// violate it. Violations are reported as data; the error return is
// reserved for query failures.
func (db *DB) CheckIntegrity(ctx context.Context) (violations []models.IntegrityViolation, err error) {
	start := time.Now()
	defer func() { metrics.RecordQuery("integrity_check", time.Since(start), err) }()

	violations = make([]models.IntegrityViolation, 0)

	collectors := []func(context.Context) ([]models.IntegrityViolation, error){
		db.collectOrphanedSubjects,
		db.collectMissingCategories,
		db.collectMissingSubjects,
		db.collectCategoryMismatches,
	}
	for _, collect := range collectors {
		found, cerr := collect(ctx)
		if cerr != nil {
			return nil, cerr
		}
		violations = append(violations, found...)
	}

	byKind := map[string]int{
		models.ViolationOrphanedSubject:  0,
		models.ViolationMissingCategory:  0,
		models.ViolationMissingSubject:   0,
		models.ViolationCategoryMismatch: 0,
	}
	for _, violation := range violations {
		byKind[violation.Kind]++
	}
	metrics.RecordIntegrityCheck(byKind)

	logging.Info().Int("violations", len(violations)).Msg("Integrity check completed")
	return violations, nil
}

// collectOrphanedSubjects finds subjects whose category_id references no
// category.
func (db *DB) collectOrphanedSubjects(ctx context.Context) ([]models.IntegrityViolation, error) {
	const query = `SELECT s.id, s.name, s.category_id FROM subjects s
		WHERE NOT EXISTS (SELECT 1 FROM categories c WHERE c.id = s.category_id)
		ORDER BY s.id`

	violations, err := queryAndScan(ctx, db.conn, query, nil, func(rows *sql.Rows) (models.IntegrityViolation, error) {
		var id, categoryID int64
		var name string
		if err := rows.Scan(&id, &name, &categoryID); err != nil {
			return models.IntegrityViolation{}, err
		}
		return models.IntegrityViolation{
			Kind:      models.ViolationOrphanedSubject,
			SubjectID: id,
			Detail:    fmt.Sprintf("subject %q references missing category %d", name, categoryID),
		}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check for orphaned subjects: %w", classifyError(err))
	}
	return violations, nil
}

// collectMissingCategories finds books whose category_id references no
// category.
func (db *DB) collectMissingCategories(ctx context.Context) ([]models.IntegrityViolation, error) {
	const query = `SELECT b.id, b.title, b.category_id FROM books b
		WHERE b.category_id IS NOT NULL
		AND NOT EXISTS (SELECT 1 FROM categories c WHERE c.id = b.category_id)
		ORDER BY b.id`

	violations, err := queryAndScan(ctx, db.conn, query, nil, func(rows *sql.Rows) (models.IntegrityViolation, error) {
		var id, categoryID int64
		var title string
		if err := rows.Scan(&id, &title, &categoryID); err != nil {
			return models.IntegrityViolation{}, err
		}
		return models.IntegrityViolation{
			Kind:   models.ViolationMissingCategory,
			BookID: id,
			Detail: fmt.Sprintf("book %q references missing category %d", title, categoryID),
		}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check for missing categories: %w", classifyError(err))
	}
	return violations, nil
}

// collectMissingSubjects finds books whose subject_id references no
// subject.
func (db *DB) collectMissingSubjects(ctx context.Context) ([]models.IntegrityViolation, error) {
	const query = `SELECT b.id, b.title, b.subject_id FROM books b
		WHERE b.subject_id IS NOT NULL
		AND NOT EXISTS (SELECT 1 FROM subjects s WHERE s.id = b.subject_id)
		ORDER BY b.id`

	violations, err := queryAndScan(ctx, db.conn, query, nil, func(rows *sql.Rows) (models.IntegrityViolation, error) {
		var id, subjectID int64
		var title string
		if err := rows.Scan(&id, &title, &subjectID); err != nil {
			return models.IntegrityViolation{}, err
		}
		return models.IntegrityViolation{
			Kind:   models.ViolationMissingSubject,
			BookID: id,
			Detail: fmt.Sprintf("book %q references missing subject %d", title, subjectID),
		}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check for missing subjects: %w", classifyError(err))
	}
	return violations, nil
}

// collectCategoryMismatches finds books whose subject belongs to a
// category other than the book's own.
func (db *DB) collectCategoryMismatches(ctx context.Context) ([]models.IntegrityViolation, error) {
	const query = `SELECT b.id, b.title, s.id, s.category_id, b.category_id FROM books b
		INNER JOIN subjects s ON b.subject_id = s.id
		WHERE b.category_id IS NOT NULL AND s.category_id != b.category_id
		ORDER BY b.id`

	violations, err := queryAndScan(ctx, db.conn, query, nil, func(rows *sql.Rows) (models.IntegrityViolation, error) {
		var bookID, subjectID, subjectCategoryID, bookCategoryID int64
		var title string
		if err := rows.Scan(&bookID, &title, &subjectID, &subjectCategoryID, &bookCategoryID); err != nil {
			return models.IntegrityViolation{}, err
		}
		return models.IntegrityViolation{
			Kind:      models.ViolationCategoryMismatch,
			BookID:    bookID,
			SubjectID: subjectID,
			Detail:    fmt.Sprintf("book %q is in category %d but its subject belongs to category %d", title, bookCategoryID, subjectCategoryID),
		}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check for category mismatches: %w", classifyError(err))
	}
	return violations, nil
}

// resolveCategoryID maps a category name to its id, case-insensitively.
// When several categories match only by case, the lowest id wins.
func (db *DB) resolveCategoryID(ctx context.Context, name string) (int64, error) {
	const query = `SELECT id FROM categories WHERE name = ? COLLATE NOCASE ORDER BY id ASC LIMIT 1`

	var id int64
	err := db.conn.QueryRowContext(ctx, query, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCategory, name)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve category: %w", classifyError(err))
	}
	return id, nil
}

// resolveSubjectID maps a subject name to its id within one category.
// The category id scopes the lookup, so equally named subjects under
// other categories never match.
func (db *DB) resolveSubjectID(ctx context.Context, categoryID int64, name string) (int64, error) {
	const query = `SELECT id FROM subjects WHERE category_id = ? AND name = ? COLLATE NOCASE ORDER BY id ASC LIMIT 1`

	var id int64
	err := db.conn.QueryRowContext(ctx, query, categoryID, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", ErrUnknownSubject, name)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve subject: %w", classifyError(err))
	}
	return id, nil
}

// scanCategoryRows scans one id, name, book count row into a Category.
func scanCategoryRows(rows *sql.Rows) (models.Category, error) {
	var category models.Category
	if err := rows.Scan(&category.ID, &category.Name, &category.BookCount); err != nil {
		return models.Category{}, fmt.Errorf("failed to scan category: %w", err)
	}
	return category, nil
}

// scanSubjectRows scans one id, name, category id, book count row into a
// Subject.
func scanSubjectRows(rows *sql.Rows) (models.Subject, error) {
	var subject models.Subject
	if err := rows.Scan(&subject.ID, &subject.Name, &subject.CategoryID, &subject.BookCount); err != nil {
		return models.Subject{}, fmt.Errorf("failed to scan subject: %w", err)
	}
	return subject, nil
}
