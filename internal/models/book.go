// Librarium - PDF Book Library Catalog and Search
// Copyright 2026 The Librarium Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package models

import "time"

// Book represents a single catalog entry joined with its classification names.
// Category and Subject carry the denormalized names produced by the catalog
// joins; they are empty when the book is unclassified. CategoryID and
// SubjectID are nil in the same case.
//
// Books are read-only from this application's perspective. Rows are created by
// the import pipeline; this layer only queries them.
type Book struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Author        string     `json:"author,omitempty"`
	Category      string     `json:"category,omitempty"`
	Subject       string     `json:"subject,omitempty"`
	CategoryID    *int64     `json:"category_id,omitempty"`
	SubjectID     *int64     `json:"subject_id,omitempty"`
	FilePath      string     `json:"file_path,omitempty"`
	ThumbnailPath string     `json:"thumbnail_path,omitempty"`
	Rating        int        `json:"rating"`     // 0-5, 0 = unrated
	PageCount     int        `json:"page_count"` // 0 = unknown
	AddedAt       *time.Time `json:"added_at,omitempty"`
}

// Category represents a top-level classification entry.
// BookCount is populated by enumeration queries and is zero elsewhere.
type Category struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	BookCount int    `json:"book_count"`
}

// Subject represents a second-level classification entry owned by exactly one
// category. Subject names are only unique within their category; two
// categories may each own a subject named "General", so subjects must always
// be resolved through CategoryID, never by name alone.
type Subject struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CategoryID int64  `json:"category_id"`
	BookCount  int    `json:"book_count"`
}

// LibraryStats represents aggregate catalog counts for the stats view.
type LibraryStats struct {
	TotalBooks      int `json:"total_books"`
	TotalCategories int `json:"total_categories"`
	TotalSubjects   int `json:"total_subjects"`
	TotalAuthors    int `json:"total_authors"`
	RatedBooks      int `json:"rated_books"`
}

// Violation kinds reported by the catalog integrity check.
const (
	// ViolationOrphanedSubject: a subject whose category_id references no
	// existing category.
	ViolationOrphanedSubject = "orphaned_subject"

	// ViolationMissingCategory: a book whose category_id references no
	// existing category.
	ViolationMissingCategory = "missing_category"

	// ViolationMissingSubject: a book whose subject_id references no
	// existing subject.
	ViolationMissingSubject = "missing_subject"

	// ViolationCategoryMismatch: a book whose subject belongs to a different
	// category than the book itself.
	ViolationCategoryMismatch = "category_mismatch"
)

// IntegrityViolation represents one referential consistency finding.
// Violations are data problems in the catalog, not query failures; the
// integrity check reports them without modifying anything.
type IntegrityViolation struct {
	Kind      string `json:"kind"`
	BookID    int64  `json:"book_id,omitempty"`
	SubjectID int64  `json:"subject_id,omitempty"`
	Detail    string `json:"detail"`
}
