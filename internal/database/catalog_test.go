// Librarium - PDF Book Library Catalog and Search
// Copyright 2026 The Librarium Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package database

import (
	"context"
	"testing"

	"librarium/internal/models"
)

func TestListCategories(t *testing.T) {
	db := setupTestDB(t)
	seedTestLibrary(t, db)

	categories, err := db.ListCategories(context.Background())
	checkNoError(t, err)

	// "Empty Shelf" holds no books and is not offered as a filter.
	checkSliceLen(t, "categories", len(categories), 4)

	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	checkStringSliceEqual(t, "names", names, []string{
		"Computer Science", "History", "Math", "Science",
	})

	checkIntEqual(t, "Computer Science count", categories[0].BookCount, 3)
	checkIntEqual(t, "History count", categories[1].BookCount, 1)
	checkIntEqual(t, "Math count", categories[2].BookCount, 1)
	checkIntEqual(t, "Science count", categories[3].BookCount, 1)
}

func TestListCategories_EmptyCatalog(t *testing.T) {
	db := setupTestDB(t)

	categories, err := db.ListCategories(context.Background())
	checkNoError(t, err)

	if categories == nil {
		t.Error("categories should be an empty slice, not nil")
	}
	checkSliceEmpty(t, "categories", len(categories))
}

func TestListSubjectsForCategory(t *testing.T) {
	db := setupTestDB(t)
	seedTestLibrary(t, db)

	subjects, err := db.ListSubjectsForCategory(context.Background(), "Computer Science")
	checkNoError(t, err)

	checkSliceLen(t, "subjects", len(subjects), 2)
	checkStringEqual(t, "first", subjects[0].Name, "Algorithms")
	checkIntEqual(t, "Algorithms count", subjects[0].BookCount, 2)
	checkStringEqual(t, "second", subjects[1].Name, "Databases")
	checkIntEqual(t, "Databases count", subjects[1].BookCount, 1)
	for _, s := range subjects {
		checkIntEqual(t, "CategoryID", int(s.CategoryID), catComputerScience)
	}

	// "Geometry" holds no books and is omitted from Math's listing.
	subjects, err = db.ListSubjectsForCategory(context.Background(), "Math")
	checkNoError(t, err)
	checkSliceLen(t, "math subjects", len(subjects), 1)
	checkStringEqual(t, "math subject", subjects[0].Name, "Algebra")
}

func TestListSubjectsForCategory_SharedSubjectName(t *testing.T) {
	db := setupTestDB(t)
	seedTestLibrary(t, db)

	// Both History and Science own a subject named "General". Each listing
	// must return only its own row, distinguished by id and category id.
	history, err := db.ListSubjectsForCategory(context.Background(), "History")
	checkNoError(t, err)
	checkSliceLen(t, "history subjects", len(history), 1)
	checkStringEqual(t, "history subject", history[0].Name, "General")
	checkIntEqual(t, "history subject id", int(history[0].ID), subjGeneralHistory)
	checkIntEqual(t, "history category id", int(history[0].CategoryID), catHistory)

	science, err := db.ListSubjectsForCategory(context.Background(), "Science")
	checkNoError(t, err)
	checkSliceLen(t, "science subjects", len(science), 1)
	checkStringEqual(t, "science subject", science[0].Name, "General")
	checkIntEqual(t, "science subject id", int(science[0].ID), subjGeneralScience)
	checkIntEqual(t, "science category id", int(science[0].CategoryID), catScience)

	if history[0].ID == science[0].ID {
		t.Error("the two General subjects must be distinct rows")
	}
}

func TestListSubjectsForCategory_UnknownCategory(t *testing.T) {
	db := setupTestDB(t)
	seedTestLibrary(t, db)

	// The same name that merely matches nothing in Search fails loudly
	// here: naming an absent category is a caller mistake.
	_, err := db.ListSubjectsForCategory(context.Background(), "Nonexistent")
	checkErrorIs(t, err, ErrUnknownCategory)
}

func TestListSubjectsForCategory_ExistingButEmpty(t *testing.T) {
	db := setupTestDB(t)
	seedTestLibrary(t, db)

	// A real category with no populated subjects is an empty listing, not
	// an error.
	subjects, err := db.ListSubjectsForCategory(context.Background(), "Empty Shelf")
	checkNoError(t, err)
	if subjects == nil {
		t.Error("subjects should be an empty slice, not nil")
	}
	checkSliceEmpty(t, "subjects", len(subjects))
}

func TestListSubjectsForCategory_CaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	seedTestLibrary(t, db)

	subjects, err := db.ListSubjectsForCategory(context.Background(), "hIsToRy")
	checkNoError(t, err)
	checkSliceLen(t, "subjects", len(subjects), 1)
	checkStringEqual(t, "subject", subjects[0].Name, "General")
}

func TestListBooksForSubject(t *testing.T) {
	db := setupTestDB(t)
	seedTestLibrary(t, db)

	books, err := db.ListBooksForSubject(context.Background(), "Computer Science", "Algorithms")
	checkNoError(t, err)
	checkSliceLen(t, "books", len(books), 2)
	checkStringEqual(t, "first", books[0].Title, "Intro to Algorithms")
	checkStringEqual(t, "second", books[1].Title, "The Art of Computer Programming")

	// The two "General" subjects resolve to different books.
	books, err = db.ListBooksForSubject(context.Background(), "History", "General")
	checkNoError(t, err)
	checkSliceLen(t, "history books", len(books), 1)
	checkStringEqual(t, "history book", books[0].Title, "A Little History of the World")

	books, err = db.ListBooksForSubject(context.Background(), "Science", "General")
	checkNoError(t, err)
	checkSliceLen(t, "science books", len(books), 1)
	checkStringEqual(t, "science book", books[0].Title, "A Brief History of Time")
}

func TestListBooksForSubject_SubjectScopedToCategory(t *testing.T) {
	db := setupTestDB(t)
	seedTestLibrary(t, db)

	// "General" exists, but not under Computer Science. Subject resolution
	// is scoped by category id, so the name does not leak across.
	_, err := db.ListBooksForSubject(context.Background(), "Computer Science", "General")
	checkErrorIs(t, err, ErrUnknownSubject)

	// Category resolution fails before subject resolution.
	_, err = db.ListBooksForSubject(context.Background(), "Nonexistent", "General")
	checkErrorIs(t, err, ErrUnknownCategory)
}

func TestListAuthors(t *testing.T) {
	db := setupTestDB(t)
	seedTestLibrary(t, db)

	authors, err := db.ListAuthors(context.Background())
	checkNoError(t, err)

	// "Unfiled Notes" has a NULL author and is excluded.
	checkUniqueStrings(t, "authors", authors)
	checkStringSliceEqual(t, "authors", authors, []string{
		"Abraham Silberschatz",
		"Donald E. Knuth",
		"E. H. Gombrich",
		"Sheldon Axler",
		"Stephen Hawking",
		"Thomas H. Cormen",
	})
}

func TestStats(t *testing.T) {
	db := setupTestDB(t)
	seedTestLibrary(t, db)

	stats, err := db.Stats(context.Background())
	checkNoError(t, err)

	checkIntEqual(t, "TotalBooks", stats.TotalBooks, 7)
	// Unlike ListCategories, stats count raw rows, bookless ones included.
	checkIntEqual(t, "TotalCategories", stats.TotalCategories, 5)
	checkIntEqual(t, "TotalSubjects", stats.TotalSubjects, 6)
	checkIntEqual(t, "TotalAuthors", stats.TotalAuthors, 6)
	checkIntEqual(t, "RatedBooks", stats.RatedBooks, 6)
}

func TestStats_EmptyCatalog(t *testing.T) {
	db := setupTestDB(t)

	stats, err := db.Stats(context.Background())
	checkNoError(t, err)

	checkIntEqual(t, "TotalBooks", stats.TotalBooks, 0)
	checkIntEqual(t, "TotalCategories", stats.TotalCategories, 0)
	checkIntEqual(t, "TotalSubjects", stats.TotalSubjects, 0)
	checkIntEqual(t, "TotalAuthors", stats.TotalAuthors, 0)
	checkIntEqual(t, "RatedBooks", stats.RatedBooks, 0)
}

func TestCheckIntegrity_CleanCatalog(t *testing.T) {
	db := setupTestDB(t)
	seedTestLibrary(t, db)

	violations, err := db.CheckIntegrity(context.Background())
	checkNoError(t, err)

	if violations == nil {
		t.Error("violations should be an empty slice, not nil")
	}
	checkSliceEmpty(t, "violations", len(violations))
}

func TestCheckIntegrity_ReportsViolations(t *testing.T) {
	db := setupTestDB(t)
	seedTestLibrary(t, db)

	// The schema does not enforce references, so broken rows insert fine.
	_, err := db.conn.Exec(`INSERT INTO subjects (id, name, category_id) VALUES (99, 'Phantom', 12345)`)
	checkNoError(t, err)
	ghostCategory := insertTestBook(t, db, "Ghost Category Book", nil, 12345, nil, 0, 0, "2024-01-01 00:00:00")
	ghostSubject := insertTestBook(t, db, "Ghost Subject Book", nil, catHistory, 54321, 0, 0, "2024-01-01 00:00:00")
	misfiled := insertTestBook(t, db, "Misfiled Book", nil, catComputerScience, subjGeneralHistory, 0, 0, "2024-01-01 00:00:00")

	violations, err := db.CheckIntegrity(context.Background())
	checkNoError(t, err)
	checkSliceLen(t, "violations", len(violations), 4)

	kinds := make([]string, len(violations))
	for i, v := range violations {
		kinds[i] = v.Kind
		if v.Detail == "" {
			t.Errorf("violation %d has empty detail", i)
		}
	}
	checkStringSliceEqual(t, "kinds", kinds, []string{
		models.ViolationOrphanedSubject,
		models.ViolationMissingCategory,
		models.ViolationMissingSubject,
		models.ViolationCategoryMismatch,
	})

	checkIntEqual(t, "orphaned subject id", int(violations[0].SubjectID), 99)
	checkIntEqual(t, "ghost category book", int(violations[1].BookID), int(ghostCategory))
	checkIntEqual(t, "ghost subject book", int(violations[2].BookID), int(ghostSubject))
	checkIntEqual(t, "misfiled book", int(violations[3].BookID), int(misfiled))
	checkIntEqual(t, "misfiled subject", int(violations[3].SubjectID), subjGeneralHistory)
}
