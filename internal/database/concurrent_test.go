// Librarium - PDF Book Library Catalog and Search
// Copyright 2026 The Librarium Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package database

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"librarium/internal/models"
)

// TestConcurrent_ParallelSearches verifies that one DB handle serves
// concurrent readers safely. The catalog layer is read-only, so every
// operation may run in parallel against the shared pool; run with
// go test -race.
func TestConcurrent_ParallelSearches(t *testing.T) {
	// NOT parallel - tests concurrency explicitly

	db := setupTestDB(t)
	seedTestLibrary(t, db)

	const numGoroutines = 25
	const queriesPerGoroutine = 10

	criteria := []models.SearchCriteria{
		{},
		{Text: "history"},
		{Categories: []string{"Computer Science"}},
		{MinRating: intPtr(4), SortBy: models.SortByRating, SortOrder: models.SortDesc},
		{Limit: 3, Offset: 3},
	}

	var wg sync.WaitGroup
	errCh := make(chan error, numGoroutines*queriesPerGoroutine)

	for g := 0; g < numGoroutines; g++ {
		wg.Add(1)
		go func(goroutineID int) {
			defer wg.Done()
			ctx := context.Background()

			for i := 0; i < queriesPerGoroutine; i++ {
				c := criteria[(goroutineID+i)%len(criteria)]
				result, err := db.Search(ctx, c)
				if err != nil {
					errCh <- fmt.Errorf("goroutine %d search %d failed: %w", goroutineID, i, err)
					return
				}
				if c.IsZero() && result.TotalCount != 7 {
					errCh <- fmt.Errorf("goroutine %d search %d: expected 7 total, got %d", goroutineID, i, result.TotalCount)
					return
				}
			}
		}(g)
	}

	wg.Wait()
	close(errCh)

	for err := range errCh {
		t.Error(err)
	}
}

// TestConcurrent_MixedReads exercises every read operation at once against
// the same handle.
func TestConcurrent_MixedReads(t *testing.T) {
	// NOT parallel - tests concurrency explicitly

	db := setupTestDB(t)
	seedTestLibrary(t, db)

	const workersPerOperation = 8

	operations := []func(context.Context) error{
		func(ctx context.Context) error {
			_, err := db.Search(ctx, models.SearchCriteria{Text: "algorithms"})
			return err
		},
		func(ctx context.Context) error {
			_, err := db.ListCategories(ctx)
			return err
		},
		func(ctx context.Context) error {
			_, err := db.ListSubjectsForCategory(ctx, "History")
			return err
		},
		func(ctx context.Context) error {
			_, err := db.ListAuthors(ctx)
			return err
		},
		func(ctx context.Context) error {
			_, err := db.GetBookByID(ctx, bookIntroAlgorithms)
			return err
		},
		func(ctx context.Context) error {
			_, err := db.Stats(ctx)
			return err
		},
		func(ctx context.Context) error {
			_, err := db.CheckIntegrity(ctx)
			return err
		},
	}

	var wg sync.WaitGroup
	errCh := make(chan error, len(operations)*workersPerOperation)

	for _, op := range operations {
		for w := 0; w < workersPerOperation; w++ {
			wg.Add(1)
			go func(run func(context.Context) error) {
				defer wg.Done()
				if err := run(context.Background()); err != nil {
					errCh <- err
				}
			}(op)
		}
	}

	wg.Wait()
	close(errCh)

	for err := range errCh {
		t.Error(err)
	}
}
