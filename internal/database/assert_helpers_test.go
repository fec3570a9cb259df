// Librarium - PDF Book Library Catalog and Search
// Copyright 2026 The Librarium Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package database

import (
	"errors"
	"testing"
)

// Test assertion helpers with "check" prefix to avoid conflicts with existing helpers.
// Each helper encapsulates common validation patterns.
// Using t.Helper() ensures error messages point to the calling line.

// checkNoError fails the test if err is not nil
func checkNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// checkError fails the test if err is nil
func checkError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// checkErrorIs checks that target appears in err's chain
func checkErrorIs(t *testing.T, err, target error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %v, got nil", target)
	}
	if !errors.Is(err, target) {
		t.Fatalf("expected error %v in chain, got %v", target, err)
	}
}

// checkErrorAs checks that an error of type T appears in err's chain
func checkErrorAs[T any](t *testing.T, err error, target *T) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %T, got nil", *target)
	}
	if !errors.As(err, target) {
		t.Fatalf("expected %T in error chain, got %v", *target, err)
	}
}

// checkStringEqual checks that got equals want
func checkStringEqual(t *testing.T, fieldName, got, want string) {
	t.Helper()
	if got != want {
		t.Errorf("%s: expected %q, got %q", fieldName, want, got)
	}
}

// checkIntEqual checks that got equals want
func checkIntEqual(t *testing.T, fieldName string, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("%s: expected %d, got %d", fieldName, want, got)
	}
}

// checkSliceEmpty checks that slice length == 0
func checkSliceEmpty(t *testing.T, name string, length int) {
	t.Helper()
	if length != 0 {
		t.Errorf("%s should be empty, got %d items", name, length)
	}
}

// checkSliceLen checks that slice length equals want exactly
func checkSliceLen(t *testing.T, name string, length, want int) {
	t.Helper()
	if length != want {
		t.Fatalf("%s: expected %d items, got %d", name, want, length)
	}
}

// checkStringSliceEqual checks that got matches want element by element
func checkStringSliceEqual(t *testing.T, name string, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: expected %d items, got %d (%v)", name, len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s[%d]: expected %q, got %q", name, i, want[i], got[i])
		}
	}
}

// checkSortedDescending checks that values are sorted in descending order
func checkSortedDescending(t *testing.T, name string, values []int) {
	t.Helper()
	for i := 1; i < len(values); i++ {
		if values[i-1] < values[i] {
			t.Errorf("%s not sorted descending: value at %d (%d) < value at %d (%d)",
				name, i-1, values[i-1], i, values[i])
			return
		}
	}
}

// checkUniqueStrings checks that all strings in the slice are unique
func checkUniqueStrings(t *testing.T, name string, values []string) {
	t.Helper()
	seen := make(map[string]bool)
	for _, v := range values {
		if seen[v] {
			t.Errorf("%s contains duplicate: %q", name, v)
			return
		}
		seen[v] = true
	}
}
