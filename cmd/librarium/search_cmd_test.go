// Librarium - PDF Book Library Catalog and Search
// Copyright 2026 The Librarium Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"testing"

	"librarium/internal/config"
	"librarium/internal/models"
)

func TestApplySearchLimits(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		search    config.SearchConfig
		wantLimit int
	}{
		{"no limits configured", 0, config.SearchConfig{}, 0},
		{"default applied when unset", 0, config.SearchConfig{DefaultLimit: 50}, 50},
		{"explicit limit kept", 20, config.SearchConfig{DefaultLimit: 50}, 20},
		{"explicit limit capped", 900, config.SearchConfig{MaxLimit: 500}, 500},
		{"limit under cap kept", 100, config.SearchConfig{MaxLimit: 500}, 100},
		{"default obeys cap", 0, config.SearchConfig{DefaultLimit: 50, MaxLimit: 30}, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			criteria := models.SearchCriteria{Limit: tt.limit}
			applySearchLimits(&criteria, tt.search)
			if criteria.Limit != tt.wantLimit {
				t.Errorf("limit: expected %d, got %d", tt.wantLimit, criteria.Limit)
			}
		})
	}
}

func TestStringList(t *testing.T) {
	var list stringList

	checkSet := func(v string) {
		t.Helper()
		if err := list.Set(v); err != nil {
			t.Fatalf("Set(%q) failed: %v", v, err)
		}
	}
	checkSet("History")
	checkSet("Science")

	if len(list) != 2 || list[0] != "History" || list[1] != "Science" {
		t.Errorf("unexpected list contents: %v", list)
	}
	if list.String() != "History,Science" {
		t.Errorf("String(): expected History,Science, got %q", list.String())
	}
}

func TestParseListFlags(t *testing.T) {
	jsonOut, rest, ok := parseListFlags("subjects", []string{"--json", "History"})
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if !jsonOut {
		t.Error("expected jsonOut true")
	}
	if len(rest) != 1 || rest[0] != "History" {
		t.Errorf("unexpected positionals: %v", rest)
	}

	jsonOut, rest, ok = parseListFlags("categories", nil)
	if !ok || jsonOut || len(rest) != 0 {
		t.Errorf("expected bare invocation to parse cleanly, got %v/%v/%v", jsonOut, rest, ok)
	}

	if _, _, ok := parseListFlags("subjects", []string{"--bogus"}); ok {
		t.Error("expected unknown flag to fail")
	}
}

func TestFormatCount(t *testing.T) {
	if got := formatCount(0); got != "-" {
		t.Errorf("zero: expected -, got %q", got)
	}
	if got := formatCount(1312); got != "1312" {
		t.Errorf("nonzero: expected 1312, got %q", got)
	}
}
