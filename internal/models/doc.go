// Librarium - PDF Book Library Catalog and Search
// Copyright 2026 The Librarium Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package models defines data structures for the Librarium catalog.

This package contains all data models shared across the application: catalog
records backed by the SQLite schema, the search request/response contract, and
aggregate views used by the CLI. It is the single source of truth for data
structure definitions.

Key Components:

  - Book: catalog record joined with its category and subject names
  - Category, Subject: classification entries with book counts
  - SearchCriteria: multi-dimensional filter compiled to parameterized SQL
  - SearchResult: ordered books plus the unpaginated match count
  - LibraryStats: aggregate counts for the stats view
  - IntegrityViolation: referential consistency findings

Models map 1:1 onto the fixed catalog schema (books, categories, subjects);
column names are a compatibility contract with existing library databases and
must not be renamed.
*/
package models
