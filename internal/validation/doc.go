// Librarium - PDF Book Library Catalog and Search
// Copyright 2026 The Librarium Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package validation provides struct validation using go-playground/validator v10.
//
// This package wraps the go-playground/validator library to provide a thread-safe
// singleton validator instance with user-friendly error messages. The database
// layer uses it to vet search criteria before any SQL is built, so a structurally
// invalid request is rejected with a message naming the offending field.
//
// # Overview
//
// The package provides:
//   - Thread-safe singleton validator (initialized once, cached struct info)
//   - Error translation to human-readable messages
//   - Structured field errors exposing field, tag, param, and value
//   - Future v11 compatibility with WithRequiredStructEnabled
//
// # Quick Start
//
//	criteria := models.SearchCriteria{
//	    Text:      "algorithms",
//	    MaxRating: &five,
//	    SortBy:    models.SortByRating,
//	}
//
//	if verr := validation.ValidateStruct(&criteria); verr != nil {
//	    return fmt.Errorf("%w: %s", ErrInvalidCriteria, verr.Error())
//	}
//
//	// proceed with valid criteria
//
// # Common Validation Tags
//
// Numeric validations:
//   - min=n: Minimum value n
//   - max=n: Maximum value n
//   - gte=n: Greater than or equal to n
//   - lte=n: Less than or equal to n
//
// Enum validations:
//   - oneof=a b c: Must be one of the specified values
//
// Presence:
//   - omitempty: Skip remaining tags when the field is zero (nil pointers skip,
//     a pointer to zero still validates)
//   - required: Field must not be empty
//
// # Error Types
//
// FieldError represents a single field validation failure:
//
//	type FieldError struct {
//	    Field()   string      // Struct field name
//	    Tag()     string      // Validation tag that failed
//	    Param()   string      // Tag parameter (e.g., "5" for max=5)
//	    Value()   interface{} // Actual value that failed
//	    Error()   string      // Human-readable message
//	}
//
// StructValidationError aggregates every failed field from one call:
//
//	type StructValidationError struct {
//	    Errors() []FieldError
//	    Error()  string       // Messages joined with "; "
//	}
//
// # Error Message Translation
//
// Human-readable messages are generated for common validation tags:
//
//	required   -> "Path is required"
//	min=0      -> "Limit must be at least 0"
//	max=5      -> "MaxRating must be at most 5"
//	gte=1      -> "Limit must be greater than or equal to 1"
//	oneof=a b  -> "SortBy must be one of: a b"
//
// String fields get length phrasing ("must be at least 3 characters") while
// numeric fields get value phrasing ("must be at least 3").
//
// # Struct Tag Examples
//
// Search criteria validation:
//
//	type SearchCriteria struct {
//	    MinRating *int      `validate:"omitempty,min=0,max=5"`
//	    MaxRating *int      `validate:"omitempty,min=0,max=5"`
//	    SortBy    SortField `validate:"omitempty,oneof=title author rating"`
//	    Limit     int       `validate:"min=0"`
//	    Offset    int       `validate:"min=0"`
//	}
//
// # Thread Safety
//
// The singleton validator is initialized once and safe for concurrent use:
//
//	validate := validation.GetValidator()       // Thread-safe
//	verr := validation.ValidateStruct(&criteria) // Thread-safe
//
// # Performance
//
// The validator caches struct reflection information:
//   - First validation of a struct type: ~1ms (reflection + caching)
//   - Subsequent validations: ~10us (cached)
//
// # See Also
//
//   - internal/database: Criteria validation before query construction
//   - github.com/go-playground/validator/v10: Underlying library
package validation
