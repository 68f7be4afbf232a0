// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pokemon

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCriterion is returned when a filter value does not match its field's shape.
	ErrInvalidCriterion = errors.New("pokemon: invalid filter criterion")

	// ErrNotLoaded is returned when the base dataset has not been fetched yet.
	ErrNotLoaded = errors.New("pokemon: catalog not loaded")

	// ErrUnknownPokemon is returned by a [Resolver] when the catalog has no entry by that name.
	ErrUnknownPokemon = errors.New("pokemon: unknown pokemon")
)

// FetchFailureError reports that the initial dataset load failed.
type FetchFailureError struct {
	Limit  int
	Offset int
	Cause  error
}

func (e *FetchFailureError) Error() string {
	return fmt.Sprintf("pokemon: fetch catalog (limit=%d offset=%d): %v", e.Limit, e.Offset, e.Cause)
}

func (e *FetchFailureError) Unwrap() error { return e.Cause }

// LookupFailureError reports that a detail lookup failed during type filtering.
type LookupFailureError struct {
	Name  string
	Cause error
}

func (e *LookupFailureError) Error() string {
	return fmt.Sprintf("pokemon: resolve %q: %v", e.Name, e.Cause)
}

func (e *LookupFailureError) Unwrap() error { return e.Cause }

// MalformedReferenceError reports a reference url without a numeric id segment.
type MalformedReferenceError struct {
	URL   string
	Cause error
}

func (e *MalformedReferenceError) Error() string {
	return fmt.Sprintf("pokemon: malformed reference url %q", e.URL)
}

func (e *MalformedReferenceError) Unwrap() error { return e.Cause }
