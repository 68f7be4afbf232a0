// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pokemon

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/pokedex/pkg/slice"
)

// DefaultLookupConcurrency bounds in-flight detail lookups during type filtering.
const DefaultLookupConcurrency = 8

/*
Recompute derives the ordered visible subset from its three inputs.

Description: Criteria are applied as narrowing predicates in [Fields] order
(favourite, name, type) and the survivors are sorted by url id. The type stage
resolves one detail per surviving candidate, up to concurrency at a time, and
fails the whole pass if any lookup fails.

Parameters:
  - context: context.Context
  - resolver: Resolver (consulted only when a type criterion is set)
  - base: []Reference (never modified)
  - favourites: Favourites
  - filters: Filters
  - concurrency: int (values < 1 fall back to [DefaultLookupConcurrency])

Returns:
  - []Reference: Visible subset, sorted ascending by id
  - error: *LookupFailureError or *MalformedReferenceError
*/
func Recompute(context context.Context, resolver Resolver, base []Reference, favourites Favourites, filters Filters, concurrency int) ([]Reference, error) {
	result := slices.Clone(base)

	// 1. Favourite membership
	if filters.Favourite != nil {
		want := *filters.Favourite
		members := favourites.set()
		result = slice.Filter(result, func(ref Reference) bool {
			_, ok := members[ref.Name]
			return ok == want
		})
	}

	// 2. Name substring (case-sensitive, "" matches all)
	if filters.Name != nil {
		query := *filters.Name
		result = slice.Filter(result, func(ref Reference) bool {
			return strings.Contains(ref.Name, query)
		})
	}

	// 3. Type intersection
	if len(filters.Types) > 0 && len(result) > 0 {
		var err error
		result, err = filterByTypes(context, resolver, result, filters.Types, concurrency)
		if err != nil {
			return nil, err
		}
	}

	return sortByID(result)
}

// filterByTypes resolves every candidate concurrently and keeps those carrying all required types.
func filterByTypes(context context.Context, resolver Resolver, candidates []Reference, required []string, concurrency int) ([]Reference, error) {
	if concurrency < 1 {
		concurrency = DefaultLookupConcurrency
	}

	keep := make([]bool, len(candidates))

	group, groupCtx := errgroup.WithContext(context)
	group.SetLimit(concurrency)

	for i, ref := range candidates {
		group.Go(func() error {
			detail, err := resolver.Resolve(groupCtx, ref.Name)
			if err != nil {
				return &LookupFailureError{Name: ref.Name, Cause: err}
			}
			keep[i] = detail.HasTypes(required)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	kept := make([]Reference, 0, len(candidates))
	for i, ref := range candidates {
		if keep[i] {
			kept = append(kept, ref)
		}
	}
	return kept, nil
}

// sortByID orders refs ascending by url id.
func sortByID(refs []Reference) ([]Reference, error) {
	type keyed struct {
		id  int
		ref Reference
	}

	entries := make([]keyed, len(refs))
	for i, ref := range refs {
		id, err := ref.ID()
		if err != nil {
			return nil, err
		}
		entries[i] = keyed{id: id, ref: ref}
	}

	slices.SortStableFunc(entries, func(a, b keyed) int {
		return cmp.Compare(a.id, b.id)
	})

	return slice.Map(entries, func(e keyed) Reference { return e.ref }), nil
}
