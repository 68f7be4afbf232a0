// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pokemon_test

import (
	"context"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pokedex/internal/pokemon"
	"github.com/taibuivan/pokedex/pkg/pointer"
)

func recompute(t *testing.T, catalog *fakeCatalog, favourites pokemon.Favourites, filters pokemon.Filters) []pokemon.Reference {
	t.Helper()

	visible, err := pokemon.Recompute(context.Background(), catalog, catalog.refs, favourites, filters, 3)
	require.NoError(t, err)
	return visible
}

func assertSortedByID(t *testing.T, refs []pokemon.Reference) {
	t.Helper()

	assert.True(t, slices.IsSortedFunc(refs, func(a, b pokemon.Reference) int {
		idA, _ := a.ID()
		idB, _ := b.ID()
		return idA - idB
	}), "not sorted by id: %v", names(refs))
}

/*
TestRecompute_Scenarios checks each criterion in isolation and combined.
*/
func TestRecompute_Scenarios(t *testing.T) {
	favourites := pokemon.NewFavourites("charmander", "pidgey")

	tests := []struct {
		name    string
		filters pokemon.Filters
		want    []string
	}{
		{"unfiltered", pokemon.Filters{}, []string{"bulbasaur", "ivysaur", "charmander", "charizard", "squirtle", "wartortle", "pidgey", "abra", "kabuto"}},
		{"name_saur", pokemon.Filters{Name: pointer.To("saur")}, []string{"bulbasaur", "ivysaur"}},
		{"name_empty", pokemon.Filters{Name: pointer.To("")}, []string{"bulbasaur", "ivysaur", "charmander", "charizard", "squirtle", "wartortle", "pidgey", "abra", "kabuto"}},
		{"name_no_match", pokemon.Filters{Name: pointer.To("xyz_no_match")}, []string{}},
		{"name_case_sensitive", pokemon.Filters{Name: pointer.To("Char")}, []string{}},
		{"favourite_true", pokemon.Filters{Favourite: pointer.To(true)}, []string{"charmander", "pidgey"}},
		{"type_fire_flying", pokemon.Filters{Types: []string{"fire", "flying"}}, []string{"charizard"}},
		{"type_water", pokemon.Filters{Types: []string{"water"}}, []string{"squirtle", "wartortle", "kabuto"}},
		{"type_unknown", pokemon.Filters{Types: []string{"shadow"}}, []string{}},
		{"combined", pokemon.Filters{Favourite: pointer.To(false), Name: pointer.To("a"), Types: []string{"flying"}}, []string{"charizard"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visible := recompute(t, newDex(), favourites, tt.filters)
			assert.Equal(t, tt.want, names(visible))
		})
	}
}

/*
TestRecompute_Properties checks subset, ordering, and partition over many criteria.
*/
func TestRecompute_Properties(t *testing.T) {
	catalog := newDex()
	favourites := pokemon.NewFavourites("squirtle", "abra", "kabuto")
	base := names(catalog.refs)

	criteria := []pokemon.Filters{
		{},
		{Name: pointer.To("r")},
		{Types: []string{"water"}},
		{Types: []string{"grass", "poison"}},
		{Favourite: pointer.To(true), Types: []string{"water"}},
		{Favourite: pointer.To(false), Name: pointer.To("t")},
	}

	for _, filters := range criteria {
		visible := recompute(t, catalog, favourites, filters)
		assertSortedByID(t, visible)
		assert.Subset(t, base, names(visible))
	}

	// Clearing every criterion restores the full dataset in id order.
	all := recompute(t, catalog, favourites, pokemon.Filters{})
	assert.ElementsMatch(t, base, names(all))
	assertSortedByID(t, all)

	// favourite=true and favourite=false partition the dataset.
	in := names(recompute(t, catalog, favourites, pokemon.Filters{Favourite: pointer.To(true)}))
	out := names(recompute(t, catalog, favourites, pokemon.Filters{Favourite: pointer.To(false)}))
	assert.ElementsMatch(t, favourites.Names(), in)
	assert.ElementsMatch(t, base, append(slices.Clone(in), out...))
	for _, name := range in {
		assert.NotContains(t, out, name)
	}
}

/*
TestRecompute_SkipsLookupsWithoutTypeCriterion checks the resolver is untouched.
*/
func TestRecompute_SkipsLookupsWithoutTypeCriterion(t *testing.T) {
	catalog := newDex()
	recompute(t, catalog, pokemon.Favourites{}, pokemon.Filters{Name: pointer.To("a")})
	assert.Zero(t, catalog.resolveCalls())

	// Type lookups only run for candidates that survive earlier stages.
	recompute(t, catalog, pokemon.Favourites{}, pokemon.Filters{Name: pointer.To("saur"), Types: []string{"grass"}})
	assert.Equal(t, 2, catalog.resolveCalls())
}

/*
TestRecompute_LookupFailure checks that one failed lookup fails the pass.
*/
func TestRecompute_LookupFailure(t *testing.T) {
	catalog := newDex()
	catalog.setFailing("wartortle", true)

	visible, err := pokemon.Recompute(context.Background(), catalog, catalog.refs, pokemon.Favourites{}, pokemon.Filters{Types: []string{"water"}}, 2)

	var lookup *pokemon.LookupFailureError
	require.ErrorAs(t, err, &lookup)
	assert.Equal(t, "wartortle", lookup.Name)
	assert.ErrorIs(t, err, errUpstreamDown)
	assert.Nil(t, visible)
}

/*
TestRecompute_MalformedReference checks that an unparseable url is surfaced.
*/
func TestRecompute_MalformedReference(t *testing.T) {
	base := []pokemon.Reference{ref("bulbasaur", 1), {Name: "glitch", URL: "https://pokeapi.co/api/v2/pokemon/glitch/"}}

	_, err := pokemon.Recompute(context.Background(), newDex(), base, pokemon.Favourites{}, pokemon.Filters{}, 1)

	var malformed *pokemon.MalformedReferenceError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "https://pokeapi.co/api/v2/pokemon/glitch/", malformed.URL)
}

/*
TestRecompute_DoesNotModifyBase checks that the input dataset is left untouched.
*/
func TestRecompute_DoesNotModifyBase(t *testing.T) {
	catalog := newDex()
	before := slices.Clone(catalog.refs)

	recompute(t, catalog, pokemon.Favourites{}, pokemon.Filters{Types: []string{"fire"}})
	assert.Equal(t, before, catalog.refs)
}

/*
TestRecompute_ExtremeIDs checks ordering holds across the whole int range.
*/
func TestRecompute_ExtremeIDs(t *testing.T) {
	base := []pokemon.Reference{ref("big", math.MaxInt), ref("neg", -math.MaxInt), ref("zero", 0)}

	visible, err := pokemon.Recompute(context.Background(), newDex(), base, pokemon.Favourites{}, pokemon.Filters{}, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"neg", "zero", "big"}, names(visible))
}
