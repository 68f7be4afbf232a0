// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pokemon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/pokedex/internal/pokemon"
)

/*
TestFavourites checks dedupe, removal, and insertion order.
*/
func TestFavourites(t *testing.T) {
	var favourites pokemon.Favourites
	assert.Equal(t, []string{}, favourites.Names())

	assert.True(t, favourites.Add("pidgey"))
	assert.True(t, favourites.Add("abra"))
	assert.False(t, favourites.Add("pidgey"))
	assert.Equal(t, 2, favourites.Len())
	assert.Equal(t, []string{"pidgey", "abra"}, favourites.Names())

	assert.False(t, favourites.Remove("kabuto"))
	assert.True(t, favourites.Remove("pidgey"))
	assert.False(t, favourites.Contains("pidgey"))
	assert.True(t, favourites.Contains("abra"))

	names := favourites.Names()
	names[0] = "mutated"
	assert.Equal(t, []string{"abra"}, favourites.Names())

	assert.Equal(t, []string{"a", "b"}, pokemon.NewFavourites("a", "b", "a").Names())
}
