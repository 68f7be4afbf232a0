// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pokemon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pokedex/internal/pokemon"
)

/*
TestIDFromURL checks id extraction from the second-to-last url segment.
*/
func TestIDFromURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    int
		wantErr bool
	}{
		{"canonical", "https://pokeapi.co/api/v2/pokemon/4/", 4, false},
		{"three_digits", "https://pokeapi.co/api/v2/pokemon/150/", 150, false},
		{"relative", "/pokemon/25/", 25, false},
		{"missing_trailing_slash", "https://pokeapi.co/api/v2/pokemon/4", 0, true},
		{"non_numeric", "https://pokeapi.co/api/v2/pokemon/four/", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := pokemon.IDFromURL(tt.url)

			if tt.wantErr {
				var malformed *pokemon.MalformedReferenceError
				require.ErrorAs(t, err, &malformed)
				assert.Equal(t, tt.url, malformed.URL)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

/*
TestReference_IsOriginal checks the badge cutoff.
*/
func TestReference_IsOriginal(t *testing.T) {
	assert.True(t, ref("bulbasaur", 1).IsOriginal())
	assert.True(t, ref("mew", 149).IsOriginal())
	assert.False(t, ref("mewtwo", 150).IsOriginal())
	assert.False(t, ref("chikorita", 152).IsOriginal())
	assert.False(t, pokemon.Reference{Name: "glitch", URL: "nope"}.IsOriginal())
}

/*
TestDetail_HasTypes checks superset semantics of the type criterion.
*/
func TestDetail_HasTypes(t *testing.T) {
	charizard := &pokemon.Detail{Types: []string{"fire", "flying"}}

	assert.True(t, charizard.HasTypes(nil))
	assert.True(t, charizard.HasTypes([]string{"fire"}))
	assert.True(t, charizard.HasTypes([]string{"flying", "fire"}))
	assert.False(t, charizard.HasTypes([]string{"fire", "water"}))
	assert.False(t, charizard.HasTypes([]string{"shadow"}))
}

/*
TestType_IsValid checks the elemental type enumeration.
*/
func TestType_IsValid(t *testing.T) {
	assert.Len(t, pokemon.Types, 18)
	assert.True(t, pokemon.TypeFairy.IsValid())
	assert.False(t, pokemon.Type("shadow").IsValid())
	assert.Len(t, pokemon.Stats, 6)
}

/*
TestNewCards checks card decoration.
*/
func TestNewCards(t *testing.T) {
	cards, err := pokemon.NewCards(
		[]pokemon.Reference{ref("mr-mime", 122), ref("chikorita", 152)},
		[]string{"chikorita"},
	)
	require.NoError(t, err)

	require.Len(t, cards, 2)
	assert.Equal(t, pokemon.Card{
		ID:          122,
		Name:        "mr-mime",
		DisplayName: "Mr-mime",
		URL:         "https://pokeapi.co/api/v2/pokemon/122/",
		Favourite:   false,
		Original:    true,
	}, cards[0])
	assert.True(t, cards[1].Favourite)
	assert.False(t, cards[1].Original)

	empty, err := pokemon.NewCards(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = pokemon.NewCards([]pokemon.Reference{{Name: "glitch", URL: "https://pokeapi.co/api/v2/pokemon/glitch/"}}, nil)
	var malformed *pokemon.MalformedReferenceError
	assert.ErrorAs(t, err, &malformed)
}
