// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package textcase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/pokedex/pkg/textcase"
)

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"bulbasaur", "Bulbasaur"},
		{"mr-mime", "Mr-mime"},
		{"Abra", "Abra"},
		{"éevee", "Éevee"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, textcase.Capitalize(tt.in))
		})
	}
}

func TestWords(t *testing.T) {
	assert.Equal(t, "Special Attack", textcase.Words("special-attack"))
	assert.Equal(t, "Hp", textcase.Words("hp"))
}
