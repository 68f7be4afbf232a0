// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/pokedex/pkg/uuid"
)

func TestNew(t *testing.T) {
	first := uuid.New()
	second := uuid.New()

	assert.True(t, uuid.IsValid(first))
	assert.NotEqual(t, first, second)
	assert.Equal(t, byte('7'), first[14], "expected a version 7 identifier")
}

func TestIsValid(t *testing.T) {
	assert.False(t, uuid.IsValid(""))
	assert.False(t, uuid.IsValid("req-123"))
	assert.True(t, uuid.IsValid("0190b3f0-8d2c-7a4e-9b1a-2f3c4d5e6f70"))
}
