// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pokedex/internal/platform/apperr"
)

/*
TestConstructors verifies status codes and machine-readable codes.
*/
func TestConstructors(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name   string
		err    *apperr.AppError
		status int
		code   string
	}{
		{"not_found", apperr.NotFound("Pokemon"), http.StatusNotFound, "NOT_FOUND"},
		{"validation", apperr.ValidationError("bad"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"internal", apperr.Internal(cause), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"unavailable_default", apperr.ServiceUnavailable("", "down", cause), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{"unavailable_custom", apperr.ServiceUnavailable("FETCH_FAILURE", "down", cause), http.StatusServiceUnavailable, "FETCH_FAILURE"},
		{"bad_gateway", apperr.BadGateway("LOOKUP_FAILURE", "upstream", cause), http.StatusBadGateway, "LOOKUP_FAILURE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}

	assert.Equal(t, "Pokemon not found", apperr.NotFound("Pokemon").Error())
}

/*
TestAs verifies extraction through a wrapped chain.
*/
func TestAs(t *testing.T) {
	cause := errors.New("timeout")
	wrapped := fmt.Errorf("handler: %w", apperr.BadGateway("LOOKUP_FAILURE", "upstream", cause))

	require.True(t, apperr.IsAppError(wrapped))
	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, "LOOKUP_FAILURE", ae.Code)
	assert.ErrorIs(t, wrapped, cause)

	assert.Nil(t, apperr.As(cause))
	assert.False(t, apperr.IsAppError(cause))
}
