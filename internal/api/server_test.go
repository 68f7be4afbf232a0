// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pokedex/internal/api"
	"github.com/taibuivan/pokedex/internal/platform/config"
	redisstore "github.com/taibuivan/pokedex/internal/platform/redis"
	"github.com/taibuivan/pokedex/internal/pokemon"
)

// staticCatalog serves a fixed two-entry window.
type staticCatalog struct {
	listErr error
}

func (catalog staticCatalog) List(context.Context, int, int) ([]pokemon.Reference, error) {
	if catalog.listErr != nil {
		return nil, catalog.listErr
	}
	return []pokemon.Reference{
		{Name: "squirtle", URL: "https://pokeapi.co/api/v2/pokemon/7/"},
		{Name: "bulbasaur", URL: "https://pokeapi.co/api/v2/pokemon/1/"},
	}, nil
}

func (catalog staticCatalog) Resolve(_ context.Context, name string) (*pokemon.Detail, error) {
	return &pokemon.Detail{Name: name, Types: []string{"water"}}, nil
}

type readyBody struct {
	Data struct {
		Status string `json:"status"`
		Checks []struct {
			Name string `json:"name"`
			OK   bool   `json:"ok"`
		} `json:"checks"`
	} `json:"data"`
}

func newTestServer(t *testing.T, catalog pokemon.Catalog, cacheCheck func() error) (http.Handler, *pokemon.Pipeline) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pipeline := pokemon.NewPipeline(catalog, pokemon.Options{}, logger)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckCatalog: pipeline.Ready,
		CheckCache:   cacheCheck,
	}, logger)

	cfg := &config.Config{ServerPort: "0", Environment: "production", ExtraOrigins: "pokedex.example"}
	server := api.NewServer(t.Context(), cfg, logger, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Pokemon:   pokemon.NewHandler(pipeline),
	})
	return server.Handler(), pipeline
}

func get(handler http.Handler, target string, headers map[string]string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, target, nil)
	for key, value := range headers {
		request.Header.Set(key, value)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestServer_Probes checks liveness and readiness across the load lifecycle.
*/
func TestServer_Probes(t *testing.T) {
	handler, pipeline := newTestServer(t, staticCatalog{}, nil)

	recorder := get(handler, "/health", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))

	recorder = get(handler, "/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)

	require.NoError(t, pipeline.Load(t.Context()))

	recorder = get(handler, "/ready", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body readyBody
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "ready", body.Data.Status)
	require.Len(t, body.Data.Checks, 1)
	assert.Equal(t, "catalog", body.Data.Checks[0].Name)
}

/*
TestServer_ReadinessWithRedis checks the cache probe is reported when configured.
*/
func TestServer_ReadinessWithRedis(t *testing.T) {
	redisServer := miniredis.RunT(t)
	client, err := redisstore.NewClient(t.Context(), "redis://"+redisServer.Addr(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	handler, pipeline := newTestServer(t, staticCatalog{}, func() error {
		return redisstore.Ping(context.Background(), client)
	})
	require.NoError(t, pipeline.Load(t.Context()))

	recorder := get(handler, "/ready", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	redisServer.Close()

	recorder = get(handler, "/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)

	var body readyBody
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Data.Status)
	require.Len(t, body.Data.Checks, 2)
	assert.True(t, body.Data.Checks[0].OK)
	assert.False(t, body.Data.Checks[1].OK)
}

/*
TestServer_Routes checks the API is mounted behind the middleware chain.
*/
func TestServer_Routes(t *testing.T) {
	handler, pipeline := newTestServer(t, staticCatalog{}, nil)
	require.NoError(t, pipeline.Load(t.Context()))

	recorder := get(handler, "/api/v1/pokemon", map[string]string{
		"X-Request-ID": "req-123",
		"Origin":       "https://www.pokedex.example",
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "req-123", recorder.Header().Get("X-Request-ID"))
	assert.Equal(t, "https://www.pokedex.example", recorder.Header().Get("Access-Control-Allow-Origin"))

	var page struct {
		Data []pokemon.Card `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &page))
	require.Len(t, page.Data, 2)
	assert.Equal(t, "bulbasaur", page.Data[0].Name)

	recorder = get(handler, "/api/v1/pokemon", map[string]string{"Origin": "https://evil.example"})
	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
}

/*
TestServer_FetchFailure checks a failed load degrades the API instead of crashing it.
*/
func TestServer_FetchFailure(t *testing.T) {
	handler, pipeline := newTestServer(t, staticCatalog{listErr: errors.New("dns failure")}, nil)
	require.Error(t, pipeline.Load(t.Context()))

	assert.Equal(t, http.StatusServiceUnavailable, get(handler, "/ready", nil).Code)
	assert.Equal(t, http.StatusOK, get(handler, "/health", nil).Code)

	recorder := get(handler, "/api/v1/pokemon", nil)
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "FETCH_FAILURE")
}
