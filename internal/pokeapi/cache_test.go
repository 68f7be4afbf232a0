// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pokeapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pokedex/internal/pokemon"
)

// countingCatalog serves fixed details and counts upstream resolutions.
type countingCatalog struct {
	details  map[string]*pokemon.Detail
	resolves atomic.Int32
}

func (c *countingCatalog) List(context.Context, int, int) ([]pokemon.Reference, error) {
	return nil, nil
}

func (c *countingCatalog) Resolve(_ context.Context, name string) (*pokemon.Detail, error) {
	c.resolves.Add(1)
	detail, ok := c.details[name]
	if !ok {
		return nil, ErrNotFound
	}
	return detail, nil
}

// brokenCache fails every operation.
type brokenCache struct{}

func (brokenCache) Get(context.Context, string) (*pokemon.Detail, error) {
	return nil, errors.New("cache down")
}

func (brokenCache) Set(context.Context, string, *pokemon.Detail, time.Duration) error {
	return errors.New("cache down")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pikachu() *pokemon.Detail {
	return &pokemon.Detail{
		ID:    25,
		Name:  "pikachu",
		Types: []string{"electric"},
		Stats: []pokemon.BaseStat{{Name: pokemon.StatSpeed, Value: 90}},
	}
}

/*
TestMemoryCache_Expiry verifies entries stop being served once their TTL elapses.
*/
func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	cache := NewMemoryCache()
	cache.now = func() time.Time { return now }

	require.NoError(t, cache.Set(ctx, "pikachu", pikachu(), time.Minute))

	got, err := cache.Get(ctx, "pikachu")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"electric"}, got.Types)

	// Returned copies must not alias the stored entry.
	got.Types[0] = "mutated"
	again, _ := cache.Get(ctx, "pikachu")
	assert.Equal(t, []string{"electric"}, again.Types)

	now = now.Add(time.Minute)
	expired, err := cache.Get(ctx, "pikachu")
	require.NoError(t, err)
	assert.Nil(t, expired)
	assert.Zero(t, cache.Len())

	miss, err := cache.Get(ctx, "eevee")
	require.NoError(t, err)
	assert.Nil(t, miss)
}

/*
TestCachedCatalog_ReadThrough verifies that a second resolution is served from cache.
*/
func TestCachedCatalog_ReadThrough(t *testing.T) {
	upstream := &countingCatalog{details: map[string]*pokemon.Detail{"pikachu": pikachu()}}
	catalog := NewCachedCatalog(upstream, NewMemoryCache(), time.Hour, discardLogger())

	for range 3 {
		detail, err := catalog.Resolve(context.Background(), "pikachu")
		require.NoError(t, err)
		assert.Equal(t, 25, detail.ID)
	}
	assert.EqualValues(t, 1, upstream.resolves.Load())

	// Failures are not cached.
	for range 2 {
		_, err := catalog.Resolve(context.Background(), "missingno")
		assert.ErrorIs(t, err, ErrNotFound)
	}
	assert.EqualValues(t, 3, upstream.resolves.Load())
}

/*
TestCachedCatalog_BrokenCache verifies cache failures fall through to the upstream.
*/
func TestCachedCatalog_BrokenCache(t *testing.T) {
	upstream := &countingCatalog{details: map[string]*pokemon.Detail{"pikachu": pikachu()}}
	catalog := NewCachedCatalog(upstream, brokenCache{}, time.Hour, discardLogger())

	detail, err := catalog.Resolve(context.Background(), "pikachu")
	require.NoError(t, err)
	assert.Equal(t, "pikachu", detail.Name)
	assert.EqualValues(t, 1, upstream.resolves.Load())
}

/*
TestRedisCache_RoundTrip verifies storage, TTL expiry, and key layout.
*/
func TestRedisCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cache := NewRedisCache(client)

	miss, err := cache.Get(ctx, "pikachu")
	require.NoError(t, err)
	assert.Nil(t, miss)

	require.NoError(t, cache.Set(ctx, "pikachu", pikachu(), time.Minute))
	assert.True(t, server.Exists("pokeapi:detail:pikachu"))

	got, err := cache.Get(ctx, "pikachu")
	require.NoError(t, err)
	assert.Equal(t, pikachu(), got)

	server.FastForward(2 * time.Minute)
	expired, err := cache.Get(ctx, "pikachu")
	require.NoError(t, err)
	assert.Nil(t, expired)

	// Corrupt payloads surface as errors rather than empty details.
	require.NoError(t, server.Set("pokeapi:detail:eevee", "{not json"))
	_, err = cache.Get(ctx, "eevee")
	assert.Error(t, err)
}
