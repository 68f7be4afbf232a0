// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pokeapi

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/pokedex/internal/pokemon"
)

// # Detail Cache

// DetailCache stores resolved details by name.
//
// Get reports a miss with (nil, nil). Errors are reserved for backend failures.
type DetailCache interface {
	Get(context context.Context, name string) (*pokemon.Detail, error)
	Set(context context.Context, name string, detail *pokemon.Detail, ttl time.Duration) error
}

// CachedCatalog decorates a [pokemon.Catalog] with a read-through detail cache.
//
// Listing is never cached. Cache failures are logged and fall through to the
// wrapped catalog, so the cache can only make lookups faster, never fail them.
type CachedCatalog struct {
	next   pokemon.Catalog
	cache  DetailCache
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedCatalog wraps next with cache, storing entries for ttl.
func NewCachedCatalog(next pokemon.Catalog, cache DetailCache, ttl time.Duration, logger *slog.Logger) *CachedCatalog {
	return &CachedCatalog{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// List delegates to the wrapped catalog.
func (catalog *CachedCatalog) List(context context.Context, limit, offset int) ([]pokemon.Reference, error) {
	return catalog.next.List(context, limit, offset)
}

// Resolve returns the cached detail for name, fetching and storing it on a miss.
func (catalog *CachedCatalog) Resolve(context context.Context, name string) (*pokemon.Detail, error) {

	// 1. Cache lookup
	cached, err := catalog.cache.Get(context, name)
	if err != nil {
		catalog.logger.Warn("detail_cache_get_failed", slog.String("name", name), slog.Any("error", err))
	} else if cached != nil {
		return cached, nil
	}

	// 2. Upstream fetch
	detail, err := catalog.next.Resolve(context, name)
	if err != nil {
		return nil, err
	}

	// 3. Populate
	if err := catalog.cache.Set(context, name, detail, catalog.ttl); err != nil {
		catalog.logger.Warn("detail_cache_set_failed", slog.String("name", name), slog.Any("error", err))
	}

	return detail, nil
}
