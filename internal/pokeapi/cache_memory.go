// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pokeapi

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/taibuivan/pokedex/internal/pokemon"
)

type memoryEntry struct {
	detail    *pokemon.Detail
	expiresAt time.Time
}

// MemoryCache is an in-process [DetailCache] with per-entry expiry.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCache constructs an empty [MemoryCache].
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get returns a copy of the live entry for name, or nil on a miss.
func (cache *MemoryCache) Get(_ context.Context, name string) (*pokemon.Detail, error) {
	cache.mu.RLock()
	entry, ok := cache.entries[name]
	cache.mu.RUnlock()

	if !ok {
		return nil, nil
	}

	if !cache.now().Before(entry.expiresAt) {
		cache.mu.Lock()
		// Re-check: a concurrent Set may have refreshed it.
		if current, ok := cache.entries[name]; ok && !cache.now().Before(current.expiresAt) {
			delete(cache.entries, name)
		}
		cache.mu.Unlock()
		return nil, nil
	}

	return cloneDetail(entry.detail), nil
}

// Set stores a copy of detail for ttl.
func (cache *MemoryCache) Set(_ context.Context, name string, detail *pokemon.Detail, ttl time.Duration) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	cache.entries[name] = memoryEntry{
		detail:    cloneDetail(detail),
		expiresAt: cache.now().Add(ttl),
	}
	return nil
}

// Len returns the number of stored entries, live or expired.
func (cache *MemoryCache) Len() int {
	cache.mu.RLock()
	defer cache.mu.RUnlock()
	return len(cache.entries)
}

func cloneDetail(detail *pokemon.Detail) *pokemon.Detail {
	clone := *detail
	clone.Types = slices.Clone(detail.Types)
	clone.Stats = slices.Clone(detail.Stats)
	return &clone
}
