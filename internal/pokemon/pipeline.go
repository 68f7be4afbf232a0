// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pokemon

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

// DefaultCatalogLimit is the size of the historical catalog window fetched at load.
const DefaultCatalogLimit = 150

// # Pipeline State

// Options tunes a [Pipeline].
type Options struct {
	// Limit and Offset select the catalog window fetched by [Pipeline.Load].
	Limit  int
	Offset int

	// Concurrency bounds in-flight detail lookups during type filtering.
	Concurrency int
}

// Snapshot is a consistent, copy-on-read view of the pipeline state.
type Snapshot struct {
	// Version is the state version the visible subset was computed from.
	Version    uint64      `json:"version"`
	Pokemon    []Reference `json:"pokemon"`
	Favourites []string    `json:"favourites"`
	Filters    Filters     `json:"filters"`
}

// Pipeline owns the base dataset, favourites, and filter criteria, and
// publishes the visible subset derived from them.
//
// # Concurrency
//
// Every mutation bumps a state version under the lock and recomputes outside it.
// Every finished pass, successful or not, raises the settled version. A pass is
// published only if its version is newer than the settled one, so a slow pass for
// an older state can never overwrite the result (or the kept subset after a
// failure) of a newer one.
type Pipeline struct {
	catalog Catalog
	options Options
	logger  *slog.Logger

	mu         sync.Mutex
	loaded     bool
	loadErr    error
	base       []Reference
	favourites Favourites
	filters    Filters
	version    uint64
	settled    uint64

	published Snapshot
}

// NewPipeline constructs an unloaded [Pipeline].
func NewPipeline(catalog Catalog, options Options, logger *slog.Logger) *Pipeline {
	if options.Limit <= 0 {
		options.Limit = DefaultCatalogLimit
	}
	if options.Offset < 0 {
		options.Offset = 0
	}
	if options.Concurrency < 1 {
		options.Concurrency = DefaultLookupConcurrency
	}

	return &Pipeline{
		catalog: catalog,
		options: options,
		logger:  logger,
	}
}

// # Lifecycle

/*
Load fetches the base dataset once and seeds the visible subset.

Description: The catalog window is fetched a single time. Calling Load again
after a success is a no-op; after a failure it returns the recorded failure
without retrying.

Returns:
  - error: *FetchFailureError or *MalformedReferenceError
*/
func (p *Pipeline) Load(context context.Context) error {
	p.mu.Lock()
	if p.loaded {
		p.mu.Unlock()
		return nil
	}
	if p.loadErr != nil {
		err := p.loadErr
		p.mu.Unlock()
		return err
	}
	p.mu.Unlock()

	refs, err := p.catalog.List(context, p.options.Limit, p.options.Offset)
	if err != nil {
		return p.failLoad(&FetchFailureError{Limit: p.options.Limit, Offset: p.options.Offset, Cause: err})
	}

	visible, err := sortByID(refs)
	if err != nil {
		return p.failLoad(err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.base = slices.Clone(refs)
	p.loaded = true
	p.version++
	p.settled = p.version
	p.publishLocked(p.version, visible, p.favourites, p.filters)

	p.logger.Info("catalog_loaded",
		slog.Int("count", len(refs)),
		slog.Int("limit", p.options.Limit),
		slog.Int("offset", p.options.Offset),
	)
	return nil
}

func (p *Pipeline) failLoad(err error) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.loadErr = err
	p.logger.Error("catalog_load_failed", slog.Any("error", err))
	return err
}

// Ready reports nil once the base dataset is loaded, or the reason it is not.
func (p *Pipeline) Ready() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.readyLocked()
}

func (p *Pipeline) readyLocked() error {
	if p.loadErr != nil {
		return p.loadErr
	}
	if !p.loaded {
		return ErrNotLoaded
	}
	return nil
}

// # Reads

// Snapshot returns the currently published state.
func (p *Pipeline) Snapshot() (Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.readyLocked(); err != nil {
		return Snapshot{}, err
	}
	return p.snapshotLocked(), nil
}

func (p *Pipeline) snapshotLocked() Snapshot {
	return Snapshot{
		Version:    p.published.Version,
		Pokemon:    slices.Clone(p.published.Pokemon),
		Favourites: slices.Clone(p.published.Favourites),
		Filters:    p.published.Filters.Clone(),
	}
}

// publishLocked replaces the published state with the result computed for version.
func (p *Pipeline) publishLocked(version uint64, visible []Reference, favourites Favourites, filters Filters) {
	if visible == nil {
		visible = []Reference{}
	}
	p.published = Snapshot{
		Version:    version,
		Pokemon:    visible,
		Favourites: favourites.Names(),
		Filters:    filters.Clone(),
	}
}

// Filters returns the current criteria, which may be ahead of the published
// snapshot while a pass is in flight or after a failed pass.
func (p *Pipeline) Filters() Filters {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filters.Clone()
}

// Favourites returns the current favourites in insertion order.
func (p *Pipeline) Favourites() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.favourites.Names()
}

// IsFavourite reports whether name is currently a favourite.
func (p *Pipeline) IsFavourite(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.favourites.Contains(name)
}

// SearchResult is the outcome of an ad-hoc pass together with the favourites
// it filtered on.
type SearchResult struct {
	Pokemon    []Reference
	Favourites []string
}

// Search recomputes over the base dataset with ad-hoc filters and the current
// favourites, without touching the published state.
func (p *Pipeline) Search(context context.Context, filters Filters) (SearchResult, error) {
	p.mu.Lock()
	if err := p.readyLocked(); err != nil {
		p.mu.Unlock()
		return SearchResult{}, err
	}
	base := p.base
	favourites := p.favourites.clone()
	p.mu.Unlock()

	visible, err := Recompute(context, p.catalog, base, favourites, filters.Clone(), p.options.Concurrency)
	if err != nil {
		return SearchResult{}, err
	}
	return SearchResult{Pokemon: visible, Favourites: favourites.Names()}, nil
}

// Resolve fetches the detail of a single entry.
func (p *Pipeline) Resolve(context context.Context, name string) (*Detail, error) {
	return p.catalog.Resolve(context, name)
}

// # Mutations

// SetFilter replaces the criterion for field and recomputes. A nil value clears it.
func (p *Pipeline) SetFilter(context context.Context, field Field, value any) (Snapshot, error) {
	return p.mutate(context, func() (bool, error) {
		next, err := p.filters.With(field, value)
		if err != nil {
			return false, err
		}
		p.filters = next
		return true, nil
	})
}

// ClearFilter removes the criterion for field and recomputes.
func (p *Pipeline) ClearFilter(context context.Context, field Field) (Snapshot, error) {
	return p.SetFilter(context, field, nil)
}

// ClearFilters removes every criterion and recomputes.
func (p *Pipeline) ClearFilters(context context.Context) (Snapshot, error) {
	return p.mutate(context, func() (bool, error) {
		p.filters = Filters{}
		return true, nil
	})
}

// AddFavourite marks name as a favourite and recomputes.
func (p *Pipeline) AddFavourite(context context.Context, name string) (Snapshot, error) {
	return p.mutate(context, func() (bool, error) {
		return p.favourites.Add(name), nil
	})
}

// RemoveFavourite unmarks name and recomputes.
func (p *Pipeline) RemoveFavourite(context context.Context, name string) (Snapshot, error) {
	return p.mutate(context, func() (bool, error) {
		return p.favourites.Remove(name), nil
	})
}

// ToggleFavourite flips the favourite state of name and recomputes.
func (p *Pipeline) ToggleFavourite(context context.Context, name string) (Snapshot, error) {
	return p.mutate(context, func() (bool, error) {
		if p.favourites.Contains(name) {
			return p.favourites.Remove(name), nil
		}
		return p.favourites.Add(name), nil
	})
}

/*
mutate applies change under the lock, then recomputes and publishes.

Description: change reports whether it altered the state. An unchanged state
skips the pass and returns the current snapshot. The pass runs outside the lock
against a copy of the state tagged with the new version.

Returns:
  - Snapshot: The published state after this mutation settles
  - error: Validation, lookup, or reference failures (published state untouched)
*/
func (p *Pipeline) mutate(context context.Context, change func() (bool, error)) (Snapshot, error) {

	// ── 1. Apply ──────────────────────────────────────────────────────────
	p.mu.Lock()
	if err := p.readyLocked(); err != nil {
		p.mu.Unlock()
		return Snapshot{}, err
	}

	changed, err := change()
	if err != nil {
		p.mu.Unlock()
		return Snapshot{}, err
	}
	if !changed {
		snapshot := p.snapshotLocked()
		p.mu.Unlock()
		return snapshot, nil
	}

	p.version++
	version := p.version
	base := p.base
	favourites := p.favourites.clone()
	filters := p.filters.Clone()
	p.mu.Unlock()

	// ── 2. Recompute ──────────────────────────────────────────────────────
	visible, err := Recompute(context, p.catalog, base, favourites, filters, p.options.Concurrency)

	// ── 3. Publish ────────────────────────────────────────────────────────
	p.mu.Lock()
	defer p.mu.Unlock()

	if version <= p.settled {
		p.logger.Debug("recompute_discarded",
			slog.Uint64("version", version),
			slog.Uint64("settled_version", p.settled),
			slog.Bool("failed", err != nil),
		)
		return p.snapshotLocked(), nil
	}
	p.settled = version

	if err != nil {
		p.logger.Warn("recompute_failed",
			slog.Uint64("version", version),
			slog.Any("error", err),
		)
		return Snapshot{}, err
	}

	p.publishLocked(version, visible, favourites, filters)
	return p.snapshotLocked(), nil
}
