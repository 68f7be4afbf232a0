// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pokeapi is the HTTP client for the remote catalog (https://pokeapi.co).

It translates the upstream REST resources into the [pokemon] domain types and
offers an optional detail cache so repeated type filtering does not fetch the
same record on every pass.

Core Responsibilities:

  - Listing: Paged named-resource references (GET /pokemon?limit=&offset=).
  - Resolution: Full records with types, stats, and sprite (GET /pokemon/{name}).
  - Politeness: Outbound requests wait on a token-bucket limiter.
*/
package pokeapi

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/pokedex/internal/pokemon"
	"github.com/taibuivan/pokedex/pkg/slice"
)

var (
	// ErrNotFound is returned when the upstream reports 404 for a resource.
	// It matches [pokemon.ErrUnknownPokemon] under errors.Is.
	ErrNotFound = fmt.Errorf("pokeapi: resource not found: %w", pokemon.ErrUnknownPokemon)

	// ErrUpstream is returned for any other non-2xx upstream response.
	ErrUpstream = errors.New("pokeapi: upstream error")
)

// maxErrorBody caps how much of an error response is kept for diagnostics.
const maxErrorBody = 512

// # Client

// Options configures a [Client].
type Options struct {
	BaseURL string
	Timeout time.Duration

	// RPS and Burst configure the outbound limiter. RPS <= 0 disables it.
	RPS   float64
	Burst int

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client implements [pokemon.Catalog] over the PokeAPI v2 REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient constructs a [Client] from options.
func NewClient(options Options) (*Client, error) {
	base, err := url.Parse(options.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("pokeapi: invalid base url %q", options.BaseURL)
	}

	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.Timeout}
	}

	var limiter *rate.Limiter
	if options.RPS > 0 {
		burst := options.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(options.RPS), burst)
	}

	return &Client{
		baseURL:    strings.TrimRight(options.BaseURL, "/"),
		httpClient: httpClient,
		limiter:    limiter,
	}, nil
}

// # Wire Types

type namedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type listResponse struct {
	Count   int             `json:"count"`
	Results []namedResource `json:"results"`
}

type typeSlot struct {
	Slot int           `json:"slot"`
	Type namedResource `json:"type"`
}

type pokemonResponse struct {
	ID     int        `json:"id"`
	Name   string     `json:"name"`
	Height int        `json:"height"`
	Weight int        `json:"weight"`
	Types  []typeSlot `json:"types"`
	Stats  []struct {
		BaseStat int           `json:"base_stat"`
		Stat     namedResource `json:"stat"`
	} `json:"stats"`
	Sprites struct {
		FrontDefault *string `json:"front_default"`
	} `json:"sprites"`
}

// # Operations

/*
List returns the references in the window [offset, offset+limit).

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []pokemon.Reference: References in catalog order
  - error: ErrUpstream, transport, or decoding failures
*/
func (client *Client) List(context context.Context, limit, offset int) ([]pokemon.Reference, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	var body listResponse
	if err := client.get(context, "/pokemon?"+query.Encode(), &body); err != nil {
		return nil, err
	}

	return slice.Map(body.Results, func(r namedResource) pokemon.Reference {
		return pokemon.Reference{Name: r.Name, URL: r.URL}
	}), nil
}

/*
Resolve fetches the full record for name.

Returns:
  - *pokemon.Detail: Types ordered by slot, stats in upstream order
  - error: ErrNotFound, ErrUpstream, transport, or decoding failures
*/
func (client *Client) Resolve(context context.Context, name string) (*pokemon.Detail, error) {
	var body pokemonResponse
	if err := client.get(context, "/pokemon/"+url.PathEscape(name), &body); err != nil {
		return nil, err
	}

	// Upstream lists types by slot; keep that order explicitly.
	types := slices.Clone(body.Types)
	slices.SortStableFunc(types, func(a, b typeSlot) int {
		return cmp.Compare(a.Slot, b.Slot)
	})

	detail := &pokemon.Detail{
		ID:     body.ID,
		Name:   body.Name,
		Height: body.Height,
		Weight: body.Weight,
		Types:  make([]string, 0, len(types)),
		Stats:  make([]pokemon.BaseStat, 0, len(body.Stats)),
	}
	for _, t := range types {
		detail.Types = append(detail.Types, t.Type.Name)
	}
	for _, s := range body.Stats {
		detail.Stats = append(detail.Stats, pokemon.BaseStat{Name: pokemon.Stat(s.Stat.Name), Value: s.BaseStat})
	}
	if body.Sprites.FrontDefault != nil {
		detail.Sprite = *body.Sprites.FrontDefault
	}

	return detail, nil
}

// get performs a rate-limited GET against path and decodes the JSON body into target.
func (client *Client) get(context context.Context, path string, target any) error {
	if client.limiter != nil {
		if err := client.limiter.Wait(context); err != nil {
			return fmt.Errorf("pokeapi: rate limiter: %w", err)
		}
	}

	request, err := http.NewRequestWithContext(context, http.MethodGet, client.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("pokeapi: build request: %w", err)
	}
	request.Header.Set("Accept", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("pokeapi: GET %s: %w", path, err)
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: GET %s", ErrNotFound, path)
	case response.StatusCode < 200 || response.StatusCode > 299:
		snippet, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBody))
		return fmt.Errorf("%w: GET %s: status %d: %s", ErrUpstream, path, response.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		return fmt.Errorf("pokeapi: decode %s: %w", path, err)
	}
	return nil
}
