// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pokemon

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/pokedex/internal/platform/apperr"
	requestutil "github.com/taibuivan/pokedex/internal/platform/request"
	"github.com/taibuivan/pokedex/internal/platform/respond"
	"github.com/taibuivan/pokedex/internal/platform/validate"
	"github.com/taibuivan/pokedex/pkg/pagination"
	"github.com/taibuivan/pokedex/pkg/query"
	"github.com/taibuivan/pokedex/pkg/slice"
	"github.com/taibuivan/pokedex/pkg/textcase"
)

const (
	FieldFavourites = "favourites"
	FieldFilters    = "filters"
	FieldTypes      = "types"
	FieldStats      = "stats"

	// maxNameLength bounds path and query names before they reach the upstream.
	maxNameLength = 64
)

// # Handler Implementation

// Handler implements the HTTP layer over a [Pipeline].
type Handler struct {
	pipeline *Pipeline
}

// NewHandler constructs a new pokemon [Handler].
func NewHandler(pipeline *Pipeline) *Handler {
	return &Handler{pipeline: pipeline}
}

// RegisterRoutes attaches catalog, favourites, and filter endpoints to the API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	// Catalog
	api.Get("/pokemon", handler.ListVisible)
	api.Get("/pokemon/search", handler.Search)
	api.Get("/pokemon/{name}", handler.GetDetail)
	api.Get("/types", handler.ListTypes)

	// Favourites
	api.Route("/favourites", func(favourites chi.Router) {
		favourites.Get("/", handler.ListFavourites)
		favourites.Put("/{name}", handler.AddFavourite)
		favourites.Delete("/{name}", handler.RemoveFavourite)
		favourites.Post("/{name}/toggle", handler.ToggleFavourite)
	})

	// Filters
	api.Route("/filters", func(filters chi.Router) {
		filters.Get("/", handler.GetFilters)
		filters.Delete("/", handler.ClearFilters)
		filters.Put("/{field}", handler.SetFilter)
		filters.Delete("/{field}", handler.ClearFilter)
	})
}

// # Views

// stateResponse is the published state rendered for clients.
type stateResponse struct {
	Version    uint64   `json:"version"`
	Total      int      `json:"total"`
	Pokemon    []Card   `json:"pokemon"`
	Favourites []string `json:"favourites"`
	Filters    Filters  `json:"filters"`
}

func newStateResponse(snapshot Snapshot) (stateResponse, error) {
	cards, err := NewCards(snapshot.Pokemon, snapshot.Favourites)
	if err != nil {
		return stateResponse{}, err
	}

	return stateResponse{
		Version:    snapshot.Version,
		Total:      len(snapshot.Pokemon),
		Pokemon:    cards,
		Favourites: snapshot.Favourites,
		Filters:    snapshot.Filters,
	}, nil
}

// writeState renders snapshot as a 200 stateResponse.
func writeState(writer http.ResponseWriter, request *http.Request, snapshot Snapshot) {
	state, err := newStateResponse(snapshot)
	if err != nil {
		respond.Error(writer, request, toAppError(err))
		return
	}
	respond.OK(writer, state)
}

// statView is a base stat with its display label.
type statView struct {
	Name  Stat   `json:"name"`
	Label string `json:"label"`
	Value int    `json:"value"`
}

// detailResponse is a resolved entry decorated for display.
type detailResponse struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	DisplayName string     `json:"display_name"`
	Height      int        `json:"height"`
	Weight      int        `json:"weight"`
	Types       []string   `json:"types"`
	Stats       []statView `json:"stats"`
	Sprite      string     `json:"sprite,omitempty"`
	Favourite   bool       `json:"favourite"`
	Original    bool       `json:"original"`
}

// # Catalog

/*
GET /api/v1/pokemon.

Description: Returns the published visible subset as cards, in id order.

Request:
  - page: int (1 to pagination.MaxPage)
  - limit: int (absent or 0 returns every card)

Response:
  - 200: []Card: Paginated cards
  - 400: VALIDATION_ERROR: Page out of range
  - 503: FETCH_FAILURE/NOT_LOADED: Catalog unavailable
*/
func (handler *Handler) ListVisible(writer http.ResponseWriter, request *http.Request) {
	snapshot, err := handler.pipeline.Snapshot()
	if err != nil {
		respond.Error(writer, request, toAppError(err))
		return
	}

	cards, err := NewCards(snapshot.Pokemon, snapshot.Favourites)
	if err != nil {
		respond.Error(writer, request, toAppError(err))
		return
	}

	page, meta, err := paginate(request, cards)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, page, meta)
}

/*
GET /api/v1/pokemon/search.

Description: Runs an ad-hoc filter pass over the base dataset without changing
the published state.

Request:
  - name: string (Substring, case-sensitive)
  - type: string (Comma-separated, entries must carry every type)
  - favourite: bool

Response:
  - 200: []Card: Matching cards
  - 400: VALIDATION_ERROR: Malformed query
  - 502: LOOKUP_FAILURE: Type lookup failed
*/
func (handler *Handler) Search(writer http.ResponseWriter, request *http.Request) {
	filters, err := filtersFromQuery(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.pipeline.Search(request.Context(), filters)
	if err != nil {
		respond.Error(writer, request, toAppError(err))
		return
	}

	cards, err := NewCards(result.Pokemon, result.Favourites)
	if err != nil {
		respond.Error(writer, request, toAppError(err))
		return
	}

	page, meta, err := paginate(request, cards)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, page, meta)
}

// filtersFromQuery builds [Filters] from the search query string.
func filtersFromQuery(request *http.Request) (Filters, error) {
	var filters Filters
	v := &validate.Validator{}

	if name, ok := requestutil.Query(request, string(FieldName)); ok {
		v.MaxLen(string(FieldName), name, maxNameLength)
		filters.Name = &name
	}

	if raw, ok := requestutil.Query(request, string(FieldType)); ok {
		filters.Types = query.StringSlice(raw)
		v.Custom(string(FieldType), len(filters.Types) > len(Types), "Too many types")
	}

	if raw, ok := requestutil.Query(request, string(FieldFavourite)); ok {
		favourite, err := strconv.ParseBool(raw)
		v.Custom(string(FieldFavourite), err != nil, "Must be true or false")
		if err == nil {
			filters.Favourite = &favourite
		}
	}

	if err := v.Err(); err != nil {
		return Filters{}, err
	}
	return filters, nil
}

/*
GET /api/v1/pokemon/{name}.

Description: Resolves the full record of a single entry.

Response:
  - 200: detailResponse: Types, stats, and sprite
  - 404: NOT_FOUND: Unknown name
  - 502: LOOKUP_FAILURE: Upstream failure
*/
func (handler *Handler) GetDetail(writer http.ResponseWriter, request *http.Request) {
	name := requestutil.Param(request, "name")

	v := &validate.Validator{}
	v.Required("name", name).MaxLen("name", name, maxNameLength)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.pipeline.Resolve(request.Context(), name)
	if errors.Is(err, ErrUnknownPokemon) {
		respond.Error(writer, request, apperr.NotFound("Pokemon"))
		return
	}
	if err != nil {
		respond.Error(writer, request, toAppError(&LookupFailureError{Name: name, Cause: err}))
		return
	}

	respond.OK(writer, detailResponse{
		ID:          detail.ID,
		Name:        detail.Name,
		DisplayName: textcase.Capitalize(detail.Name),
		Height:      detail.Height,
		Weight:      detail.Weight,
		Types:       detail.Types,
		Stats: slice.Map(detail.Stats, func(s BaseStat) statView {
			return statView{Name: s.Name, Label: textcase.Words(string(s.Name)), Value: s.Value}
		}),
		Sprite:    detail.Sprite,
		Favourite: handler.pipeline.IsFavourite(detail.Name),
		Original:  detail.ID < originalCutoff,
	})
}

/*
GET /api/v1/types.

Description: Lists the type tags available to the type filter and the stat names.
*/
func (handler *Handler) ListTypes(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]any{
		FieldTypes: Types,
		FieldStats: slice.Map(Stats, func(s Stat) statView {
			return statView{Name: s, Label: textcase.Words(string(s))}
		}),
	})
}

// # Favourites

/*
GET /api/v1/favourites.

Description: Returns the current favourites in insertion order.
*/
func (handler *Handler) ListFavourites(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]any{FieldFavourites: handler.pipeline.Favourites()})
}

/*
PUT /api/v1/favourites/{name}.

Description: Marks an entry as favourite. Adding an existing favourite is a no-op.

Response:
  - 200: stateResponse: Published state after the change
  - 502: LOOKUP_FAILURE: Recompute failed, previous subset kept
*/
func (handler *Handler) AddFavourite(writer http.ResponseWriter, request *http.Request) {
	handler.mutateFavourite(writer, request, handler.pipeline.AddFavourite)
}

/*
DELETE /api/v1/favourites/{name}.

Description: Unmarks an entry. Removing an absent name is a no-op.
*/
func (handler *Handler) RemoveFavourite(writer http.ResponseWriter, request *http.Request) {
	handler.mutateFavourite(writer, request, handler.pipeline.RemoveFavourite)
}

/*
POST /api/v1/favourites/{name}/toggle.

Description: Flips the favourite state of an entry.
*/
func (handler *Handler) ToggleFavourite(writer http.ResponseWriter, request *http.Request) {
	handler.mutateFavourite(writer, request, handler.pipeline.ToggleFavourite)
}

func (handler *Handler) mutateFavourite(writer http.ResponseWriter, request *http.Request, apply func(context.Context, string) (Snapshot, error)) {
	name := requestutil.Param(request, "name")

	v := &validate.Validator{}
	v.Required("name", name).MaxLen("name", name, maxNameLength)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	snapshot, err := apply(request.Context(), name)
	if err != nil {
		respond.Error(writer, request, toAppError(err))
		return
	}

	writeState(writer, request, snapshot)
}

// # Filters

// setFilterRequest carries a single criterion value; null clears it.
type setFilterRequest struct {
	Value json.RawMessage `json:"value"`
}

/*
GET /api/v1/filters.

Description: Returns the current filter criteria. Unset keys are omitted.
*/
func (handler *Handler) GetFilters(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]any{FieldFilters: handler.pipeline.Filters()})
}

/*
PUT /api/v1/filters/{field}.

Description: Sets one criterion and recomputes the visible subset.

Request:
  - field: string (favourite, name, type)
  - body: {"value": bool | string | []string | null}

Response:
  - 200: stateResponse: Published state after the change
  - 400: VALIDATION_ERROR: Unknown field or wrong value shape
  - 502: LOOKUP_FAILURE/MALFORMED_REFERENCE: Recompute failed, previous subset kept
*/
func (handler *Handler) SetFilter(writer http.ResponseWriter, request *http.Request) {
	field, err := fieldFromPath(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input setFilterRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	value, err := decodeCriterion(field, input.Value)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	snapshot, err := handler.pipeline.SetFilter(request.Context(), field, value)
	if err != nil {
		respond.Error(writer, request, toAppError(err))
		return
	}

	writeState(writer, request, snapshot)
}

/*
DELETE /api/v1/filters/{field}.

Description: Clears one criterion and recomputes the visible subset.
*/
func (handler *Handler) ClearFilter(writer http.ResponseWriter, request *http.Request) {
	field, err := fieldFromPath(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	snapshot, err := handler.pipeline.ClearFilter(request.Context(), field)
	if err != nil {
		respond.Error(writer, request, toAppError(err))
		return
	}

	writeState(writer, request, snapshot)
}

/*
DELETE /api/v1/filters.

Description: Clears every criterion, restoring the full sorted dataset.
*/
func (handler *Handler) ClearFilters(writer http.ResponseWriter, request *http.Request) {
	snapshot, err := handler.pipeline.ClearFilters(request.Context())
	if err != nil {
		respond.Error(writer, request, toAppError(err))
		return
	}

	writeState(writer, request, snapshot)
}

func fieldFromPath(request *http.Request) (Field, error) {
	raw := requestutil.Param(request, "field")

	v := &validate.Validator{}
	v.OneOf("field", raw, slice.Map(Fields, func(f Field) string { return string(f) })...)
	if err := v.Err(); err != nil {
		return "", err
	}
	return ParseField(raw)
}

// decodeCriterion converts a raw JSON value into the Go shape expected by field.
// An absent or null value decodes to nil, which clears the criterion.
func decodeCriterion(field Field, raw json.RawMessage) (any, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var (
		value any
		err   error
	)
	switch field {
	case FieldFavourite:
		var b bool
		err = json.Unmarshal(raw, &b)
		value = b
	case FieldName:
		var s string
		err = json.Unmarshal(raw, &s)
		value = s
	case FieldType:
		var types []string
		err = json.Unmarshal(raw, &types)
		value = types
	}

	if err != nil {
		return nil, validate.RequiredError("value", shapeMessage(field))
	}
	return value, nil
}

func shapeMessage(field Field) string {
	switch field {
	case FieldFavourite:
		return "Must be a boolean or null"
	case FieldName:
		return "Must be a string or null"
	default:
		return "Must be an array of strings or null"
	}
}

// # Helpers

// paginate slices items by the page and limit query parameters.
// An absent or zero limit returns every item as a single page.
func paginate[T any](request *http.Request, items []T) ([]T, pagination.Meta, error) {
	total := len(items)

	if raw, ok := requestutil.Query(request, "limit"); !ok || raw == "0" {
		return items, pagination.NewMeta(pagination.DefaultPage, total, total), nil
	}

	params := pagination.FromRequest(request)

	v := &validate.Validator{}
	v.Range("page", params.Page, pagination.DefaultPage, pagination.MaxPage)
	if err := v.Err(); err != nil {
		return nil, pagination.Meta{}, err
	}

	start := min(params.Offset(), total)
	end := start + min(params.Limit, total-start)

	return items[start:end], pagination.NewMeta(params.Page, params.Limit, total), nil
}

// toAppError maps pipeline errors onto the API error envelope.
func toAppError(err error) error {
	var (
		fetchErr     *FetchFailureError
		lookupErr    *LookupFailureError
		malformedErr *MalformedReferenceError
	)

	switch {
	case apperr.IsAppError(err):
		return err
	case errors.Is(err, ErrInvalidCriterion):
		return apperr.ValidationError("Invalid filter criterion", apperr.FieldError{Field: "value", Message: err.Error()})
	case errors.Is(err, ErrNotLoaded):
		return apperr.ServiceUnavailable("NOT_LOADED", "Catalog is still loading", err)
	case errors.As(err, &fetchErr):
		return apperr.ServiceUnavailable("FETCH_FAILURE", "Catalog could not be fetched", err)
	case errors.As(err, &malformedErr):
		return apperr.BadGateway("MALFORMED_REFERENCE", "Catalog returned a malformed reference", err)
	case errors.As(err, &lookupErr):
		return apperr.BadGateway("LOOKUP_FAILURE", "Pokemon details could not be fetched", err)
	default:
		return apperr.Internal(err)
	}
}
