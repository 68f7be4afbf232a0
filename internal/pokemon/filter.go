// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pokemon

import (
	"fmt"
	"slices"

	"github.com/taibuivan/pokedex/pkg/pointer"
)

// # Filter Keys

// Field identifies a filter criterion.
type Field string

const (
	// FieldFavourite narrows by favourites membership (bool).
	FieldFavourite Field = "favourite"

	// FieldName narrows by case-sensitive name substring (string).
	FieldName Field = "name"

	// FieldType narrows to entries carrying every listed type ([]string).
	FieldType Field = "type"
)

// Fields lists every [Field] in evaluation order.
var Fields = []Field{FieldFavourite, FieldName, FieldType}

// ParseField converts a raw key into a [Field].
func ParseField(raw string) (Field, error) {
	for _, f := range Fields {
		if string(f) == raw {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: unknown field %q", ErrInvalidCriterion, raw)
}

// # Criteria

// Filters is the sparse set of active criteria.
//
// A nil Favourite or Name means the key is unset, which is distinct from an
// explicit false or "". Types is unset when empty.
type Filters struct {
	Favourite *bool    `json:"favourite,omitempty"`
	Name      *string  `json:"name,omitempty"`
	Types     []string `json:"type,omitempty"`
}

// IsEmpty reports whether no criterion is set.
func (f Filters) IsEmpty() bool {
	return f.Favourite == nil && f.Name == nil && len(f.Types) == 0
}

// Clone returns a deep copy of f.
func (f Filters) Clone() Filters {
	clone := Filters{Types: slices.Clone(f.Types)}
	if f.Favourite != nil {
		clone.Favourite = pointer.To(*f.Favourite)
	}
	if f.Name != nil {
		clone.Name = pointer.To(*f.Name)
	}
	return clone
}

// With returns a copy of f with field replaced by value.
//
// value must be bool for [FieldFavourite], string for [FieldName], and []string
// for [FieldType]. A nil value clears the field.
func (f Filters) With(field Field, value any) (Filters, error) {
	next := f.Clone()

	switch field {
	case FieldFavourite:
		switch v := value.(type) {
		case nil:
			next.Favourite = nil
		case bool:
			next.Favourite = pointer.To(v)
		default:
			return f, shapeError(field, "bool", value)
		}

	case FieldName:
		switch v := value.(type) {
		case nil:
			next.Name = nil
		case string:
			next.Name = pointer.To(v)
		default:
			return f, shapeError(field, "string", value)
		}

	case FieldType:
		switch v := value.(type) {
		case nil:
			next.Types = nil
		case []string:
			next.Types = slices.Clone(v)
		default:
			return f, shapeError(field, "[]string", value)
		}

	default:
		return f, fmt.Errorf("%w: unknown field %q", ErrInvalidCriterion, field)
	}

	return next, nil
}

func shapeError(field Field, want string, got any) error {
	return fmt.Errorf("%w: %s expects %s, got %T", ErrInvalidCriterion, field, want, got)
}
