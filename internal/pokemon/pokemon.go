// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pokemon defines the catalog entities and the filter/sort pipeline that
derives the visible subset shown to the user.

It owns the once-fetched base dataset, the in-memory favourites set, and the sparse
filter criteria, and recomputes the visible subset whenever any of them change.

Core Responsibility:

  - Catalogue: References (name + url) and lazily resolved details (types, stats).
  - Discovery: Name substring search, favourite membership, and type intersection.
  - Ordering: Results are always sorted by the numeric id embedded in the url.

The remote catalog itself is an external collaborator reached through [Lister]
and [Resolver].
*/
package pokemon

import (
	"strconv"
	"strings"
)

// # Domain Enums

// Type is an elemental category tag carried by a Pokémon.
type Type string

const (
	TypeBug      Type = "bug"
	TypeDark     Type = "dark"
	TypeDragon   Type = "dragon"
	TypeElectric Type = "electric"
	TypeFairy    Type = "fairy"
	TypeFighting Type = "fighting"
	TypeFire     Type = "fire"
	TypeFlying   Type = "flying"
	TypeGhost    Type = "ghost"
	TypeGrass    Type = "grass"
	TypeGround   Type = "ground"
	TypeIce      Type = "ice"
	TypeNormal   Type = "normal"
	TypePoison   Type = "poison"
	TypePsychic  Type = "psychic"
	TypeRock     Type = "rock"
	TypeSteel    Type = "steel"
	TypeWater    Type = "water"
)

// Types lists every [Type] in alphabetical order.
var Types = []Type{
	TypeBug, TypeDark, TypeDragon, TypeElectric, TypeFairy, TypeFighting,
	TypeFire, TypeFlying, TypeGhost, TypeGrass, TypeGround, TypeIce,
	TypeNormal, TypePoison, TypePsychic, TypeRock, TypeSteel, TypeWater,
}

// IsValid reports whether t is a recognised [Type] value.
func (t Type) IsValid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// Stat names a base statistic.
type Stat string

const (
	StatHP             Stat = "hp"
	StatAttack         Stat = "attack"
	StatDefense        Stat = "defense"
	StatSpecialAttack  Stat = "special-attack"
	StatSpecialDefense Stat = "special-defense"
	StatSpeed          Stat = "speed"
)

// Stats lists every [Stat] in display order.
var Stats = []Stat{StatHP, StatAttack, StatDefense, StatSpecialAttack, StatSpecialDefense, StatSpeed}

// originalCutoff is the exclusive upper id bound of the "original" badge.
const originalCutoff = 150

// # Entities

// Reference is a lightweight identifier and locator for a catalog entry.
//
// The url encodes the numeric id as its second-to-last path segment,
// e.g. "https://pokeapi.co/api/v2/pokemon/4/".
type Reference struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ID extracts the numeric id from the reference's url.
func (r Reference) ID() (int, error) {
	return IDFromURL(r.URL)
}

// IsOriginal reports whether the reference belongs to the original badge range.
// A malformed url is never original.
func (r Reference) IsOriginal() bool {
	id, err := r.ID()
	if err != nil {
		return false
	}
	return id < originalCutoff
}

// Detail is the fully resolved record for a single entry.
type Detail struct {
	ID     int        `json:"id"`
	Name   string     `json:"name"`
	Height int        `json:"height"`
	Weight int        `json:"weight"`
	Types  []string   `json:"types"`
	Stats  []BaseStat `json:"stats"`
	Sprite string     `json:"sprite,omitempty"`
}

// BaseStat pairs a [Stat] with its base value.
type BaseStat struct {
	Name  Stat `json:"name"`
	Value int  `json:"value"`
}

// HasTypes reports whether the detail carries every tag in required.
func (d *Detail) HasTypes(required []string) bool {
	have := make(map[string]struct{}, len(d.Types))
	for _, t := range d.Types {
		have[t] = struct{}{}
	}
	for _, want := range required {
		if _, ok := have[want]; !ok {
			return false
		}
	}
	return true
}

// # Helpers

// IDFromURL parses the integer in the second-to-last "/"-delimited segment of url.
func IDFromURL(url string) (int, error) {
	parts := strings.Split(url, "/")
	if len(parts) < 2 {
		return 0, &MalformedReferenceError{URL: url}
	}

	id, err := strconv.Atoi(parts[len(parts)-2])
	if err != nil {
		return 0, &MalformedReferenceError{URL: url, Cause: err}
	}
	return id, nil
}
