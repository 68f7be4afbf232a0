// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pokemon

import "slices"

// Favourites is an insertion-ordered set of entry names.
//
// Adding a name that is already present is a no-op. The zero value is empty and
// ready to use. Favourites is not safe for concurrent use; [Pipeline] guards it.
type Favourites struct {
	names []string
}

// NewFavourites builds a set from names, dropping duplicates.
func NewFavourites(names ...string) Favourites {
	var f Favourites
	for _, n := range names {
		f.Add(n)
	}
	return f
}

// Add inserts name and reports whether the set changed.
func (f *Favourites) Add(name string) bool {
	if f.Contains(name) {
		return false
	}
	f.names = append(f.names, name)
	return true
}

// Remove deletes name and reports whether the set changed.
func (f *Favourites) Remove(name string) bool {
	idx := slices.Index(f.names, name)
	if idx < 0 {
		return false
	}
	f.names = slices.Delete(f.names, idx, idx+1)
	return true
}

// Contains reports whether name is a favourite.
func (f Favourites) Contains(name string) bool {
	return slices.Contains(f.names, name)
}

// Len returns the number of favourites.
func (f Favourites) Len() int {
	return len(f.names)
}

// Names returns a copy of the favourites in insertion order.
func (f Favourites) Names() []string {
	if f.names == nil {
		return []string{}
	}
	return slices.Clone(f.names)
}

func (f Favourites) clone() Favourites {
	return Favourites{names: slices.Clone(f.names)}
}

func (f Favourites) set() map[string]struct{} {
	set := make(map[string]struct{}, len(f.names))
	for _, n := range f.names {
		set[n] = struct{}{}
	}
	return set
}
