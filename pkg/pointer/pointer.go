// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer provides utilities for working with pointers in Go.

Optional filter criteria are modelled as pointers, where nil means unset.
[To] builds them from literals without a temporary variable.
*/
package pointer

// To returns a pointer to the provided value.
// It is useful when you need to pass a primitive value to a function or struct field
// that expects a pointer (e.g. pointer.To("saur")).
func To[T any](v T) *T {
	return &v
}
