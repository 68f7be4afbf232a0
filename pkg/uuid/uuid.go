// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid generates correlation identifiers for requests and log lines.

It wraps the standard UUID library and prefers Version 7 values, which sort by
creation time so that request IDs in the log stream read in arrival order.
*/
package uuid

import "github.com/google/uuid"

// New returns a UUIDv7 string, falling back to a random UUIDv4 if the v7
// generator cannot read the clock or entropy source.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// IsValid reports whether s parses as a UUID of any version.
func IsValid(s string) bool {
	return uuid.Validate(s) == nil
}
