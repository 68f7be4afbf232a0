// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package textcase formats catalog identifiers for display.
//
// # Usage
//
// Catalog names arrive lowercase and hyphenated (e.g., "mr-mime"). This package
// produces the human-facing label shown on cards without altering the identifier.
package textcase

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Capitalize upper-cases the first character of s and leaves the rest untouched.
//
// # Example
//
//	textcase.Capitalize("mr-mime") // "Mr-mime"
func Capitalize(s string) string {
	if s == "" {
		return s
	}

	// 1. Split off the leading rune
	_, size := utf8.DecodeRuneInString(s)

	// 2. Upper-case it with Unicode special-casing rules.
	// A Caser is stateful, so one is built per call.
	head := cases.Upper(language.Und).String(s[:size])

	return head + s[size:]
}

// Words turns a hyphenated identifier into space-separated capitalised words.
//
// # Example
//
//	textcase.Words("special-attack") // "Special Attack"
func Words(s string) string {
	parts := strings.Split(s, "-")
	for i, part := range parts {
		parts[i] = Capitalize(part)
	}
	return strings.Join(parts, " ")
}
