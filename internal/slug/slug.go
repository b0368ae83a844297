// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug derives URL-friendly category slugs from display names.
package slug

import (
	"regexp"
	"strings"
)

var (
	// whitespace matches runs of whitespace, each replaced by one hyphen.
	whitespace = regexp.MustCompile(`\s+`)
	// disallowed matches anything outside the slug alphabet.
	disallowed = regexp.MustCompile(`[^a-z0-9-]`)
)

// Derive builds the canonical slug for a category name: lowercase,
// whitespace runs become hyphens, everything outside [a-z0-9-] is
// stripped. The slug is fixed at creation time and never recomputed.
// Example: "Hello World!" → "hello-world"
//
// A name made only of punctuation derives to an empty string; callers
// decide whether that is acceptable.
func Derive(name string) string {
	s := strings.ToLower(name)
	s = whitespace.ReplaceAllString(s, "-")
	s = disallowed.ReplaceAllString(s, "")
	return s
}
