// internal/videoid/videoid.go

// Package videoid recognizes platform video identifiers embedded in
// arbitrary text. Extraction is pure pattern matching with no network
// access, used both as a lookup key precursor and as the last-resort
// fallback when full resolution fails.
package videoid

import "regexp"

// idPattern matches Nico Nico style identifiers: a two-letter prefix
// (sm/so/nm) followed by digits.
var idPattern = regexp.MustCompile(`(?:sm|so|nm)\d+`)

// Extract returns all non-overlapping identifiers found in text, in
// left-to-right order, preserving duplicates. Returns nil when nothing
// matches.
func Extract(text string) []string {
	return idPattern.FindAllString(text, -1)
}

// First returns the first identifier found in text, or "" when nothing
// matches.
func First(text string) string {
	return idPattern.FindString(text)
}
