// Package util provides common utility functions used across the codebase.
package util

// Truncate returns s cut to at most max runes. No ellipsis marker is
// appended; panel columns stay fixed-width and a marker would eat into
// already-short names.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
