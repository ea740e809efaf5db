package common

import "strings"

// Fold trims and lower-cases s for case-insensitive comparison.
func Fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// EqualsAny reports whether s equals any of candidates, ignoring case and
// surrounding space. Empty strings never match.
func EqualsAny(s string, candidates ...string) bool {
	s = Fold(s)
	if s == "" {
		return false
	}
	for _, c := range candidates {
		if Fold(c) == s {
			return true
		}
	}
	return false
}
