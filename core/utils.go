package core

import (
	"net/url"
	"strings"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// CacheKey builds a canonical cache key for a query: url.Values.Encode
// sorts by key, so equal filters always map to the same key.
func CacheKey(prefix string, v url.Values) string {
	if len(v) == 0 {
		return prefix
	}
	return prefix + "?" + v.Encode()
}
