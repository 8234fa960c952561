// Package urlutil provides small helpers for URL path inspection.
package urlutil

import (
	"path"
	"strings"
)

// PathExtension returns the lowercased extension (leading dot included) of
// the final path segment, or "" when the segment has none. Query strings and
// fragments must already be stripped; pass url.URL.Path.
func PathExtension(urlPath string) string {
	base := path.Base(urlPath)
	if base == "" || base == "/" || base == "." {
		return ""
	}
	idx := strings.LastIndexByte(base, '.')
	if idx <= 0 || idx == len(base)-1 {
		return ""
	}
	return strings.ToLower(base[idx:])
}

// ParseExtensions normalizes a raw extension list into a lookup set.
// Entries are lowercased and get a leading dot when missing; empty entries
// are dropped. An empty result means "scan everything".
func ParseExtensions(raw []string) map[string]struct{} {
	set := make(map[string]struct{}, len(raw))
	for _, e := range raw {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		set[e] = struct{}{}
	}
	return set
}
