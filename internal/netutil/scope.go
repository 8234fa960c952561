// Package netutil contains the scope predicate that decides which
// hostnames belong to the operator-supplied root domains.
package netutil

import (
	"fmt"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Scope represents the canonical hostname boundaries for a run. It is
// immutable once built; matching is case-sensitive and exact on label
// boundaries.
type Scope struct {
	roots []string
}

// NewScope builds a Scope from the provided root domains. The set must be
// validated with ValidateRoots before the run starts; NewScope itself only
// drops empty entries.
func NewScope(roots []string) *Scope {
	cleaned := make([]string, 0, len(roots))
	for _, r := range roots {
		r = strings.TrimSpace(r)
		if r != "" {
			cleaned = append(cleaned, r)
		}
	}
	return &Scope{roots: cleaned}
}

// Allows reports whether the hostname falls inside the configured roots.
// Wildcard DNS entries (*.example.com) are never treated as found hosts.
// A hostname matches when it equals a root exactly or ends with "."+root;
// evilexample.com does not match the root example.com.
func (s *Scope) Allows(hostname string) bool {
	if s == nil || hostname == "" {
		return false
	}
	if strings.HasPrefix(hostname, "*.") {
		return false
	}
	for _, root := range s.roots {
		if hostname == root {
			return true
		}
		if strings.HasSuffix(hostname, "."+root) {
			return true
		}
	}
	return false
}

// Roots returns a copy of the configured root domains.
func (s *Scope) Roots() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.roots))
	copy(out, s.roots)
	return out
}

// ValidateRoots checks the operator-supplied root domain list. An empty set
// or a wildcard entry is a configuration error. The returned warnings flag
// roots that are legal but almost certainly not what the operator wanted:
// bare public suffixes (scope would cover half the internet) and uppercase
// entries (parsed hostnames are lowercase, so they would never match).
func ValidateRoots(roots []string) ([]string, error) {
	nonEmpty := 0
	var warnings []string
	for _, r := range roots {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		nonEmpty++
		if strings.Contains(r, "*") {
			return nil, fmt.Errorf("root domain %q contains a wildcard", r)
		}
		if r != strings.ToLower(r) {
			warnings = append(warnings, fmt.Sprintf("root domain %q contains uppercase and will never match a parsed hostname", r))
			continue
		}
		if suffix, _ := publicsuffix.PublicSuffix(r); suffix == r {
			warnings = append(warnings, fmt.Sprintf("root domain %q is a bare public suffix; scope will be extremely broad", r))
		}
	}
	if nonEmpty == 0 {
		return nil, fmt.Errorf("root domain list is empty")
	}
	return warnings, nil
}
