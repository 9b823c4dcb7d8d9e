package discovery

import (
	"path/filepath"
	"strings"

	"systest/internal/domain"
)

// Filter filters test cases by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters test cases by name pattern using wildcard matching.
// Supports patterns like "gpgga_*" or "*loop*"; a pattern without wildcards
// matches any name containing it.
func (f *Filter) FilterByName(cases []domain.TestCase, pattern string) []domain.TestCase {
	if pattern == "" {
		return cases
	}

	var filtered []domain.TestCase
	for _, tc := range cases {
		if matchName(pattern, tc.Name) {
			filtered = append(filtered, tc)
		}
	}
	return filtered
}

func matchName(pattern, name string) bool {
	// filepath.Match supports * and ? wildcards
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}

	// Fall back to checking that every literal part appears in order
	if strings.Contains(pattern, "*") && !strings.Contains(pattern, "?") {
		rest := name
		found := false
		for _, part := range strings.Split(pattern, "*") {
			if part == "" {
				continue
			}
			idx := strings.Index(rest, part)
			if idx < 0 {
				return false
			}
			rest = rest[idx+len(part):]
			found = true
		}
		return found
	}
	return false
}
