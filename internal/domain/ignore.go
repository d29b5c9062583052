package domain

import (
	"sort"
	"strings"
)

// DefaultIgnoreDirs are the directory names skipped when no ignore list is configured.
var DefaultIgnoreDirs = []string{"node_modules", ".git", "__pycache__"}

// IgnoreSet is an immutable set of directory names excluded from traversal.
// The zero value ignores nothing.
type IgnoreSet struct {
	names map[string]struct{}
}

// NewIgnoreSet builds an IgnoreSet from directory names.
// Blank entries are dropped and surrounding whitespace is trimmed.
func NewIgnoreSet(names ...string) IgnoreSet {
	set := IgnoreSet{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		set.names[n] = struct{}{}
	}
	return set
}

// Contains reports whether a directory with the given base name is ignored.
func (s IgnoreSet) Contains(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Names returns the ignored names in sorted order.
func (s IgnoreSet) Names() []string {
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// ParseIgnoreList splits a comma-separated list of directory names.
func ParseIgnoreList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
