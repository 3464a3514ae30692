package origin

import (
	"slices"
	"strings"
)

// Set is an immutable collection of authorized web origins.
// Construct it with NewSet; the zero value matches nothing.
type Set struct {
	members map[string]struct{}
	sorted  []string
}

// NewSet builds a Set from the given origin lists. Values are trimmed of
// surrounding whitespace and a trailing slash, empty entries are dropped,
// and duplicates are removed.
func NewSet(lists ...[]string) *Set {
	members := make(map[string]struct{})
	for _, list := range lists {
		for _, o := range list {
			normalized := Normalize(o)
			if normalized == "" {
				continue
			}
			members[normalized] = struct{}{}
		}
	}

	sorted := make([]string, 0, len(members))
	for o := range members {
		sorted = append(sorted, o)
	}
	slices.Sort(sorted)

	return &Set{members: members, sorted: sorted}
}

// Normalize prepares an origin value for comparison: surrounding whitespace
// and a single trailing slash are removed. Browsers never send a trailing
// slash in the Origin header, but configured values often carry one.
func Normalize(o string) string {
	return strings.TrimSuffix(strings.TrimSpace(o), "/")
}

// Contains reports whether the origin is a member of the set.
// The value is normalized before comparison.
func (s *Set) Contains(o string) bool {
	if s == nil {
		return false
	}
	_, ok := s.members[Normalize(o)]
	return ok
}

// List returns the members in sorted order. The returned slice is shared;
// callers must not modify it.
func (s *Set) List() []string {
	if s == nil {
		return nil
	}
	return s.sorted
}

// Len returns the number of members.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.members)
}
