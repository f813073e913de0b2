// Package readset loads and holds the read-name sets that drive bucket
// membership. One set is loaded from one text source and backs exactly one
// output bucket.
package readset

import "sort"

// Set is a mutable collection of record identifiers. It is built once at
// load time and only shrinks afterwards: routing removes a name on first
// match so later records with the same name fall through to lower-priority
// buckets.
//
// Set is not safe for concurrent use. Loading and routing never overlap, so
// no locking is required.
type Set struct {
	m map[string]struct{}
}

// NewSet creates a Set holding the given identifiers.
func NewSet(ids ...string) *Set {
	s := &Set{m: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.m[id] = struct{}{}
	}
	return s
}

// Add inserts id into the set.
func (s *Set) Add(id string) {
	s.m[id] = struct{}{}
}

// Contains reports whether id is currently in the set.
func (s *Set) Contains(id string) bool {
	_, ok := s.m[id]
	return ok
}

// Remove deletes id from the set and reports whether it was present.
func (s *Set) Remove(id string) bool {
	if _, ok := s.m[id]; ok {
		delete(s.m, id)
		return true
	}
	return false
}

// Len returns the number of identifiers currently in the set.
func (s *Set) Len() int {
	return len(s.m)
}

// Names returns the remaining identifiers in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.m))
	for id := range s.m {
		names = append(names, id)
	}
	sort.Strings(names)
	return names
}
