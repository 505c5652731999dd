// Package marks holds the set of files marked for a batch operation.
package marks

import (
	"sort"
	"sync"
)

// Set is a concurrency-safe set of absolute file paths. Membership does not
// depend on the current location, and paths are not re-checked against the
// filesystem.
type Set struct {
	mu    sync.RWMutex
	paths map[string]struct{}
	gen   uint64
}

// New creates an empty Set.
func New() *Set {
	return &Set{paths: make(map[string]struct{})}
}

// Toggle adds path if absent and removes it otherwise. It reports whether
// path is marked afterwards.
func (s *Set) Toggle(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	if _, ok := s.paths[path]; ok {
		delete(s.paths, path)
		return false
	}
	s.paths[path] = struct{}{}
	return true
}

// Contains reports whether path is marked.
func (s *Set) Contains(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.paths[path]
	return ok
}

// Paths returns the marked paths in sorted order.
func (s *Set) Paths() []string {
	paths, _ := s.Snapshot()
	return paths
}

// Snapshot returns the sorted marked paths together with the generation they
// belong to.
func (s *Set) Snapshot() ([]string, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.paths))
	for p := range s.paths {
		out = append(out, p)
	}
	sort.Strings(out)
	return out, s.gen
}

// Len returns the number of marked paths.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.paths)
}

// Generation increments on every change to the set.
func (s *Set) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

// Clear unmarks everything.
func (s *Set) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.paths) == 0 {
		return
	}
	s.paths = make(map[string]struct{})
	s.gen++
}
