package health

import (
	"sync"
)

// store holds the most recent result per probe name.
// One mutex serializes writes so near-simultaneous completions for the same
// name commit whole results in completion order, and readers never observe
// a partially written result.
type store struct {
	mu      sync.RWMutex
	results map[string]Result
}

func newStore() *store {
	return &store{
		results: make(map[string]Result),
	}
}

// put replaces the stored result for its probe name.
func (s *store) put(r Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results[r.Name] = r
}

// get returns the latest result for the given probe name.
func (s *store) get(name string) (Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.results[name]
	return r, ok
}

// remove drops the stored result for the given probe name.
func (s *store) remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.results, name)
}

// snapshot returns a copy of all current results keyed by probe name.
func (s *store) snapshot() map[string]Result {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]Result, len(s.results))
	for name, r := range s.results {
		out[name] = r
	}
	return out
}

// size returns the number of cached results.
func (s *store) size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.results)
}
