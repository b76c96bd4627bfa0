package history

import (
	"sync"
)

// DefaultLimit is how many entries a store keeps before dropping the
// oldest.
const DefaultLimit = 50

// Store keeps the most recent entries of one prompt kind (search
// patterns, replacement templates), newest first, without duplicates.
type Store struct {
	mu      sync.RWMutex
	entries []string
	limit   int
}

// NewStore creates a history store keeping up to limit entries.
func NewStore(limit int) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Store{limit: limit}
}

// Add records entry as the most recent. An entry already present moves to
// the front instead of duplicating. Empty entries are ignored.
func (s *Store) Add(entry string) {
	if entry == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.entries {
		if e == entry {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			break
		}
	}
	s.entries = append([]string{entry}, s.entries...)
	if len(s.entries) > s.limit {
		s.entries = s.entries[:s.limit]
	}
}

// All returns a copy of the entries, newest first.
func (s *Store) All() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]string, len(s.entries))
	copy(result, s.entries)
	return result
}

// At returns the entry at position i (0 = newest), or "" when out of
// range.
func (s *Store) At(i int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i < 0 || i >= len(s.entries) {
		return ""
	}
	return s.entries[i]
}

// Len returns how many entries are stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
