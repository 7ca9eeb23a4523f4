// Package memory implements an in-memory medium for tests and ephemeral runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"districtportal/internal/medium"
)

var _ medium.Medium = (*Store)(nil)

// Store implements medium.Medium backed by process memory.
type Store struct {
	mu    sync.RWMutex
	items map[string]string
}

// New returns an empty in-memory medium.
func New() *Store { return &Store{items: make(map[string]string)} }

// Driver returns the medium driver identifier.
func (s *Store) Driver() medium.Driver { return medium.DriverMemory }

// GetItem returns the value under key.
func (s *Store) GetItem(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok, nil
}

// SetItem replaces the value under key.
func (s *Store) SetItem(_ context.Context, key, value string) error {
	if key == "" {
		return medium.ErrInvalidKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

// Keys returns the stored keys in ascending order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.items))
	for k := range s.items {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
