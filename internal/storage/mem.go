package storage

import "sync"

// MemStore is the ephemeral store. It lives as long as the session that
// owns it and is never written to disk.
type MemStore struct {
	mu      sync.RWMutex
	records map[string]string
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{records: make(map[string]string)}
}

// Get returns the record stored under key.
func (s *MemStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.records[key]
	return value, ok, nil
}

// Set writes the record under key, overwriting any previous value.
func (s *MemStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = value
	return nil
}

// Remove deletes the record under key.
func (s *MemStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
	return nil
}
