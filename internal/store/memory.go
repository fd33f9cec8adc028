package store

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory DocumentStore with the same semantics as
// the MySQL backend: whole documents, one document per write.  It
// backs the test suites and local development without a database.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

// Load returns a copy of the named document or ErrNotFound.
func (s *MemoryStore) Load(_ context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	body, ok := s.docs[name]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(body))
	copy(out, body)
	return out, nil
}

// Save stores a copy of the body under the given name.
func (s *MemoryStore) Save(_ context.Context, name string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(body))
	copy(cp, body)
	s.docs[name] = cp
	return nil
}
