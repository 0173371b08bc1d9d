package docstore

import (
	"context"
	"sort"
	"sync"

	"momentum/internal/domain/entity"
)

// MemoryStore keeps documents in process memory. It backs local runs and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]map[string]entity.ResolvedPair
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]map[string]entity.ResolvedPair)}
}

func (s *MemoryStore) Set(_ context.Context, collection, key string, pair entity.ResolvedPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.docs[collection]
	if !ok {
		c = make(map[string]entity.ResolvedPair)
		s.docs[collection] = c
	}
	c[key] = pair
	return nil
}

// Get returns the document stored at collection/key.
func (s *MemoryStore) Get(collection, key string) (entity.ResolvedPair, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.docs[collection][key]
	return p, ok
}

// Keys returns the document keys of collection in ascending order.
func (s *MemoryStore) Keys(collection string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.docs[collection]))
	for k := range s.docs[collection] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *MemoryStore) Close() error { return nil }
