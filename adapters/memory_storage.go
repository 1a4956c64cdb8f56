package adapters

import (
	"context"
	"sync"

	"github.com/ikunnect/agentdesk/domain/repositories"
)

// MemoryStorage is an in-memory DraftStorage used when no MongoDB is
// configured and in tests. Contents do not survive a restart.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string]string
}

var _ repositories.DraftStorage = (*MemoryStorage)(nil)

// NewMemoryStorage creates an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string]string)}
}

// Get implements repositories.DraftStorage.
func (s *MemoryStorage) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data[key], nil
}

// Set implements repositories.DraftStorage.
func (s *MemoryStorage) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// Remove implements repositories.DraftStorage.
func (s *MemoryStorage) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
