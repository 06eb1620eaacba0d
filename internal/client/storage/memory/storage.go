// Package memory implements storage.AuthStorage in process memory.
// Used for one-shot non-interactive runs (session dies with the process) and in tests.
package memory

import (
	"context"
	"sync"

	"github.com/iudanet/marmitaria/internal/client/storage"
)

// Storage is a mutex-guarded map
type Storage struct {
	values map[string]string
	closed bool
	mu     sync.RWMutex
}

var _ storage.AuthStorage = (*Storage)(nil)

// New creates an empty in-memory storage
func New() *Storage {
	return &Storage{values: make(map[string]string)}
}

func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", storage.ErrStorageClosed
	}
	value, ok := s.values[key]
	if !ok {
		return "", storage.ErrAuthNotFound
	}
	return value, nil
}

func (s *Storage) Put(ctx context.Context, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return storage.ErrStorageClosed
	}
	for key, value := range values {
		s.values[key] = value
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return storage.ErrStorageClosed
	}
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}

func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// Len returns the number of stored keys
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
