// Package memory provides an in-process implementation of storage.BlobStore.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/bairooha/donordesk/internal/storage"
)

var _ storage.BlobStore = (*Store)(nil)

// Store keeps blobs in a map. Contents are lost when the process exits.
type Store struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// New creates an empty Store.
func New() *Store {
	return &Store{blobs: make(map[string][]byte)}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blob, ok := s.blobs[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, key)
	}
	out := make([]byte, len(blob))
	copy(out, blob)
	return out, nil
}

func (s *Store) Put(ctx context.Context, key string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(blob))
	copy(stored, blob)
	s.blobs[key] = stored
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.blobs, key)
	return nil
}

func (s *Store) Close() error {
	return nil
}
