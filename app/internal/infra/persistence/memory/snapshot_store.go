package memory

import (
	"context"
	"sync"

	domcart "example.com/susan-shop/app/internal/domain/cart"
)

type SnapshotStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{values: make(map[string][]byte)}
}

func (s *SnapshotStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil, domcart.ErrSnapshotNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *SnapshotStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	s.values[key] = append([]byte(nil), value...)
	s.mu.Unlock()
	return nil
}

func (s *SnapshotStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
	return nil
}
