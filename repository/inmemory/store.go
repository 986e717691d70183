package inmemory

import (
	"context"
	"sync"

	"github.com/mohammad-safakhou/fitcoach/models"
)

type Store struct {
	values map[string][]byte
	mu     sync.RWMutex
}

func NewInMemoryStore() *Store {
	return &Store{values: make(map[string][]byte)}
}

func (store *Store) Get(_ context.Context, key string) ([]byte, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	v, ok := store.values[key]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (store *Store) Set(_ context.Context, key string, value []byte) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	store.values[key] = v
	return nil
}

func (store *Store) Delete(_ context.Context, key string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.values, key)
	return nil
}

func (store *Store) Close() error { return nil }
