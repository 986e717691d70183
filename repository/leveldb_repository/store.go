package leveldb_repository

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mohammad-safakhou/fitcoach/models"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// Store keeps values in a local LevelDB directory. Writes are synced so a
// value is durable once Set returns.
type Store struct {
	db *leveldb.DB
}

// Open creates path if needed and opens the database there.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create leveldb dir: %w", err)
	}
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open leveldb %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	v, err := s.db.Get([]byte(key), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	return s.db.Put([]byte(key), value, &opt.WriteOptions{Sync: true})
}

func (s *Store) Delete(_ context.Context, key string) error {
	return s.db.Delete([]byte(key), &opt.WriteOptions{Sync: true})
}

func (s *Store) Close() error { return s.db.Close() }
