package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mohammad-safakhou/fitcoach/config"
	"github.com/mohammad-safakhou/fitcoach/models"
	"github.com/mohammad-safakhou/fitcoach/repository/inmemory"
	"github.com/mohammad-safakhou/fitcoach/repository/leveldb_repository"
	"github.com/mohammad-safakhou/fitcoach/repository/postgres_repository"
	"github.com/mohammad-safakhou/fitcoach/repository/redis_repository"
)

// Keys of the persisted entries. They match what earlier clients wrote so
// existing data keeps loading.
const (
	KeyDarkMode = "ai-fitness-dark-mode"
	KeyProfile  = "ai-fitness-form-data"
	KeyPlan     = "ai-fitness-generated-plan"
)

// ErrNotFound is returned by Get for keys that were never set.
var ErrNotFound = models.ErrNotFound

// Store is a string-keyed byte store. Values are opaque to the store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type RepoType string

const (
	RepoTypeLevelDB  RepoType = "leveldb"
	RepoTypeRedis    RepoType = "redis"
	RepoTypePostgres RepoType = "postgres"
	RepoTypeMemory   RepoType = "memory"
)

// NewStore opens the backend selected by cfg.Type.
func NewStore(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch RepoType(cfg.Type) {
	case RepoTypeLevelDB:
		return leveldb_repository.Open(cfg.LevelDB.Path)
	case RepoTypeRedis:
		r := cfg.Redis
		c, err := redis_repository.Conn(ctx, r.Host, r.Port, r.Password, r.DB, r.Timeout, logger)
		if err != nil {
			return nil, err
		}
		return redis_repository.NewRedisStore(c, r.KeyPrefix), nil
	case RepoTypePostgres:
		dsn := cfg.Postgres.DSN()
		if err := postgres_repository.Migrate("", dsn, "up", 0); err != nil {
			return nil, err
		}
		return postgres_repository.Open(ctx, dsn)
	case RepoTypeMemory:
		return inmemory.NewInMemoryStore(), nil
	}
	return nil, fmt.Errorf("invalid repository type: %s", cfg.Type)
}
