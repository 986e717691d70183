package repository

import "github.com/mohammad-safakhou/fitcoach/config"

func storageConfig(kind, path string) config.StorageConfig {
	return config.StorageConfig{Type: kind, LevelDB: config.LevelDBConfig{Path: path}}
}
