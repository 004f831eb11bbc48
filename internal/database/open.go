package database

import (
	"context"
	"fmt"

	"github.com/kmmndr/motion_analyzer/internal/config"
)

// New opens the repository selected by cfg.StorageBackend.
func New(ctx context.Context, cfg *config.Config) (Repository, error) {
	switch cfg.StorageBackend {
	case "memory":
		return NewMemoryRepository(), nil
	case "postgres":
		repo, err := NewPostgresRepository(ctx, cfg.DSN())
		if err != nil {
			return nil, err
		}
		return repo, nil
	case "mongo":
		repo, err := NewMongoRepository(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
