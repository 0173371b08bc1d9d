// Package docstore persists resolved pairs in a keyed document store.
package docstore

import (
	"context"
	"fmt"

	"momentum/internal/app/port"
	"momentum/internal/config"

	"github.com/redis/go-redis/v9"
)

var (
	_ port.DocumentStore = (*FirestoreStore)(nil)
	_ port.DocumentStore = (*RedisStore)(nil)
	_ port.DocumentStore = (*MemoryStore)(nil)
)

// New opens the document store selected by cfg.DocumentStore.Driver.
func New(ctx context.Context, cfg *config.Config) (port.DocumentStore, error) {
	switch cfg.DocumentStore.Driver {
	case config.DriverFirestore:
		return NewFirestoreStore(ctx, cfg.GCP.ProjectID, cfg.GCP.FirestoreDatabase)
	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.DocumentStore.RedisAddr, DB: cfg.DocumentStore.RedisDB})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("ping redis at %s: %w", cfg.DocumentStore.RedisAddr, err)
		}
		return NewRedisStore(client), nil
	case config.DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown document store driver %q", cfg.DocumentStore.Driver)
	}
}
