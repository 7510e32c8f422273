package session

import (
	"context"
	"time"
)

// Store is implemented by RedisStore and MemoryStore.
type Store interface {
	Save(ctx context.Context, tokenHash string, data Data, ttl time.Duration) error
	Lookup(ctx context.Context, tokenHash string) (Data, error)
	Revoke(ctx context.Context, tokenHash string) error
	Ping(ctx context.Context) error
	Close() error
}

var (
	_ Store = (*RedisStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
