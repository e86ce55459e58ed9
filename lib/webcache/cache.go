package webcache

import (
	"context"
	"time"
)

// Entry is a cached webpage. Only 200 responses are ever stored.
type Entry struct {
	Html       string
	StatusCode int
	FetchedAt  time.Time
}

// Cache is the storage backend consumed by Store. Implementations are
// not required to be safe for concurrent use, the store itself is
// single-threaded.
type Cache interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Put(ctx context.Context, key string, entry Entry) error
	Purge(ctx context.Context) error
}
