package memo

import (
	"context"
	"time"
)

// Key is the default cache key of a generated wrapper: the implementation method, its class
// and the key-contributing arguments in declaration order.
type Key struct {
	Method string
	Class  string
	Args   []any
}

// Entry describes the entry being populated. Enrichers may adjust it before the value is stored.
type Entry struct {
	// Key is the key the entry is stored under.
	Key any
	// TTL is how long the value stays valid. Zero keeps the cache default, and a Store
	// caps longer values at its configured TTL.
	TTL time.Duration
}

// Cache is an atomic get-or-populate store.
type Cache interface {
	// GetOrCreate returns the value stored under key, calling create to populate it on a miss.
	GetOrCreate(key any, create func(*Entry) any) any
	// GetOrCreateContext is GetOrCreate for populators that can fail. Errors are returned to
	// every waiting caller and nothing is stored.
	GetOrCreateContext(ctx context.Context, key any, create func(context.Context, *Entry) (any, error)) (any, error)
	// Remove deletes the value stored under key.
	Remove(key any)
}

// Broadcaster propagates evictions to other cache instances.
type Broadcaster interface {
	Broadcast(ctx context.Context, key string) error
}
