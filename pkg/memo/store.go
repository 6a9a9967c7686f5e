package memo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/viccon/sturdyc"
)

// Store is a Cache backed by an in-process sturdyc client.
type Store struct {
	client      *sturdyc.Client[any]
	ttl         time.Duration
	serializer  KeySerializer
	broadcaster Broadcaster
	onError     func(error)
	now         func() time.Time
}

var _ Cache = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithKeySerializer replaces the default key serializer.
func WithKeySerializer(s KeySerializer) Option {
	return func(st *Store) {
		if s != nil {
			st.serializer = s
		}
	}
}

// WithBroadcaster publishes every Remove through b.
func WithBroadcaster(b Broadcaster) Option {
	return func(st *Store) {
		st.broadcaster = b
	}
}

// WithErrorHandler receives broadcast failures, which Remove cannot return.
func WithErrorHandler(fn func(error)) Option {
	return func(st *Store) {
		st.onError = fn
	}
}

// WithClock overrides the clock used for per-entry expiry.
func WithClock(now func() time.Time) Option {
	return func(st *Store) {
		if now != nil {
			st.now = now
		}
	}
}

// New creates a Store. The configuration is validated first.
func New(cfg Config, opts ...Option) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Store{
		client: sturdyc.New[any](
			cfg.Capacity,
			cfg.NumShards,
			cfg.TTL,
			cfg.EvictionPercentage,
			cfg.sturdycOptions()...,
		),
		ttl:        cfg.TTL,
		serializer: NewDefaultKeySerializer(),
		onError:    func(error) {},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewDefault creates a Store with DefaultConfig. Generated self-hosted holders call it.
func NewDefault() Cache {
	s, err := New(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return s
}

// record is what the sturdyc client holds; expires implements Entry.TTL.
type record struct {
	value   any
	expires time.Time
}

// PanicError carries a panic raised by a populator so that concurrent waiters are released.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("memo: populator panicked: %v", e.Value)
}

// GetOrCreate implements Cache. A panic in create is re-raised in the caller.
func (s *Store) GetOrCreate(key any, create func(*Entry) any) any {
	v, err := s.GetOrCreateContext(context.Background(), key, func(_ context.Context, e *Entry) (any, error) {
		return create(e), nil
	})
	if err != nil {
		var pe *PanicError
		if errors.As(err, &pe) {
			panic(pe.Value)
		}
		panic(err)
	}
	return v
}

// GetOrCreateContext implements Cache.
func (s *Store) GetOrCreateContext(
	ctx context.Context,
	key any,
	create func(context.Context, *Entry) (any, error),
) (any, error) {
	k := s.serializer.Serialize(key)
	// The client is typed any and rejects a nil result before looking at the error,
	// so failures still hand back an empty record.
	fetch := func(ctx context.Context) (rec any, err error) {
		defer func() {
			if r := recover(); r != nil {
				rec, err = record{}, &PanicError{Value: r}
			}
		}()

		entry := &Entry{Key: key, TTL: s.ttl}
		value, err := create(ctx, entry)
		if err != nil {
			return record{}, err
		}
		return record{value: value, expires: s.now().Add(s.entryTTL(entry.TTL))}, nil
	}

	v, err := s.client.GetOrFetch(ctx, k, fetch)
	if err != nil {
		return nil, err
	}
	rec, _ := v.(record)
	if s.now().Before(rec.expires) {
		return rec.value, nil
	}

	// The entry outlived its own TTL but not the client's; populate once more.
	s.client.Delete(k)
	v, err = s.client.GetOrFetch(ctx, k, fetch)
	if err != nil {
		return nil, err
	}
	rec, _ = v.(record)
	return rec.value, nil
}

// entryTTL clamps an enricher's TTL to (0, configured TTL]. The client evicts every
// record after the configured TTL, so a longer one could never be honored.
func (s *Store) entryTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 || ttl > s.ttl {
		return s.ttl
	}
	return ttl
}

// Remove implements Cache and broadcasts the eviction when a Broadcaster is set.
func (s *Store) Remove(key any) {
	k := s.serializer.Serialize(key)
	s.client.Delete(k)
	if s.broadcaster == nil {
		return
	}
	if err := s.broadcaster.Broadcast(context.Background(), k); err != nil {
		s.onError(err)
	}
}

// Forget deletes a serialized key locally without broadcasting. It is the sink for
// evictions received from other instances.
func (s *Store) Forget(key string) {
	s.client.Delete(key)
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	return len(s.client.ScanKeys())
}
