// Package redisbus fans memo evictions out to every process sharing a Redis channel.
package redisbus

import (
	"context"
	"sync"

	"github.com/go-redis/redis/v8"
)

// DefaultChannel is the channel used when none is given.
const DefaultChannel = "cachegen:evict"

// Bus publishes evicted keys and delivers the keys published by others.
type Bus struct {
	client  *redis.Client
	channel string
}

// New creates a Bus on channel; an empty channel selects DefaultChannel.
func New(client *redis.Client, channel string) *Bus {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Bus{client: client, channel: channel}
}

// Broadcast implements memo.Broadcaster.
func (b *Bus) Broadcast(ctx context.Context, key string) error {
	return b.client.Publish(ctx, b.channel, key).Err()
}

// Listener delivers received keys until closed.
type Listener struct {
	pubsub *redis.PubSub
	done   chan struct{}
	once   sync.Once
	err    error
}

// Listen subscribes to the channel and returns once the subscription is confirmed.
// Every received key is passed to sink on a dedicated goroutine, typically (*memo.Store).Forget.
// The listener stops when ctx is done or Close is called.
func (b *Bus) Listen(ctx context.Context, sink func(key string)) (*Listener, error) {
	pubsub := b.client.Subscribe(ctx, b.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	l := &Listener{pubsub: pubsub, done: make(chan struct{})}
	msgs := pubsub.Channel()
	go func() {
		defer close(l.done)
		for {
			select {
			case <-ctx.Done():
				_ = l.close()
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				sink(msg.Payload)
			}
		}
	}()
	return l, nil
}

func (l *Listener) close() error {
	l.once.Do(func() {
		l.err = l.pubsub.Close()
	})
	return l.err
}

// Close ends the subscription and waits for the delivery goroutine to return.
func (l *Listener) Close() error {
	err := l.close()
	<-l.done
	return err
}

// Done is closed once delivery has stopped.
func (l *Listener) Done() <-chan struct{} {
	return l.done
}
