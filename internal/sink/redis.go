// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// redis.go — Redis sink: stores the latest marshaled snapshot under a
// fixed key with a TTL and publishes it on a channel so remote dashboards
// can subscribe to live updates.

package sink

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures a Redis sink.
type RedisOptions struct {
	Client  *redis.Client
	Key     string        // key holding the latest snapshot
	Channel string        // optional pub/sub channel; empty disables publish
	TTL     time.Duration // expiry on Key; zero keeps it forever
}

// Redis is the Redis-backed snapshot sink.
type Redis struct {
	client  *redis.Client
	key     string
	channel string
	ttl     time.Duration
}

// NewRedis creates a Redis sink from opts.
func NewRedis(opts RedisOptions) *Redis {
	return &Redis{
		client:  opts.Client,
		key:     opts.Key,
		channel: opts.Channel,
		ttl:     opts.TTL,
	}
}

// Write stores payload under the configured key and publishes it on the
// configured channel.
func (s *Redis) Write(ctx context.Context, _ time.Time, payload []byte) error {
	if err := s.client.Set(ctx, s.key, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("sink: redis set: %w", err)
	}
	if s.channel != "" {
		if err := s.client.Publish(ctx, s.channel, payload).Err(); err != nil {
			return fmt.Errorf("sink: redis publish: %w", err)
		}
	}
	return nil
}

// Close closes the underlying Redis client.
func (s *Redis) Close() error {
	return s.client.Close()
}
