// Package redis provides a ProgressStore backed by Redis, for deployments
// where several portal instances share one progress record.
package redis

import (
	"context"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/waymarkhq/waymark/pkg/journey"
)

// Store implements ports.ProgressStore using Redis. Each user's override
// map lives in one hash keyed by node id.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for per-user progress hashes. Zero means no
// expiration.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for progress hashes.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Redis store with its own client.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "waymark:progress:",
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(userID string) string {
	return s.prefix + userID
}

// Overrides returns the full override map for a user.
func (s *Store) Overrides(ctx context.Context, userID string) (journey.Overrides, error) {
	raw, err := s.client.HGetAll(ctx, s.key(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read progress from redis: %w", err)
	}

	overrides := make(journey.Overrides, len(raw))
	for nodeID, state := range raw {
		overrides[nodeID] = journey.State(state)
	}
	return overrides, nil
}

// Record persists one node state for a user.
func (s *Store) Record(ctx context.Context, userID, nodeID string, state journey.State) error {
	if !journey.ValidState(state) {
		return fmt.Errorf("state %q: %w", state, journey.ErrInvalidState)
	}

	pipe := s.client.Pipeline()
	pipe.HSet(ctx, s.key(userID), nodeID, string(state))
	if s.ttl > 0 {
		pipe.Expire(ctx, s.key(userID), s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record progress in redis: %w", err)
	}
	return nil
}

// Clear removes all recorded progress for a user.
func (s *Store) Clear(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear progress in redis: %w", err)
	}
	return nil
}

// Close closes the underlying redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
