// Package memory provides in-memory implementations of the Waymark ports,
// used in tests and single-process deployments.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/waymarkhq/waymark/pkg/journey"
)

// Store implements ports.ProgressStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]journey.Overrides
	mu   sync.RWMutex
}

// NewStore creates a new in-memory progress store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]journey.Overrides),
	}
}

// Overrides returns a copy of the user's override map so callers can't
// mutate store state through the returned reference.
func (s *Store) Overrides(ctx context.Context, userID string) (journey.Overrides, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(journey.Overrides, len(s.data[userID]))
	for k, v := range s.data[userID] {
		out[k] = v
	}
	return out, nil
}

// Record persists one node state for a user.
func (s *Store) Record(ctx context.Context, userID, nodeID string, state journey.State) error {
	if !journey.ValidState(state) {
		return fmt.Errorf("state %q: %w", state, journey.ErrInvalidState)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data[userID] == nil {
		s.data[userID] = make(journey.Overrides)
	}
	s.data[userID][nodeID] = state
	return nil
}

// Clear removes all recorded progress for a user.
func (s *Store) Clear(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, userID)
	return nil
}
