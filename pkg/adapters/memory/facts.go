package memory

import (
	"context"
	"sync"

	"github.com/waymarkhq/waymark/pkg/journey"
)

// FactSource implements ports.FactSource in memory.
// Safe for concurrent use.
type FactSource struct {
	data map[string]journey.Facts
	mu   sync.RWMutex
}

// NewFactSource creates an empty in-memory fact source.
func NewFactSource() *FactSource {
	return &FactSource{
		data: make(map[string]journey.Facts),
	}
}

// Facts returns a copy of the user's fact set. Unknown users get an empty
// set, never an error.
func (f *FactSource) Facts(ctx context.Context, userID string) (journey.Facts, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make(journey.Facts, len(f.data[userID]))
	for k, v := range f.data[userID] {
		out[k] = v
	}
	return out, nil
}

// Set replaces the user's fact set.
func (f *FactSource) Set(userID string, facts journey.Facts) {
	copied := make(journey.Facts, len(facts))
	for k, v := range facts {
		copied[k] = v
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[userID] = copied
}

// Assert marks a single fact true for a user.
func (f *FactSource) Assert(userID, fact string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.data[userID] == nil {
		f.data[userID] = make(journey.Facts)
	}
	f.data[userID][fact] = true
}
