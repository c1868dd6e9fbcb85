package ports

import (
	"context"

	"github.com/waymarkhq/waymark/pkg/journey"
)

// ProgressStore persists the authoritative per-user completion record. The
// engine only ever reads the map; writes happen when the surrounding
// application records a completed interaction, and are reflected back into
// resolution on the next pass.
type ProgressStore interface {
	// Overrides returns the full override map for a user. A user with no
	// recorded progress yields an empty map, not an error.
	Overrides(ctx context.Context, userID string) (journey.Overrides, error)

	// Record persists one node state for a user. Implementations must
	// reject values outside the closed state set with
	// journey.ErrInvalidState.
	Record(ctx context.Context, userID, nodeID string, state journey.State) error

	// Clear removes all recorded progress for a user.
	Clear(ctx context.Context, userID string) error
}

// FactSource supplies the set of currently-true facts for a user, consumed
// by phase gates and outcome guards.
type FactSource interface {
	Facts(ctx context.Context, userID string) (journey.Facts, error)
}
