package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waymarkhq/waymark/pkg/journey"
)

// RunProgressStoreContract runs a suite of tests verifying that a
// ProgressStore implementation adheres to the interface contract.
func RunProgressStoreContract(t *testing.T, store ProgressStore) {
	ctx := context.Background()
	userID := "contract-user-" + time.Now().Format("20060102150405")

	t.Run("Empty user yields empty map", func(t *testing.T) {
		overrides, err := store.Overrides(ctx, userID+"-fresh")
		require.NoError(t, err, "a user with no progress is not an error")
		assert.Empty(t, overrides)
	})

	t.Run("Record and read back", func(t *testing.T) {
		require.NoError(t, store.Record(ctx, userID, "intro", journey.StateDone))
		require.NoError(t, store.Record(ctx, userID, "essay", journey.StateNeedsFixes))

		overrides, err := store.Overrides(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, journey.StateDone, overrides["intro"])
		assert.Equal(t, journey.StateNeedsFixes, overrides["essay"])
	})

	t.Run("Record overwrites", func(t *testing.T) {
		require.NoError(t, store.Record(ctx, userID, "essay", journey.StateDone))

		overrides, err := store.Overrides(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, journey.StateDone, overrides["essay"])
	})

	t.Run("Invalid state rejected", func(t *testing.T) {
		err := store.Record(ctx, userID, "intro", journey.State("exploded"))
		assert.ErrorIs(t, err, journey.ErrInvalidState)
	})

	t.Run("Returned map is isolated", func(t *testing.T) {
		overrides, err := store.Overrides(ctx, userID)
		require.NoError(t, err)
		overrides["intro"] = journey.StateLocked

		again, err := store.Overrides(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, journey.StateDone, again["intro"],
			"mutating a returned map must not leak into the store")
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx, userID))

		overrides, err := store.Overrides(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, overrides)
	})
}
