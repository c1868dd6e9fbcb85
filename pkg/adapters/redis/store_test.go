package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisadapter "github.com/waymarkhq/waymark/pkg/adapters/redis"
	"github.com/waymarkhq/waymark/pkg/journey"
	"github.com/waymarkhq/waymark/pkg/ports"
)

func newTestStore(t *testing.T, opts ...redisadapter.Option) *redisadapter.Store {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	store := redisadapter.NewFromClient(client, opts...)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRedisStore_Contract(t *testing.T) {
	ports.RunProgressStoreContract(t, newTestStore(t))
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	store := redisadapter.NewFromClient(client, redisadapter.WithPrefix("custom:"))
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	require.NoError(t, store.Record(ctx, "maria", "intro", journey.StateDone))

	assert.True(t, mr.Exists("custom:maria"))

	overrides, err := store.Overrides(ctx, "maria")
	require.NoError(t, err)
	assert.Equal(t, journey.StateDone, overrides["intro"])
}

func TestRedisStore_TTL(t *testing.T) {
	store := newTestStore(t, redisadapter.WithTTL(time.Minute))

	ctx := context.Background()
	require.NoError(t, store.Record(ctx, "maria", "intro", journey.StateActive))

	overrides, err := store.Overrides(ctx, "maria")
	require.NoError(t, err)
	assert.Len(t, overrides, 1)
}
