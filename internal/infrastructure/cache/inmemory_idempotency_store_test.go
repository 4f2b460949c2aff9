package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mampirjaya/backoffice/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryIdempotencyStore_Lifecycle(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	state, _, err := store.Lookup(ctx, "key-1")
	require.NoError(t, err)
	assert.Equal(t, shared.IdempotencyAbsent, state)

	ok, err := store.Reserve(ctx, "key-1", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Reserve(ctx, "key-1", time.Hour)
	require.NoError(t, err)
	assert.False(t, ok, "second reservation must fail while pending")

	state, _, err = store.Lookup(ctx, "key-1")
	require.NoError(t, err)
	assert.Equal(t, shared.IdempotencyPending, state)

	require.NoError(t, store.Complete(ctx, "key-1", []byte(`{"id":1}`), time.Hour))
	state, payload, err := store.Lookup(ctx, "key-1")
	require.NoError(t, err)
	assert.Equal(t, shared.IdempotencyCompleted, state)
	assert.JSONEq(t, `{"id":1}`, string(payload))

	require.NoError(t, store.Release(ctx, "key-1"))
	state, _, err = store.Lookup(ctx, "key-1")
	require.NoError(t, err)
	assert.Equal(t, shared.IdempotencyCompleted, state, "release keeps completed keys")
}

func TestInMemoryIdempotencyStore_ReleaseAllowsRetry(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	ok, err := store.Reserve(ctx, "key-2", time.Hour)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, store.Release(ctx, "key-2"))

	ok, err = store.Reserve(ctx, "key-2", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInMemoryIdempotencyStore_DiscardDropsCompletedKey(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Complete(ctx, "key-4", []byte("garbage"), time.Hour))
	require.NoError(t, store.Discard(ctx, "key-4"))

	state, _, err := store.Lookup(ctx, "key-4")
	require.NoError(t, err)
	assert.Equal(t, shared.IdempotencyAbsent, state)

	ok, err := store.Reserve(ctx, "key-4", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInMemoryIdempotencyStore_Expiry(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Complete(ctx, "key-3", []byte("x"), time.Minute))
	now = now.Add(2 * time.Minute)

	state, _, err := store.Lookup(ctx, "key-3")
	require.NoError(t, err)
	assert.Equal(t, shared.IdempotencyAbsent, state)

	store.cleanup()
	assert.Zero(t, store.Size())

	ok, err := store.Reserve(ctx, "key-3", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInMemoryIdempotencyStore_ConcurrentReserve(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	var wins atomic.Int32
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := store.Reserve(ctx, "shared", time.Hour); ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}

func TestInMemoryIdempotencyStore_CloseIsIdempotent(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}
