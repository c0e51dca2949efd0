package cache

import (
	"context"
	"testing"
	"time"

	"github.com/commercestore/commercestore/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshot struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestInMemory_SetGet(t *testing.T) {
	c := NewInMemory(0)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key-1", snapshot{Name: "foo", Count: 3}, DefaultExpiration))

	var got snapshot
	require.NoError(t, c.Get(ctx, "key-1", &got))
	assert.Equal(t, snapshot{Name: "foo", Count: 3}, got)
}

func TestInMemory_Get_Miss(t *testing.T) {
	c := NewInMemory(0)

	var got snapshot
	err := c.Get(context.Background(), "missing", &got)
	require.Error(t, err)
	assert.True(t, errors.Is(errors.NotFound, err))
}

func TestInMemory_Set_Replaces(t *testing.T) {
	c := NewInMemory(0)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key-1", snapshot{Count: 1}, DefaultExpiration))
	require.NoError(t, c.Set(ctx, "key-1", snapshot{Count: 2}, DefaultExpiration))

	var got snapshot
	require.NoError(t, c.Get(ctx, "key-1", &got))
	assert.Equal(t, 2, got.Count)
}

func TestInMemory_Delete(t *testing.T) {
	c := NewInMemory(0)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key-1", snapshot{}, DefaultExpiration))
	require.NoError(t, c.Delete(ctx, "key-1"))

	var got snapshot
	assert.True(t, errors.Is(errors.NotFound, c.Get(ctx, "key-1", &got)))

	// Deleting an absent key is a no-op.
	require.NoError(t, c.Delete(ctx, "key-1"))
}

func TestInMemory_Flush(t *testing.T) {
	c := NewInMemory(0)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key-1", snapshot{}, DefaultExpiration))
	require.NoError(t, c.Set(ctx, "key-2", snapshot{}, DefaultExpiration))
	require.NoError(t, c.Flush(ctx))

	var got snapshot
	assert.True(t, errors.Is(errors.NotFound, c.Get(ctx, "key-1", &got)))
	assert.True(t, errors.Is(errors.NotFound, c.Get(ctx, "key-2", &got)))
}

func TestInMemory_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewInMemory(2)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key-1", snapshot{Count: 1}, DefaultExpiration))
	require.NoError(t, c.Set(ctx, "key-2", snapshot{Count: 2}, DefaultExpiration))

	// Touch key-1 so key-2 becomes the eviction candidate.
	var got snapshot
	require.NoError(t, c.Get(ctx, "key-1", &got))

	require.NoError(t, c.Set(ctx, "key-3", snapshot{Count: 3}, DefaultExpiration))

	require.NoError(t, c.Get(ctx, "key-1", &got))
	require.NoError(t, c.Get(ctx, "key-3", &got))
	assert.True(t, errors.Is(errors.NotFound, c.Get(ctx, "key-2", &got)))
}

func TestInMemory_Expiration(t *testing.T) {
	c := NewInMemory(0)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key-1", snapshot{}, time.Nanosecond))
	time.Sleep(5 * time.Millisecond)

	var got snapshot
	assert.True(t, errors.Is(errors.NotFound, c.Get(ctx, "key-1", &got)))
}
