package cache

import (
	"context"
	"testing"

	"github.com/eko/gocache/lib/v4/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	require.NoError(t, NewStore())

	ctx := context.Background()
	require.NoError(t, S.Set(ctx, "page#/?", []byte("rendered"), store.WithCost(8)))

	// Ristretto applies writes asynchronously.
	R.Wait()

	value, err := S.Get(ctx, "page#/?")
	require.NoError(t, err)
	assert.Equal(t, []byte("rendered"), value)
}

func TestFlushDropsEverything(t *testing.T) {
	require.NoError(t, NewStore())

	ctx := context.Background()
	require.NoError(t, S.Set(ctx, "page#/?", []byte("rendered"), store.WithCost(8)))
	R.Wait()

	Flush()

	_, err := S.Get(ctx, "page#/?")
	assert.Error(t, err)
}

func TestFlushToleratesMissingBackend(t *testing.T) {
	R = nil
	S = nil

	assert.NotPanics(t, Flush)
}
