package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryDocumentStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDocumentStore()
	now := time.Date(2024, 11, 5, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	pages := map[int][]byte{1: []byte("one"), 2: []byte("two")}
	require.NoError(t, store.Put(ctx, "s1", pages, time.Minute))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, pages, got)

	_, err = store.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrDocumentNotFound)

	now = now.Add(time.Minute)
	_, err = store.Get(ctx, "s1")
	require.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestMemoryDocumentStoreSweep(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDocumentStore()
	now := time.Date(2024, 11, 5, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Put(ctx, "short", map[int][]byte{1: nil}, time.Minute))
	require.NoError(t, store.Put(ctx, "long", map[int][]byte{1: nil}, time.Hour))

	now = now.Add(2 * time.Minute)
	require.Equal(t, 1, store.Sweep())
	require.Equal(t, 0, store.Sweep())

	_, err := store.Get(ctx, "long")
	require.NoError(t, err)
}
