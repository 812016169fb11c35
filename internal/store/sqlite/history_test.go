package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelhouse/reelhouse-server/internal/store"
	"github.com/reelhouse/reelhouse-server/internal/view"
)

func TestWatchHistory_AddIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := newClock()
	alice := makeUser(t, s, c, "alice")
	v := makeVideo(t, s, c, alice, "clip", true)

	require.NoError(t, s.AddToWatchHistory(ctx, alice.ID, v.ID))
	require.NoError(t, s.AddToWatchHistory(ctx, alice.ID, v.ID))
	assert.Equal(t, 1, countRows(t, s, "watch_history"))

	assert.ErrorIs(t, s.AddToWatchHistory(ctx, alice.ID, "vid-missing"), store.ErrNotFound)
}

func TestWatchHistory_ListRemoveClear(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := newClock()
	alice := makeUser(t, s, c, "alice")
	v1 := makeVideo(t, s, c, alice, "one", true)
	v2 := makeVideo(t, s, c, alice, "two", true)

	require.NoError(t, s.AddToWatchHistory(ctx, alice.ID, v1.ID))
	require.NoError(t, s.AddToWatchHistory(ctx, alice.ID, v2.ID))

	entries, total, err := s.ListWatchHistory(ctx, alice.ID, view.Page{Number: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, entries, 2)
	assert.False(t, entries[0].WatchedAt.Before(entries[1].WatchedAt), "most recent first")

	require.NoError(t, s.RemoveFromWatchHistory(ctx, alice.ID, v1.ID))
	assert.ErrorIs(t, s.RemoveFromWatchHistory(ctx, alice.ID, v1.ID), store.ErrNotFound)

	n, err := s.ClearWatchHistory(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	entries, total, err = s.ListWatchHistory(ctx, alice.ID, view.Page{Number: 1, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}
