package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelhouse/reelhouse-server/internal/domain"
	"github.com/reelhouse/reelhouse-server/internal/store"
)

func makePlaylist(t *testing.T, s *Store, c *clock, owner *domain.User, name string) *domain.Playlist {
	t.Helper()
	now := c.next()
	p := &domain.Playlist{
		Entity:  domain.Entity{ID: "pl-" + name, CreatedAt: now, UpdatedAt: now},
		OwnerID: owner.ID,
		Name:    name,
	}
	require.NoError(t, s.CreatePlaylist(context.Background(), p))
	return p
}

func TestPlaylist_AddRemoveOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := newClock()
	alice := makeUser(t, s, c, "alice")
	pl := makePlaylist(t, s, c, alice, "favs")
	v1 := makeVideo(t, s, c, alice, "one", true)
	v2 := makeVideo(t, s, c, alice, "two", true)
	v3 := makeVideo(t, s, c, alice, "three", true)

	for i, v := range []*domain.Video{v2, v1, v3} {
		entry, err := s.AddPlaylistVideo(ctx, pl.ID, v.ID)
		require.NoError(t, err)
		assert.Equal(t, i+1, entry.Position)
	}

	_, err := s.AddPlaylistVideo(ctx, pl.ID, v1.ID)
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = s.AddPlaylistVideo(ctx, pl.ID, "vid-missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	videos, err := s.ListPlaylistVideos(ctx, pl.ID)
	require.NoError(t, err)
	require.Len(t, videos, 3)
	assert.Equal(t, []string{v2.ID, v1.ID, v3.ID}, []string{videos[0].ID, videos[1].ID, videos[2].ID})

	require.NoError(t, s.RemovePlaylistVideo(ctx, pl.ID, v1.ID))
	assert.ErrorIs(t, s.RemovePlaylistVideo(ctx, pl.ID, v1.ID), store.ErrNotFound)

	entry, err := s.AddPlaylistVideo(ctx, pl.ID, v1.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, entry.Position, "re-added videos go to the end")
}

func TestPlaylist_GetListDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := newClock()
	alice := makeUser(t, s, c, "alice")
	makePlaylist(t, s, c, alice, "first")
	second := makePlaylist(t, s, c, alice, "second")

	got, err := s.GetPlaylist(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "second", got.Name)

	lists, err := s.ListPlaylists(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.Equal(t, second.ID, lists[0].ID)

	require.NoError(t, s.DeletePlaylist(ctx, second.ID))
	_, err = s.GetPlaylist(ctx, second.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = s.CreatePlaylist(ctx, &domain.Playlist{Entity: domain.Entity{ID: "pl-x"}, OwnerID: "usr-ghost", Name: "x"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}
