package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelhouse/reelhouse-server/internal/domain"
)

func TestPlaylists(t *testing.T) {
	ts := setupTestServer(t)
	curator, bearer := ts.createUser(t, "curator")
	_, otherBearer := ts.createUser(t, "lurker")

	first := ts.createVideo(t, bearer, "Opening", true)
	second := ts.createVideo(t, bearer, "Closing", true)
	draft := ts.createVideo(t, bearer, "Bonus draft", false)

	resp := ts.api.Post("/api/v1/playlists", bearer, map[string]any{"name": "Favorites"})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	pl := decode[domain.Playlist](t, resp.Body.Bytes())

	for _, v := range []*domain.Video{first, second, draft} {
		resp = ts.api.Post("/api/v1/playlists/"+pl.ID+"/videos/"+v.ID, bearer)
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	}

	resp = ts.api.Post("/api/v1/playlists/"+pl.ID+"/videos/"+first.ID, bearer)
	require.Equal(t, http.StatusConflict, resp.Code)

	resp = ts.api.Post("/api/v1/playlists/"+pl.ID+"/videos/"+first.ID, otherBearer)
	require.Equal(t, http.StatusForbidden, resp.Code)

	resp = ts.api.Get("/api/v1/playlists/"+pl.ID, bearer)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	ownerView := decode[domain.PlaylistView](t, resp.Body.Bytes())
	require.Len(t, ownerView.Videos, 3)
	assert.Equal(t, first.ID, ownerView.Videos[0].ID)
	assert.Equal(t, curator.ID, ownerView.Owner.ID)

	resp = ts.api.Get("/api/v1/playlists/"+pl.ID, otherBearer)
	publicView := decode[domain.PlaylistView](t, resp.Body.Bytes())
	assert.Len(t, publicView.Videos, 2, "drafts are filtered for other viewers")

	resp = ts.api.Delete("/api/v1/playlists/"+pl.ID+"/videos/"+first.ID, bearer)
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = ts.api.Get("/api/v1/channels/" + curator.ID + "/playlists")
	require.Equal(t, http.StatusOK, resp.Code)
	listing := decode[PlaylistsResponse](t, resp.Body.Bytes())
	require.Len(t, listing.Playlists, 1)
	assert.Equal(t, "Favorites", listing.Playlists[0].Name)

	resp = ts.api.Delete("/api/v1/playlists/"+pl.ID, bearer)
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = ts.api.Get("/api/v1/playlists/" + pl.ID)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
