package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelhouse/reelhouse-server/internal/domain"
)

func TestVideoLifecycle(t *testing.T) {
	ts := setupTestServer(t)
	_, ownerBearer := ts.createUser(t, "owner")
	_, otherBearer := ts.createUser(t, "other")

	draft := ts.createVideo(t, ownerBearer, "Work in progress", false)
	assert.False(t, draft.IsPublished)

	resp := ts.api.Get("/api/v1/videos/"+draft.ID, otherBearer)
	assert.Equal(t, http.StatusNotFound, resp.Code, "drafts are hidden from other users")

	resp = ts.api.Get("/api/v1/videos/"+draft.ID, ownerBearer)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = ts.api.Patch("/api/v1/videos/"+draft.ID+"/publish", ownerBearer)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.True(t, decode[domain.Video](t, resp.Body.Bytes()).IsPublished)

	resp = ts.api.Patch("/api/v1/videos/"+draft.ID+"/publish", otherBearer)
	require.Equal(t, http.StatusForbidden, resp.Code)
	assert.Equal(t, "FORBIDDEN", decodeError(t, resp.Body.Bytes()).Code)

	resp = ts.api.Delete("/api/v1/videos/"+draft.ID, otherBearer)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = ts.api.Delete("/api/v1/videos/"+draft.ID, ownerBearer)
	require.Equal(t, http.StatusNoContent, resp.Code, resp.Body.String())

	resp = ts.api.Get("/api/v1/videos/" + draft.ID)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCreateVideo_Validation(t *testing.T) {
	ts := setupTestServer(t)
	_, bearer := ts.createUser(t, "sloppy")

	resp := ts.api.Post("/api/v1/videos", bearer, map[string]any{
		"title":         "   ",
		"video_url":     "https://cdn.example.com/v.mp4",
		"thumbnail_url": "https://cdn.example.com/v.jpg",
	})
	require.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
	env := decodeError(t, resp.Body.Bytes())
	assert.Contains(t, env.Details, "title")

	resp = ts.api.Post("/api/v1/videos", map[string]any{
		"title":         "Anonymous upload",
		"video_url":     "https://cdn.example.com/v.mp4",
		"thumbnail_url": "https://cdn.example.com/v.jpg",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestVideoDetail_WithComments(t *testing.T) {
	ts := setupTestServer(t)
	owner, ownerBearer := ts.createUser(t, "lecturer")
	student, studentBearer := ts.createUser(t, "student")
	v := ts.createVideo(t, ownerBearer, "Lecture one", true)

	resp := ts.api.Post("/api/v1/videos/"+v.ID+"/comments", studentBearer, map[string]any{"content": "Helpful, thanks"})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	comment := decode[domain.CommentView](t, resp.Body.Bytes())
	require.NotNil(t, comment.Owner)
	assert.Equal(t, student.ID, comment.Owner.ID)

	require.Equal(t, http.StatusOK, ts.api.Post("/api/v1/likes/comment/"+comment.ID+"/toggle", ownerBearer).Code)
	require.Equal(t, http.StatusOK, ts.api.Post("/api/v1/likes/video/"+v.ID+"/toggle", studentBearer).Code)

	resp = ts.api.Get("/api/v1/videos/" + v.ID)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	detail := decode[domain.ContentView](t, resp.Body.Bytes())
	assert.Equal(t, owner.ID, detail.Owner.ID)
	assert.Equal(t, 1, detail.LikeCount)
	assert.Equal(t, 1, detail.CommentCount)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, 1, detail.Comments[0].LikeCount)

	resp = ts.api.Get("/api/v1/videos/" + v.ID + "/comments")
	require.Equal(t, http.StatusOK, resp.Code)
	comments := decode[domain.Page[domain.CommentView]](t, resp.Body.Bytes())
	assert.Equal(t, 1, comments.TotalCount)

	resp = ts.api.Delete("/api/v1/comments/"+comment.ID, ownerBearer)
	assert.Equal(t, http.StatusForbidden, resp.Code, "only the author deletes a comment")

	resp = ts.api.Delete("/api/v1/comments/"+comment.ID, studentBearer)
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = ts.api.Get("/api/v1/videos/" + v.ID + "/comments")
	assert.Equal(t, 0, decode[domain.Page[domain.CommentView]](t, resp.Body.Bytes()).TotalCount)
}

func TestPosts(t *testing.T) {
	ts := setupTestServer(t)
	author, bearer := ts.createUser(t, "blogger")
	_, fanBearer := ts.createUser(t, "reader")

	resp := ts.api.Post("/api/v1/posts", bearer, map[string]any{"content": "New video tomorrow"})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	post := decode[domain.Post](t, resp.Body.Bytes())

	require.Equal(t, http.StatusOK, ts.api.Post("/api/v1/likes/post/"+post.ID+"/toggle", fanBearer).Code)

	resp = ts.api.Post("/api/v1/posts/"+post.ID+"/comments", fanBearer, map[string]any{"content": "Can't wait"})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	resp = ts.api.Get("/api/v1/channels/" + author.ID + "/posts")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	posts := decode[domain.Page[domain.PostView]](t, resp.Body.Bytes())
	require.Len(t, posts.Items, 1)
	assert.Equal(t, 1, posts.Items[0].LikeCount)
	assert.Equal(t, author.Username, posts.Items[0].Owner.Username)

	resp = ts.api.Get("/api/v1/me/liked-posts", fanBearer)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 1, decode[domain.Page[domain.PostView]](t, resp.Body.Bytes()).TotalCount)

	resp = ts.api.Delete("/api/v1/posts/"+post.ID, fanBearer)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = ts.api.Delete("/api/v1/posts/"+post.ID, bearer)
	require.Equal(t, http.StatusNoContent, resp.Code)
}

func TestWatchHistory(t *testing.T) {
	ts := setupTestServer(t)
	_, creatorBearer := ts.createUser(t, "broadcaster")
	_, viewerBearer := ts.createUser(t, "audience")
	v := ts.createVideo(t, creatorBearer, "Evening news", true)

	resp := ts.api.Post("/api/v1/videos/"+v.ID+"/play", viewerBearer)
	require.Equal(t, http.StatusNoContent, resp.Code, resp.Body.String())

	resp = ts.api.Get("/api/v1/me/history", viewerBearer)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	history := decode[domain.Page[domain.HistoryEntry]](t, resp.Body.Bytes())
	require.Len(t, history.Items, 1)
	assert.Equal(t, v.ID, history.Items[0].ID)
	assert.Equal(t, int64(1), history.Items[0].Views)
	assert.Equal(t, "broadcaster", history.Items[0].Owner.Username)

	resp = ts.api.Delete("/api/v1/me/history/"+v.ID, viewerBearer)
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = ts.api.Delete("/api/v1/me/history/"+v.ID, viewerBearer)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = ts.api.Get("/api/v1/me/liked-videos", viewerBearer)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, decode[domain.FeedPage](t, resp.Body.Bytes()).Items)
}
