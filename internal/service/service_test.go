package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/reelhouse/reelhouse-server/internal/cache"
	"github.com/reelhouse/reelhouse-server/internal/domain"
	"github.com/reelhouse/reelhouse-server/internal/search"
	"github.com/reelhouse/reelhouse-server/internal/store/sqlite"
	"github.com/reelhouse/reelhouse-server/internal/validation"
	"github.com/reelhouse/reelhouse-server/internal/view"
)

type fixture struct {
	store *sqlite.Store
	index *search.SearchIndex
	cache *cache.Cache

	users      *UserService
	edges      *EdgeService
	feed       *FeedService
	recommend  *RecommendationService
	engagement *EngagementService
	channels   *ChannelService
	content    *ContentService
	playlists  *PlaylistService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := sqlite.Open(filepath.Join(dir, "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	idx, _, err := search.NewSearchIndex(search.Options{DataPath: filepath.Join(dir, "search"), Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	c, err := cache.Open(cache.Options{InMemory: true, TTL: time.Minute, Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	v := validation.New()
	limits := view.Limits{Default: 6, Max: 50}

	return &fixture{
		store:      st,
		index:      idx,
		cache:      c,
		users:      NewUserService(st, v, logger),
		edges:      NewEdgeService(st, c, logger),
		feed:       NewFeedService(st, idx, limits, logger),
		recommend:  NewRecommendationService(st, true, logger),
		engagement: NewEngagementService(st, c, logger),
		channels:   NewChannelService(st, limits, logger),
		content:    NewContentService(st, idx, v, limits, logger),
		playlists:  NewPlaylistService(st, v, logger),
	}
}

func (f *fixture) user(t *testing.T, username string) *domain.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), CreateUserRequest{
		Username: username,
		Email:    username + "@example.com",
		FullName: "User " + username,
		Avatar:   "https://cdn.example.com/" + username + ".png",
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) video(t *testing.T, owner *domain.User, title string, published bool) *domain.Video {
	t.Helper()
	v, err := f.content.CreateVideo(context.Background(), owner.ID, CreateVideoRequest{
		Title:        title,
		Description:  "about " + title,
		VideoURL:     "https://cdn.example.com/v.mp4",
		ThumbnailURL: "https://cdn.example.com/v.jpg",
		Duration:     60,
		IsPublished:  published,
	})
	require.NoError(t, err)
	return v
}

func (f *fixture) post(t *testing.T, owner *domain.User, content string) *domain.Post {
	t.Helper()
	p, err := f.content.CreatePost(context.Background(), owner.ID, CreatePostRequest{Content: content})
	require.NoError(t, err)
	return p
}

func (f *fixture) subscribe(t *testing.T, subscriber, channel *domain.User) {
	t.Helper()
	state, err := f.edges.ToggleSubscription(context.Background(), subscriber.ID, channel.ID)
	require.NoError(t, err)
	require.True(t, state.Present)
}

func (f *fixture) like(t *testing.T, user *domain.User, target domain.TargetRef) {
	t.Helper()
	state, err := f.edges.ToggleLike(context.Background(), user.ID, target)
	require.NoError(t, err)
	require.True(t, state.Present)
}

func videoIDs(items []domain.ContentView) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}
