package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelhouse/reelhouse-server/internal/auth"
	"github.com/reelhouse/reelhouse-server/internal/cache"
	"github.com/reelhouse/reelhouse-server/internal/domain"
	"github.com/reelhouse/reelhouse-server/internal/search"
	"github.com/reelhouse/reelhouse-server/internal/service"
	"github.com/reelhouse/reelhouse-server/internal/store/sqlite"
	"github.com/reelhouse/reelhouse-server/internal/validation"
	"github.com/reelhouse/reelhouse-server/internal/view"
)

// testEnvelope mirrors both envelope shapes for decoding in tests.
type testEnvelope[T any] struct {
	Version int            `json:"v"`
	Success bool           `json:"success"`
	Data    T              `json:"data"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

// testServer wraps the API server for handler tests.
type testServer struct {
	*Server
	api    humatest.TestAPI
	tokens *auth.TokenService
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	return setupTestServerWithOptions(t, Options{
		AllowedOrigins:   []string{"*"},
		TogglesPerMinute: 600,
		ToggleBurst:      100,
	})
}

func setupTestServerWithOptions(t *testing.T, opts Options) *testServer {
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

	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i + 1)
	}
	tokens, err := auth.NewTokenService(key, 15*time.Minute)
	require.NoError(t, err)

	v := validation.New()
	limits := view.Limits{Default: 6, Max: 50}
	services := &Services{
		Users:      service.NewUserService(st, v, logger),
		Edges:      service.NewEdgeService(st, c, logger),
		Feed:       service.NewFeedService(st, idx, limits, logger),
		Recommend:  service.NewRecommendationService(st, true, logger),
		Engagement: service.NewEngagementService(st, c, logger),
		Channels:   service.NewChannelService(st, limits, logger),
		Content:    service.NewContentService(st, idx, v, limits, logger),
		Playlists:  service.NewPlaylistService(st, v, logger),
	}

	s := NewServer(st, idx, services, tokens, opts, logger)
	t.Cleanup(s.Close)

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, s.api),
		tokens: tokens,
	}
}

// createUser registers a user through the API and returns it with a bearer header.
func (ts *testServer) createUser(t *testing.T, username string) (*domain.User, string) {
	t.Helper()

	resp := ts.api.Post("/api/v1/users", map[string]any{
		"username":  username,
		"email":     username + "@example.com",
		"full_name": "User " + username,
		"avatar":    "https://cdn.example.com/" + username + ".png",
	})
	require.Equal(t, http.StatusCreated, resp.Code, "create user failed: %s", resp.Body.String())

	user := decode[domain.User](t, resp.Body.Bytes())
	token, err := ts.tokens.GenerateAccessToken(&user)
	require.NoError(t, err)
	return &user, "Authorization: Bearer " + token
}

// createVideo creates a video through the API as the bearer's user.
func (ts *testServer) createVideo(t *testing.T, bearer, title string, published bool) *domain.Video {
	t.Helper()

	resp := ts.api.Post("/api/v1/videos", bearer, map[string]any{
		"title":         title,
		"description":   "about " + title,
		"video_url":     "https://cdn.example.com/v.mp4",
		"thumbnail_url": "https://cdn.example.com/v.jpg",
		"duration":      90,
		"is_published":  published,
	})
	require.Equal(t, http.StatusCreated, resp.Code, "create video failed: %s", resp.Body.String())

	v := decode[domain.Video](t, resp.Body.Bytes())
	return &v
}

// decode unwraps a success envelope.
func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var env testEnvelope[T]
	require.NoError(t, json.Unmarshal(body, &env))
	require.True(t, env.Success, "expected success envelope: %s", string(body))
	return env.Data
}

// decodeError unwraps an error envelope.
func decodeError(t *testing.T, body []byte) testEnvelope[json.RawMessage] {
	t.Helper()
	var env testEnvelope[json.RawMessage]
	require.NoError(t, json.Unmarshal(body, &env))
	require.False(t, env.Success, "expected error envelope: %s", string(body))
	return env
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	health := decode[HealthResponse](t, resp.Body.Bytes())
	assert.Equal(t, "healthy", health.Components["database"].Status)
	assert.Equal(t, "degraded", health.Components["search"].Status, "empty index is degraded")
	assert.Equal(t, "degraded", health.Status)

	_, bearer := ts.createUser(t, "healthy")
	ts.createVideo(t, bearer, "Indexed video", true)

	resp = ts.api.Get("/health")
	health = decode[HealthResponse](t, resp.Body.Bytes())
	assert.Equal(t, "healthy", health.Status)
}

func TestHealthCheck_StoreClosed(t *testing.T) {
	ts := setupTestServer(t)
	require.NoError(t, ts.store.Close())

	health, err := ts.handleHealthCheck(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "unhealthy", health.Body.Components["database"].Status)
	assert.Equal(t, "unhealthy", health.Body.Status)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	ts.api.Get("/api/v1/videos")

	resp := ts.api.Get("/metrics")
	require.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	assert.Contains(t, body, "reelhouse_api_requests_total")
	assert.Contains(t, body, `route="/api/v1/videos"`)
}

func TestAuthRequired(t *testing.T) {
	ts := setupTestServer(t)

	tests := []struct {
		name   string
		header []any
	}{
		{"no header", nil},
		{"not bearer", []any{"Authorization: Basic abc"}},
		{"garbage token", []any{"Authorization: Bearer not-a-token"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.api.Get("/api/v1/users/me", tt.header...)
			require.Equal(t, http.StatusUnauthorized, resp.Code)
			env := decodeError(t, resp.Body.Bytes())
			assert.Equal(t, "UNAUTHORIZED", env.Code)
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Do(http.MethodOptions, "/api/v1/videos",
		"Origin: https://app.example.com",
		"Access-Control-Request-Method: GET",
	)
	assert.Equal(t, "*", resp.Header().Get("Access-Control-Allow-Origin"))
}
