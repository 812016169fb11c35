package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/reelhouse/reelhouse-server/internal/domain"
	"github.com/reelhouse/reelhouse-server/internal/id"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// clock hands out strictly increasing timestamps so ordering in tests is deterministic.
type clock struct{ t time.Time }

func newClock() *clock { return &clock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)} }

func (c *clock) next() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func makeUser(t *testing.T, s *Store, c *clock, username string) *domain.User {
	t.Helper()
	now := c.next()
	u := &domain.User{
		Entity:   domain.Entity{ID: id.MustGenerate(id.PrefixUser), CreatedAt: now, UpdatedAt: now},
		Username: username,
		Email:    username + "@example.com",
		FullName: "User " + username,
		Avatar:   "https://cdn.example.com/" + username + ".png",
	}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func makeVideo(t *testing.T, s *Store, c *clock, owner *domain.User, title string, published bool) *domain.Video {
	t.Helper()
	now := c.next()
	v := &domain.Video{
		Entity:      domain.Entity{ID: id.MustGenerate(id.PrefixVideo), CreatedAt: now, UpdatedAt: now},
		OwnerID:     owner.ID,
		Title:       title,
		Description: "about " + title,
		VideoURL:    "https://cdn.example.com/" + title + ".mp4",
		Duration:    60,
		IsPublished: published,
	}
	require.NoError(t, s.CreateVideo(context.Background(), v))
	return v
}

func makePost(t *testing.T, s *Store, c *clock, owner *domain.User, content string) *domain.Post {
	t.Helper()
	now := c.next()
	p := &domain.Post{
		Entity:  domain.Entity{ID: id.MustGenerate(id.PrefixPost), CreatedAt: now, UpdatedAt: now},
		OwnerID: owner.ID,
		Content: content,
	}
	require.NoError(t, s.CreatePost(context.Background(), p))
	return p
}

func makeComment(t *testing.T, s *Store, c *clock, owner *domain.User, target domain.TargetRef, content string) *domain.Comment {
	t.Helper()
	now := c.next()
	cm := &domain.Comment{
		Entity:  domain.Entity{ID: id.MustGenerate(id.PrefixComment), CreatedAt: now, UpdatedAt: now},
		OwnerID: owner.ID,
		Target:  target,
		Content: content,
	}
	require.NoError(t, s.CreateComment(context.Background(), cm))
	return cm
}

func toggle(t *testing.T, s *Store, kind domain.EdgeKind, subject string, target domain.TargetRef) domain.EdgeState {
	t.Helper()
	st, err := s.ToggleEdge(context.Background(), kind, subject, target)
	require.NoError(t, err)
	return st
}

func TestOpen(t *testing.T) {
	s := newTestStore(t)

	var journalMode string
	if err := s.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("expected wal, got %s", journalMode)
	}

	var fk int
	if err := s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("expected foreign_keys=1, got %d", fk)
	}

	tables := []string{
		"users", "videos", "posts", "comments", "likes",
		"subscriptions", "watch_history", "playlists", "playlist_videos",
	}
	for _, table := range tables {
		var name string
		err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}
}

func TestOpen_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "reopen.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	s1, err := Open(dbPath, logger)
	require.NoError(t, err)
	c := newClock()
	u := makeUser(t, s1, c, "persist")
	require.NoError(t, s1.Close())

	s2, err := Open(dbPath, logger)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.GetUser(context.Background(), u.ID)
	require.NoError(t, err)
	require.Equal(t, "persist", got.Username)
}

func TestFormatTime_SortsLexically(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 5, 0, time.UTC)
	times := []time.Time{base, base.Add(500 * time.Millisecond), base.Add(time.Second)}
	for i := 1; i < len(times); i++ {
		a, b := formatTime(times[i-1]), formatTime(times[i])
		if a >= b {
			t.Errorf("%s should sort before %s", a, b)
		}
	}

	parsed, err := parseTime(formatTime(times[1]))
	require.NoError(t, err)
	require.True(t, parsed.Equal(times[1]), fmt.Sprintf("round trip: %v", parsed))
}
