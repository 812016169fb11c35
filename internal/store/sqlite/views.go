package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/reelhouse/reelhouse-server/internal/domain"
	"github.com/reelhouse/reelhouse-server/internal/store"
	"github.com/reelhouse/reelhouse-server/internal/view"
)

// This file executes statements compiled by the view package.

// ListVideos runs a content query's count and page statements. The two are
// independent reads sharing one compiled predicate.
func (s *Store) ListVideos(ctx context.Context, q view.ContentQuery) ([]domain.Video, int, error) {
	c := q.Compile()
	total, err := s.count(ctx, c.Count)
	if err != nil {
		return nil, 0, fmt.Errorf("count videos: %w", err)
	}
	videos, err := s.queryVideos(ctx, c.Page)
	if err != nil {
		return nil, 0, fmt.Errorf("list videos: %w", err)
	}
	return videos, total, nil
}

// SampleVideo picks one matching video uniformly at random.
// Returns store.ErrNotFound when nothing matches.
func (s *Store) SampleVideo(ctx context.Context, f view.ContentFilter) (*domain.Video, error) {
	stmt := view.Sample(f)
	v, err := scanVideo(s.db.QueryRowContext(ctx, stmt.SQL, stmt.Args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound.WithMessage("no video left to sample")
	}
	if err != nil {
		return nil, fmt.Errorf("sample video: %w", err)
	}
	return v, nil
}

// OwnerSummaries resolves owner projections by user ID. Missing users are
// absent from the map.
func (s *Store) OwnerSummaries(ctx context.Context, ids []string) (map[string]*domain.OwnerSummary, error) {
	owners := make(map[string]*domain.OwnerSummary, len(ids))
	if len(ids) == 0 {
		return owners, nil
	}

	stmt := view.OwnerJoin(ids)
	rows, err := s.db.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, fmt.Errorf("owner summaries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var o domain.OwnerSummary
		if err := rows.Scan(&o.ID, &o.Username, &o.FullName, &o.Avatar); err != nil {
			return nil, err
		}
		owners[o.ID] = &o
	}
	return owners, rows.Err()
}

// LikeCounts returns like counts per target ID. Targets without likes are absent.
func (s *Store) LikeCounts(ctx context.Context, kind domain.TargetKind, ids []string) (map[string]int, error) {
	return s.groupCounts(ctx, view.LikeCountJoin(kind, ids), len(ids))
}

// CommentCounts returns comment counts per target ID.
func (s *Store) CommentCounts(ctx context.Context, kind domain.TargetKind, ids []string) (map[string]int, error) {
	return s.groupCounts(ctx, view.CommentCountJoin(kind, ids), len(ids))
}

func (s *Store) groupCounts(ctx context.Context, stmt view.Statement, n int) (map[string]int, error) {
	counts := make(map[string]int, n)
	if n == 0 {
		return counts, nil
	}
	rows, err := s.db.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, fmt.Errorf("group counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id string
			c  int
		)
		if err := rows.Scan(&id, &c); err != nil {
			return nil, err
		}
		counts[id] = c
	}
	return counts, rows.Err()
}

// ListWatchHistory returns the user's history videos, most recently added first.
// Entries carry the raw video; enrichment happens in the caller.
func (s *Store) ListWatchHistory(ctx context.Context, userID string, p view.Page) ([]domain.HistoryEntry, int, error) {
	c := view.WatchHistory(userID, p)
	total, err := s.count(ctx, c.Count)
	if err != nil {
		return nil, 0, fmt.Errorf("count watch history: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, c.Page.SQL, c.Page.Args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list watch history: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.HistoryEntry, 0)
	for rows.Next() {
		var addedAt string
		v, err := scanVideo(rows, &addedAt)
		if err != nil {
			return nil, 0, err
		}
		entry := domain.HistoryEntry{ContentView: domain.ContentView{Video: *v}}
		if entry.WatchedAt, err = parseTime(addedAt); err != nil {
			return nil, 0, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// ListLikedVideos returns the videos a user liked, most recent like first.
func (s *Store) ListLikedVideos(ctx context.Context, userID string, p view.Page) ([]domain.Video, int, error) {
	c := view.LikedVideos(userID, p)
	total, err := s.count(ctx, c.Count)
	if err != nil {
		return nil, 0, fmt.Errorf("count liked videos: %w", err)
	}
	videos, err := s.queryVideos(ctx, c.Page)
	if err != nil {
		return nil, 0, fmt.Errorf("list liked videos: %w", err)
	}
	return videos, total, nil
}

// ListLikedPosts returns the posts a user liked, most recent like first.
func (s *Store) ListLikedPosts(ctx context.Context, userID string, p view.Page) ([]domain.Post, int, error) {
	return s.pagePosts(ctx, view.LikedPosts(userID, p))
}

// ListPostsByOwner returns a user's community posts, newest first.
func (s *Store) ListPostsByOwner(ctx context.Context, ownerID string, p view.Page) ([]domain.Post, int, error) {
	return s.pagePosts(ctx, view.PostsByOwner(ownerID, p))
}

func (s *Store) pagePosts(ctx context.Context, c view.Compiled) ([]domain.Post, int, error) {
	total, err := s.count(ctx, c.Count)
	if err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}
	posts, err := s.queryPosts(ctx, c.Page)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	return posts, total, nil
}

// ListComments returns one page of comments on a target with their owners.
// It does not check that the target exists.
func (s *Store) ListComments(ctx context.Context, target domain.TargetRef, p view.Page) ([]domain.CommentView, int, error) {
	c := view.CommentsJoin(target, p)
	total, err := s.count(ctx, c.Count)
	if err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, c.Page.SQL, c.Page.Args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]domain.CommentView, 0)
	for rows.Next() {
		var (
			cv                              domain.CommentView
			kind, createdAt, updatedAt      string
			ownerID, username, name, avatar *string
		)
		err := rows.Scan(&cv.ID, &cv.OwnerID, &kind, &cv.Target.ID, &cv.Content, &createdAt, &updatedAt,
			&ownerID, &username, &name, &avatar)
		if err != nil {
			return nil, 0, err
		}
		cv.Target.Kind = domain.TargetKind(kind)
		if cv.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, 0, err
		}
		if cv.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, 0, err
		}
		cv.Owner = scanOwner(ownerID, username, name, avatar)
		comments = append(comments, cv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// ListSubscribers returns the users subscribed to a channel.
func (s *Store) ListSubscribers(ctx context.Context, channelID string, p view.Page) ([]domain.ConnectionView, int, error) {
	return s.pageConnections(ctx, view.Subscribers(channelID, p))
}

// ListSubscriptions returns the channels a user subscribes to.
func (s *Store) ListSubscriptions(ctx context.Context, subscriberID string, p view.Page) ([]domain.ConnectionView, int, error) {
	return s.pageConnections(ctx, view.Subscriptions(subscriberID, p))
}

func (s *Store) pageConnections(ctx context.Context, c view.Compiled) ([]domain.ConnectionView, int, error) {
	total, err := s.count(ctx, c.Count)
	if err != nil {
		return nil, 0, fmt.Errorf("count connections: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, c.Page.SQL, c.Page.Args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list connections: %w", err)
	}
	defer rows.Close()

	conns := make([]domain.ConnectionView, 0)
	for rows.Next() {
		var (
			cv        domain.ConnectionView
			createdAt string
		)
		if err := rows.Scan(&cv.User.ID, &cv.User.Username, &cv.User.FullName, &cv.User.Avatar, &createdAt); err != nil {
			return nil, 0, err
		}
		if cv.SubscribedAt, err = parseTime(createdAt); err != nil {
			return nil, 0, err
		}
		conns = append(conns, cv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return conns, total, nil
}

// GetChannelProfile reads a channel by username together with its counts and
// the viewer's subscription state.
func (s *Store) GetChannelProfile(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, error) {
	var (
		p         domain.ChannelProfile
		createdAt string
	)
	stmt := view.ChannelProfile(username, viewerID)
	err := s.db.QueryRowContext(ctx, stmt.SQL, stmt.Args...).Scan(
		&p.ID, &p.Username, &p.FullName, &p.Avatar, &p.CoverImage, &createdAt,
		&p.SubscribersCount, &p.SubscribedTo, &p.IsSubscribed,
	)
	if err != nil {
		return nil, notFound(err, "channel %q not found", username)
	}
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetChannelStats aggregates a channel's counters.
// Returns store.ErrNotFound if the channel user does not exist.
func (s *Store) GetChannelStats(ctx context.Context, channelID string) (*domain.ChannelStats, error) {
	exists, err := s.TargetExists(ctx, domain.ChannelRef(channelID))
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, store.ErrNotFound.WithMessage("channel " + channelID + " not found")
	}

	st := domain.ChannelStats{ChannelID: channelID}
	stmt := view.ChannelStats(channelID)
	err = s.db.QueryRowContext(ctx, stmt.SQL, stmt.Args...).Scan(
		&st.SubscribersCount, &st.SubscriptionsCount, &st.VideoCount,
		&st.TotalViews, &st.TotalLikes, &st.PostCount,
	)
	if err != nil {
		return nil, fmt.Errorf("channel stats: %w", err)
	}
	return &st, nil
}
