package service

import (
	"context"
	"log/slog"

	"github.com/reelhouse/reelhouse-server/internal/domain"
	domainerrors "github.com/reelhouse/reelhouse-server/internal/errors"
	"github.com/reelhouse/reelhouse-server/internal/normalize"
	"github.com/reelhouse/reelhouse-server/internal/store"
	"github.com/reelhouse/reelhouse-server/internal/view"
)

// ChannelService serves per-user views: channel profiles, subscription
// listings, liked content and watch history.
type ChannelService struct {
	store  store.Store
	limits view.Limits
	logger *slog.Logger
}

// NewChannelService creates a new channel service.
func NewChannelService(store store.Store, limits view.Limits, logger *slog.Logger) *ChannelService {
	return &ChannelService{
		store:  store,
		limits: limits,
		logger: logger,
	}
}

// Profile returns the channel named username as seen by viewerID.
func (s *ChannelService) Profile(ctx context.Context, viewerID, username string) (*domain.ChannelProfile, error) {
	username = normalize.Username(username)
	if username == "" {
		return nil, domainerrors.Validation("username is required")
	}
	profile, err := s.store.GetChannelProfile(ctx, username, viewerID)
	if err != nil {
		return nil, translate(err, "channel profile")
	}
	return profile, nil
}

// requireUser distinguishes a missing root from an empty listing.
func (s *ChannelService) requireUser(ctx context.Context, userID string) error {
	if userID == "" {
		return domainerrors.Validation("user id is required")
	}
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return translate(err, "user "+userID)
	}
	return nil
}

// Subscribers lists the users subscribed to channelID.
func (s *ChannelService) Subscribers(ctx context.Context, channelID, page, limit string) (*domain.Page[domain.ConnectionView], error) {
	if err := s.requireUser(ctx, channelID); err != nil {
		return nil, err
	}
	p := view.ParsePage(page, limit, s.limits)
	conns, total, err := s.store.ListSubscribers(ctx, channelID, p)
	if err != nil {
		return nil, translate(err, "list subscribers")
	}
	return newPage(conns, total, p), nil
}

// Subscriptions lists the channels userID subscribes to.
func (s *ChannelService) Subscriptions(ctx context.Context, userID, page, limit string) (*domain.Page[domain.ConnectionView], error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	p := view.ParsePage(page, limit, s.limits)
	conns, total, err := s.store.ListSubscriptions(ctx, userID, p)
	if err != nil {
		return nil, translate(err, "list subscriptions")
	}
	return newPage(conns, total, p), nil
}

// LikedVideos lists the videos userID liked, most recent like first.
func (s *ChannelService) LikedVideos(ctx context.Context, userID, page, limit string) (*domain.FeedPage, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	p := view.ParsePage(page, limit, s.limits)
	videos, total, err := s.store.ListLikedVideos(ctx, userID, p)
	if err != nil {
		return nil, translate(err, "list liked videos")
	}
	items, err := view.EnrichVideos(ctx, s.store, videos, view.StagesListing)
	if err != nil {
		return nil, translate(err, "enrich liked videos")
	}
	return newPage(items, total, p), nil
}

// LikedPosts lists the posts userID liked, most recent like first.
func (s *ChannelService) LikedPosts(ctx context.Context, userID, page, limit string) (*domain.Page[domain.PostView], error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	p := view.ParsePage(page, limit, s.limits)
	posts, total, err := s.store.ListLikedPosts(ctx, userID, p)
	if err != nil {
		return nil, translate(err, "list liked posts")
	}
	items, err := view.EnrichPosts(ctx, s.store, posts)
	if err != nil {
		return nil, translate(err, "enrich liked posts")
	}
	return newPage(items, total, p), nil
}

// WatchHistory lists the videos in userID's history with their owners,
// most recently watched first.
func (s *ChannelService) WatchHistory(ctx context.Context, userID, page, limit string) (*domain.Page[domain.HistoryEntry], error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	p := view.ParsePage(page, limit, s.limits)
	entries, total, err := s.store.ListWatchHistory(ctx, userID, p)
	if err != nil {
		return nil, translate(err, "list watch history")
	}

	videos := make([]domain.Video, len(entries))
	for i, e := range entries {
		videos[i] = e.Video
	}
	views, err := view.EnrichVideos(ctx, s.store, videos, view.StagesListing)
	if err != nil {
		return nil, translate(err, "enrich watch history")
	}
	for i := range entries {
		entries[i].ContentView = views[i]
	}
	return newPage(entries, total, p), nil
}

// RecordPlayback counts a view of videoID and adds it to userID's history.
func (s *ChannelService) RecordPlayback(ctx context.Context, userID, videoID string) error {
	if userID == "" {
		return domainerrors.Unauthorized("playback requires an acting user")
	}
	v, err := s.store.GetVideo(ctx, videoID)
	if err != nil {
		return translate(err, "video "+videoID)
	}
	if !visibleTo(v, userID) {
		return domainerrors.NotFoundf("video %s not found", videoID)
	}

	if err := s.store.IncrementViews(ctx, videoID); err != nil {
		return translate(err, "increment views")
	}
	if err := s.store.AddToWatchHistory(ctx, userID, videoID); err != nil {
		return translate(err, "add to watch history")
	}
	return nil
}

// RemoveFromHistory deletes one watch history entry. Returns NotFound when
// the video is not in the history.
func (s *ChannelService) RemoveFromHistory(ctx context.Context, userID, videoID string) error {
	if userID == "" {
		return domainerrors.Unauthorized("an acting user is required")
	}
	if err := s.store.RemoveFromWatchHistory(ctx, userID, videoID); err != nil {
		return translate(err, "remove from watch history")
	}
	return nil
}
