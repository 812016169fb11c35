package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/reelhouse/reelhouse-server/internal/domain"
)

func (s *Server) registerChannelRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "channelProfile",
		Method:      http.MethodGet,
		Path:        "/api/v1/c/{username}",
		Summary:     "Channel profile",
		Description: "Returns a channel's public profile with audience counts and whether the caller subscribes to it",
		Tags:        []string{"Channels"},
	}, s.handleChannelProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "channelStats",
		Method:      http.MethodGet,
		Path:        "/api/v1/channels/{id}/stats",
		Summary:     "Channel stats",
		Description: "Returns subscriber, video, view and like totals for a channel",
		Tags:        []string{"Channels"},
	}, s.handleChannelStats)

	huma.Register(s.api, huma.Operation{
		OperationID: "channelSubscribers",
		Method:      http.MethodGet,
		Path:        "/api/v1/channels/{id}/subscribers",
		Summary:     "Channel subscribers",
		Description: "Returns users subscribed to the channel, most recent first",
		Tags:        []string{"Channels"},
	}, s.handleChannelSubscribers)

	huma.Register(s.api, huma.Operation{
		OperationID: "channelSubscriptions",
		Method:      http.MethodGet,
		Path:        "/api/v1/channels/{id}/subscriptions",
		Summary:     "Channel subscriptions",
		Description: "Returns channels the user subscribes to, most recent first",
		Tags:        []string{"Channels"},
	}, s.handleChannelSubscriptions)

	huma.Register(s.api, huma.Operation{
		OperationID: "likedVideos",
		Method:      http.MethodGet,
		Path:        "/api/v1/me/liked-videos",
		Summary:     "Liked videos",
		Description: "Returns videos the caller likes, most recently liked first",
		Tags:        []string{"Library"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleLikedVideos)

	huma.Register(s.api, huma.Operation{
		OperationID: "likedPosts",
		Method:      http.MethodGet,
		Path:        "/api/v1/me/liked-posts",
		Summary:     "Liked posts",
		Description: "Returns posts the caller likes, most recently liked first",
		Tags:        []string{"Library"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleLikedPosts)

	huma.Register(s.api, huma.Operation{
		OperationID: "watchHistory",
		Method:      http.MethodGet,
		Path:        "/api/v1/me/history",
		Summary:     "Watch history",
		Description: "Returns the caller's watch history, most recently added first",
		Tags:        []string{"Library"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleWatchHistory)

	huma.Register(s.api, huma.Operation{
		OperationID:   "removeFromHistory",
		Method:        http.MethodDelete,
		Path:          "/api/v1/me/history/{videoId}",
		Summary:       "Remove from history",
		Description:   "Removes one video from the caller's watch history",
		Tags:          []string{"Library"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, s.handleRemoveFromHistory)
}

// === DTOs ===

// ChannelProfileInput identifies a channel by username.
type ChannelProfileInput struct {
	Username string `path:"username" doc:"Channel username"`
}

// ChannelProfileOutput wraps a channel profile for Huma.
type ChannelProfileOutput struct {
	Body *domain.ChannelProfile
}

// ChannelStatsOutput wraps channel stats for Huma.
type ChannelStatsOutput struct {
	Body *domain.ChannelStats
}

// ChannelPageInput identifies a channel and a page.
type ChannelPageInput struct {
	ID string `path:"id" doc:"Channel (user) ID"`
	PageParams
}

// ListInput carries paging for the caller's own listings.
type ListInput struct {
	PageParams
}

// ConnectionsOutput wraps a page of subscription connections for Huma.
type ConnectionsOutput struct {
	Body *domain.Page[domain.ConnectionView]
}

// PostsOutput wraps a page of posts for Huma.
type PostsOutput struct {
	Body *domain.Page[domain.PostView]
}

// HistoryOutput wraps a page of watch history for Huma.
type HistoryOutput struct {
	Body *domain.Page[domain.HistoryEntry]
}

// HistoryEntryInput identifies a watch history entry.
type HistoryEntryInput struct {
	VideoID string `path:"videoId" doc:"Video ID"`
}

// === Handlers ===

func (s *Server) handleChannelProfile(ctx context.Context, input *ChannelProfileInput) (*ChannelProfileOutput, error) {
	profile, err := s.services.Channels.Profile(ctx, actorID(ctx), input.Username)
	if err != nil {
		return nil, err
	}
	return &ChannelProfileOutput{Body: profile}, nil
}

func (s *Server) handleChannelStats(ctx context.Context, input *ChannelInput) (*ChannelStatsOutput, error) {
	stats, err := s.services.Engagement.ChannelStats(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ChannelStatsOutput{Body: stats}, nil
}

func (s *Server) handleChannelSubscribers(ctx context.Context, input *ChannelPageInput) (*ConnectionsOutput, error) {
	page, err := s.services.Channels.Subscribers(ctx, input.ID, input.Page, input.Limit)
	if err != nil {
		return nil, err
	}
	return &ConnectionsOutput{Body: page}, nil
}

func (s *Server) handleChannelSubscriptions(ctx context.Context, input *ChannelPageInput) (*ConnectionsOutput, error) {
	page, err := s.services.Channels.Subscriptions(ctx, input.ID, input.Page, input.Limit)
	if err != nil {
		return nil, err
	}
	return &ConnectionsOutput{Body: page}, nil
}

func (s *Server) handleLikedVideos(ctx context.Context, input *ListInput) (*FeedOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	page, err := s.services.Channels.LikedVideos(ctx, userID, input.Page, input.Limit)
	if err != nil {
		return nil, err
	}
	return &FeedOutput{Body: page}, nil
}

func (s *Server) handleLikedPosts(ctx context.Context, input *ListInput) (*PostsOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	page, err := s.services.Channels.LikedPosts(ctx, userID, input.Page, input.Limit)
	if err != nil {
		return nil, err
	}
	return &PostsOutput{Body: page}, nil
}

func (s *Server) handleWatchHistory(ctx context.Context, input *ListInput) (*HistoryOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	page, err := s.services.Channels.WatchHistory(ctx, userID, input.Page, input.Limit)
	if err != nil {
		return nil, err
	}
	return &HistoryOutput{Body: page}, nil
}

func (s *Server) handleRemoveFromHistory(ctx context.Context, input *HistoryEntryInput) (*struct{}, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Channels.RemoveFromHistory(ctx, userID, input.VideoID); err != nil {
		return nil, err
	}
	return nil, nil
}
