package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/reelhouse/reelhouse-server/internal/domain"
)

func (s *Server) registerFeedRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listVideos",
		Method:      http.MethodGet,
		Path:        "/api/v1/videos",
		Summary:     "Global feed",
		Description: "Returns published videos with owner projections and like counts. Text, owner ID and owner username filters apply independently.",
		Tags:        []string{"Feeds"},
	}, s.handleFeed)

	huma.Register(s.api, huma.Operation{
		OperationID: "subscribedFeed",
		Method:      http.MethodGet,
		Path:        "/api/v1/feed/subscriptions",
		Summary:     "Subscribed feed",
		Description: "Returns published videos from the caller and the channels they subscribe to",
		Tags:        []string{"Feeds"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSubscribedFeed)

	huma.Register(s.api, huma.Operation{
		OperationID: "channelVideos",
		Method:      http.MethodGet,
		Path:        "/api/v1/channels/{id}/videos",
		Summary:     "Channel videos",
		Description: "Returns a channel's videos. The owner also sees unpublished videos.",
		Tags:        []string{"Feeds"},
	}, s.handleChannelVideos)

	huma.Register(s.api, huma.Operation{
		OperationID: "nextRecommendation",
		Method:      http.MethodGet,
		Path:        "/api/v1/recommendations/next",
		Summary:     "Next recommendation",
		Description: "Samples one published video the caller has not watched. When every video has been watched the history is cleared and 404 is returned.",
		Tags:        []string{"Feeds"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleNextRecommendation)
}

// === DTOs ===

// PageParams carries lenient paging input. Malformed values fall back to defaults.
type PageParams struct {
	Page  string `query:"page" doc:"1-based page number"`
	Limit string `query:"limit" doc:"Page size, capped by the server"`
}

// FeedParams carries feed filters and sort input.
type FeedParams struct {
	PageParams
	Query    string `query:"query" doc:"Free-text match over title and description"`
	UserID   string `query:"userId" doc:"Only videos owned by this user ID"`
	Username string `query:"username" doc:"Only videos owned by this username"`
	SortBy   string `query:"sortBy" doc:"created_at, views, duration or title"`
	SortType string `query:"sortType" doc:"asc/1 or desc/-1"`
}

func (p FeedParams) toQuery() domain.FeedQuery {
	return domain.FeedQuery{
		Query:         p.Query,
		OwnerID:       p.UserID,
		OwnerUsername: p.Username,
		SortBy:        p.SortBy,
		SortType:      p.SortType,
		Page:          p.Page,
		Limit:         p.Limit,
	}
}

// FeedInput contains parameters for feed listings.
type FeedInput struct {
	FeedParams
}

// ChannelVideosInput contains parameters for a channel's videos.
type ChannelVideosInput struct {
	ID string `path:"id" doc:"Channel (user) ID"`
	FeedParams
}

// FeedOutput wraps a feed page for Huma.
type FeedOutput struct {
	Body *domain.FeedPage
}

// ContentViewOutput wraps an enriched video for Huma.
type ContentViewOutput struct {
	Body *domain.ContentView
}

// === Handlers ===

func (s *Server) handleFeed(ctx context.Context, input *FeedInput) (*FeedOutput, error) {
	page, err := s.services.Feed.Feed(ctx, actorID(ctx), input.toQuery())
	if err != nil {
		return nil, err
	}
	return &FeedOutput{Body: page}, nil
}

func (s *Server) handleSubscribedFeed(ctx context.Context, input *FeedInput) (*FeedOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	page, err := s.services.Feed.SubscribedFeed(ctx, userID, input.toQuery())
	if err != nil {
		return nil, err
	}
	return &FeedOutput{Body: page}, nil
}

func (s *Server) handleChannelVideos(ctx context.Context, input *ChannelVideosInput) (*FeedOutput, error) {
	page, err := s.services.Feed.ChannelVideos(ctx, actorID(ctx), input.ID, input.toQuery())
	if err != nil {
		return nil, err
	}
	return &FeedOutput{Body: page}, nil
}

func (s *Server) handleNextRecommendation(ctx context.Context, _ *struct{}) (*ContentViewOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	v, err := s.services.Recommend.Next(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ContentViewOutput{Body: v}, nil
}
