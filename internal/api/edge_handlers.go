package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/reelhouse/reelhouse-server/internal/domain"
)

func (s *Server) registerEdgeRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "toggleLike",
		Method:      http.MethodPost,
		Path:        "/api/v1/likes/{kind}/{id}/toggle",
		Summary:     "Toggle like",
		Description: "Likes the target if the caller has not liked it, otherwise removes the like",
		Tags:        []string{"Engagement"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: huma.Middlewares{s.rateLimitToggles},
	}, s.handleToggleLike)

	huma.Register(s.api, huma.Operation{
		OperationID: "isLiked",
		Method:      http.MethodGet,
		Path:        "/api/v1/likes/{kind}/{id}",
		Summary:     "Is liked",
		Description: "Reports whether the caller likes the target",
		Tags:        []string{"Engagement"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleIsLiked)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggleSubscription",
		Method:      http.MethodPost,
		Path:        "/api/v1/channels/{id}/subscription/toggle",
		Summary:     "Toggle subscription",
		Description: "Subscribes the caller to the channel, or unsubscribes if already subscribed",
		Tags:        []string{"Channels"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: huma.Middlewares{s.rateLimitToggles},
	}, s.handleToggleSubscription)
}

// === DTOs ===

// LikeTargetInput identifies a likeable target.
type LikeTargetInput struct {
	Kind string `path:"kind" enum:"video,post,comment" doc:"Target kind"`
	ID   string `path:"id" doc:"Target ID"`
}

func (in *LikeTargetInput) target() domain.TargetRef {
	return domain.TargetRef{Kind: domain.TargetKind(in.Kind), ID: in.ID}
}

// ChannelInput identifies a channel.
type ChannelInput struct {
	ID string `path:"id" doc:"Channel (user) ID"`
}

// EdgeStateOutput wraps a toggle outcome for Huma.
type EdgeStateOutput struct {
	Body *domain.EdgeState
}

// IsLikedResponse reports whether the caller likes a target.
type IsLikedResponse struct {
	Liked bool `json:"liked" doc:"True when the caller likes the target"`
}

// IsLikedOutput wraps the is-liked response for Huma.
type IsLikedOutput struct {
	Body IsLikedResponse
}

// === Handlers ===

func (s *Server) handleToggleLike(ctx context.Context, input *LikeTargetInput) (*EdgeStateOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	state, err := s.services.Edges.ToggleLike(ctx, userID, input.target())
	if err != nil {
		return nil, err
	}
	return &EdgeStateOutput{Body: state}, nil
}

func (s *Server) handleIsLiked(ctx context.Context, input *LikeTargetInput) (*IsLikedOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	liked, err := s.services.Edges.IsLiked(ctx, userID, input.target())
	if err != nil {
		return nil, err
	}
	return &IsLikedOutput{Body: IsLikedResponse{Liked: liked}}, nil
}

func (s *Server) handleToggleSubscription(ctx context.Context, input *ChannelInput) (*EdgeStateOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	state, err := s.services.Edges.ToggleSubscription(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}
	return &EdgeStateOutput{Body: state}, nil
}
