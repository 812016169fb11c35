package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/reelhouse/reelhouse-server/internal/domain"
)

func (s *Server) registerEngagementRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "likeCounts",
		Method:      http.MethodPost,
		Path:        "/api/v1/engagement/like-counts",
		Summary:     "Like counts",
		Description: "Returns the like count of each target, zero included. Targets may mix videos, posts and comments.",
		Tags:        []string{"Engagement"},
	}, s.handleLikeCounts)

	huma.Register(s.api, huma.Operation{
		OperationID: "commentCounts",
		Method:      http.MethodPost,
		Path:        "/api/v1/engagement/comment-counts",
		Summary:     "Comment counts",
		Description: "Returns the comment count of each video or post, zero included",
		Tags:        []string{"Engagement"},
	}, s.handleCommentCounts)
}

// === DTOs ===

// LikeCountsRequest lists the targets to count.
type LikeCountsRequest struct {
	Targets []domain.TargetRef `json:"targets" maxItems:"500" doc:"Targets to count"`
}

// LikeCountsInput wraps the like counts request for Huma.
type LikeCountsInput struct {
	Body LikeCountsRequest
}

// TargetCount is the like count of one target.
type TargetCount struct {
	Kind  domain.TargetKind `json:"kind" doc:"Target kind"`
	ID    string            `json:"id" doc:"Target ID"`
	Count int               `json:"count" doc:"Number of likes"`
}

// LikeCountsResponse lists counts in request order without duplicates.
type LikeCountsResponse struct {
	Counts []TargetCount `json:"counts" doc:"Counts in request order"`
}

// LikeCountsOutput wraps the like counts response for Huma.
type LikeCountsOutput struct {
	Body LikeCountsResponse
}

// CommentCountsRequest lists the videos or posts to count.
type CommentCountsRequest struct {
	Kind string   `json:"kind" enum:"video,post" doc:"Target kind"`
	IDs  []string `json:"ids" maxItems:"500" doc:"Target IDs"`
}

// CommentCountsInput wraps the comment counts request for Huma.
type CommentCountsInput struct {
	Body CommentCountsRequest
}

// CommentCountsResponse maps target IDs to comment counts.
type CommentCountsResponse struct {
	Counts map[string]int `json:"counts" doc:"Comment count per target ID"`
}

// CommentCountsOutput wraps the comment counts response for Huma.
type CommentCountsOutput struct {
	Body CommentCountsResponse
}

// === Handlers ===

func (s *Server) handleLikeCounts(ctx context.Context, input *LikeCountsInput) (*LikeCountsOutput, error) {
	counts, err := s.services.Engagement.LikeCounts(ctx, input.Body.Targets)
	if err != nil {
		return nil, err
	}

	resp := make([]TargetCount, 0, len(counts))
	seen := make(map[domain.TargetRef]bool, len(counts))
	for _, t := range input.Body.Targets {
		if seen[t] {
			continue
		}
		seen[t] = true
		resp = append(resp, TargetCount{Kind: t.Kind, ID: t.ID, Count: counts[t]})
	}
	return &LikeCountsOutput{Body: LikeCountsResponse{Counts: resp}}, nil
}

func (s *Server) handleCommentCounts(ctx context.Context, input *CommentCountsInput) (*CommentCountsOutput, error) {
	counts, err := s.services.Engagement.CommentCounts(ctx, domain.TargetKind(input.Body.Kind), input.Body.IDs)
	if err != nil {
		return nil, err
	}
	return &CommentCountsOutput{Body: CommentCountsResponse{Counts: counts}}, nil
}
