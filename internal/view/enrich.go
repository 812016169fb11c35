package view

import (
	"context"
	"fmt"

	"github.com/reelhouse/reelhouse-server/internal/domain"
)

// Reader executes the batched join stages. The SQLite store implements it.
type Reader interface {
	OwnerSummaries(ctx context.Context, ids []string) (map[string]*domain.OwnerSummary, error)
	LikeCounts(ctx context.Context, kind domain.TargetKind, ids []string) (map[string]int, error)
	CommentCounts(ctx context.Context, kind domain.TargetKind, ids []string) (map[string]int, error)
}

// Stage selects the enrichment joins applied to a page of videos.
type Stage uint8

const (
	StageOwner Stage = 1 << iota
	StageLikeCount
	StageCommentCount

	// StagesListing is what feeds and listings attach.
	StagesListing = StageOwner | StageLikeCount
	// StagesDetail is what the detail view and the sampler attach, before comments.
	StagesDetail = StageOwner | StageLikeCount | StageCommentCount
)

// EnrichVideos attaches the requested stages to an already-paged slice.
// Order is preserved and the result is never nil.
func EnrichVideos(ctx context.Context, r Reader, videos []domain.Video, stages Stage) ([]domain.ContentView, error) {
	out := make([]domain.ContentView, len(videos))
	if len(videos) == 0 {
		return out, nil
	}

	ids := make([]string, len(videos))
	ownerIDs := make([]string, 0, len(videos))
	seen := make(map[string]bool, len(videos))
	for i, v := range videos {
		ids[i] = v.ID
		if !seen[v.OwnerID] {
			seen[v.OwnerID] = true
			ownerIDs = append(ownerIDs, v.OwnerID)
		}
	}

	var (
		owners   map[string]*domain.OwnerSummary
		likes    map[string]int
		comments map[string]int
		err      error
	)
	if stages&StageOwner != 0 {
		if owners, err = r.OwnerSummaries(ctx, ownerIDs); err != nil {
			return nil, fmt.Errorf("owner join: %w", err)
		}
	}
	if stages&StageLikeCount != 0 {
		if likes, err = r.LikeCounts(ctx, domain.TargetVideo, ids); err != nil {
			return nil, fmt.Errorf("like count join: %w", err)
		}
	}
	if stages&StageCommentCount != 0 {
		if comments, err = r.CommentCounts(ctx, domain.TargetVideo, ids); err != nil {
			return nil, fmt.Errorf("comment count join: %w", err)
		}
	}

	for i, v := range videos {
		out[i] = domain.ContentView{
			Video:        v,
			Owner:        owners[v.OwnerID],
			LikeCount:    likes[v.ID],
			CommentCount: comments[v.ID],
		}
	}
	return out, nil
}

// EnrichPosts attaches owner projections and like counts to posts.
func EnrichPosts(ctx context.Context, r Reader, posts []domain.Post) ([]domain.PostView, error) {
	out := make([]domain.PostView, len(posts))
	if len(posts) == 0 {
		return out, nil
	}

	ids := make([]string, len(posts))
	ownerIDs := make([]string, 0, len(posts))
	seen := make(map[string]bool, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
		if !seen[p.OwnerID] {
			seen[p.OwnerID] = true
			ownerIDs = append(ownerIDs, p.OwnerID)
		}
	}

	owners, err := r.OwnerSummaries(ctx, ownerIDs)
	if err != nil {
		return nil, fmt.Errorf("owner join: %w", err)
	}
	likes, err := r.LikeCounts(ctx, domain.TargetPost, ids)
	if err != nil {
		return nil, fmt.Errorf("like count join: %w", err)
	}

	for i, p := range posts {
		out[i] = domain.PostView{Post: p, Owner: owners[p.OwnerID], LikeCount: likes[p.ID]}
	}
	return out, nil
}

// AttachCommentLikes fills LikeCount on comments that already carry their owner projection.
func AttachCommentLikes(ctx context.Context, r Reader, comments []domain.CommentView) error {
	if len(comments) == 0 {
		return nil
	}
	ids := make([]string, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
	}
	likes, err := r.LikeCounts(ctx, domain.TargetComment, ids)
	if err != nil {
		return fmt.Errorf("comment like join: %w", err)
	}
	for i := range comments {
		comments[i].LikeCount = likes[comments[i].ID]
	}
	return nil
}
