package service

import (
	"context"

	"github.com/reelhouse/reelhouse-server/internal/domain"
	"github.com/reelhouse/reelhouse-server/internal/store"
	"github.com/reelhouse/reelhouse-server/internal/view"
)

// detailCommentLimit bounds the comments embedded in a detail view. Longer
// threads are read through the comment listing.
const detailCommentLimit = 20

// detailView enriches one video with its owner, counts and first page of
// comments. The sampler and the video detail endpoint share it.
func detailView(ctx context.Context, st store.Store, v *domain.Video) (*domain.ContentView, error) {
	views, err := view.EnrichVideos(ctx, st, []domain.Video{*v}, view.StagesDetail)
	if err != nil {
		return nil, translate(err, "enrich video")
	}
	cv := views[0]

	comments, _, err := st.ListComments(ctx, domain.VideoRef(v.ID), view.Page{Number: 1, Limit: detailCommentLimit})
	if err != nil {
		return nil, translate(err, "list comments")
	}
	if err := view.AttachCommentLikes(ctx, st, comments); err != nil {
		return nil, translate(err, "count comment likes")
	}
	cv.Comments = comments
	return &cv, nil
}

// visibleTo reports whether actorID may see v.
func visibleTo(v *domain.Video, actorID string) bool {
	return v.IsPublished || (actorID != "" && v.OwnerID == actorID)
}

func newPage[T any](items []T, total int, p view.Page) *domain.Page[T] {
	return &domain.Page[T]{Items: items, TotalCount: total, Page: p.Number, Limit: p.Limit}
}
