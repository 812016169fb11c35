package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/reelhouse/reelhouse-server/internal/domain"
	domainerrors "github.com/reelhouse/reelhouse-server/internal/errors"
	"github.com/reelhouse/reelhouse-server/internal/id"
	"github.com/reelhouse/reelhouse-server/internal/search"
	"github.com/reelhouse/reelhouse-server/internal/store"
	"github.com/reelhouse/reelhouse-server/internal/validation"
	"github.com/reelhouse/reelhouse-server/internal/view"
)

// ContentService creates and reads videos, posts and comments, and keeps the
// search index in step with stored videos.
type ContentService struct {
	store     store.Store
	index     VideoIndex
	validator *validation.Validator
	limits    view.Limits
	logger    *slog.Logger
}

// NewContentService creates a new content service.
func NewContentService(
	store store.Store,
	index VideoIndex,
	validator *validation.Validator,
	limits view.Limits,
	logger *slog.Logger,
) *ContentService {
	return &ContentService{
		store:     store,
		index:     index,
		validator: validator,
		limits:    limits,
		logger:    logger,
	}
}

func (s *ContentService) requireActor(ctx context.Context, actorID string) error {
	if actorID == "" {
		return domainerrors.Unauthorized("an acting user is required")
	}
	if _, err := s.store.GetUser(ctx, actorID); err != nil {
		return translate(err, "user "+actorID)
	}
	return nil
}

// CreateVideo stores a video owned by actorID and indexes it for search.
// An indexing failure is logged; the video stays stored and is picked up by
// the next Reindex.
func (s *ContentService) CreateVideo(ctx context.Context, actorID string, req CreateVideoRequest) (*domain.Video, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if err := s.requireActor(ctx, actorID); err != nil {
		return nil, err
	}

	videoID, err := id.Generate(id.PrefixVideo)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "generate video id")
	}
	v := &domain.Video{
		Entity:       domain.Entity{ID: videoID},
		OwnerID:      actorID,
		Title:        req.Title,
		Description:  req.Description,
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
		Duration:     req.Duration,
		IsPublished:  req.IsPublished,
	}
	v.InitTimestamps()

	if err := s.store.CreateVideo(ctx, v); err != nil {
		return nil, translate(err, "create video")
	}
	if err := s.index.IndexVideo(search.NewVideoDocument(v)); err != nil {
		s.logger.Warn("failed to index video", "video_id", v.ID, "error", err)
	}
	return v, nil
}

// ownedVideo loads a video and checks that actorID owns it.
func (s *ContentService) ownedVideo(ctx context.Context, actorID, videoID string) (*domain.Video, error) {
	v, err := s.store.GetVideo(ctx, videoID)
	if err != nil {
		return nil, translate(err, "video "+videoID)
	}
	if v.OwnerID != actorID {
		if !v.IsPublished {
			return nil, domainerrors.NotFoundf("video %s not found", videoID)
		}
		return nil, domainerrors.Forbidden("only the owner can change this video")
	}
	return v, nil
}

// TogglePublish flips a video's publication flag. Only the owner may do so.
func (s *ContentService) TogglePublish(ctx context.Context, actorID, videoID string) (*domain.Video, error) {
	v, err := s.ownedVideo(ctx, actorID, videoID)
	if err != nil {
		return nil, err
	}
	updated, err := s.store.SetVideoPublished(ctx, videoID, !v.IsPublished)
	if err != nil {
		return nil, translate(err, "update video")
	}
	return updated, nil
}

// DeleteVideo removes a video with its likes and comments, and drops it
// from the search index.
func (s *ContentService) DeleteVideo(ctx context.Context, actorID, videoID string) error {
	if _, err := s.ownedVideo(ctx, actorID, videoID); err != nil {
		return err
	}
	if err := s.store.DeleteVideo(ctx, videoID); err != nil {
		return translate(err, "delete video")
	}
	if err := s.index.DeleteVideo(videoID); err != nil {
		s.logger.Warn("failed to remove video from index", "video_id", videoID, "error", err)
	}
	return nil
}

// VideoDetail returns the detail view of a video: owner, like and comment
// counts and the first page of comments. Unpublished videos are visible to
// their owner only.
func (s *ContentService) VideoDetail(ctx context.Context, actorID, videoID string) (*domain.ContentView, error) {
	v, err := s.store.GetVideo(ctx, videoID)
	if err != nil {
		return nil, translate(err, "video "+videoID)
	}
	if !visibleTo(v, actorID) {
		return nil, domainerrors.NotFoundf("video %s not found", videoID)
	}
	return detailView(ctx, s.store, v)
}

// CreatePost stores a community post owned by actorID.
func (s *ContentService) CreatePost(ctx context.Context, actorID string, req CreatePostRequest) (*domain.Post, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if err := s.requireActor(ctx, actorID); err != nil {
		return nil, err
	}

	postID, err := id.Generate(id.PrefixPost)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "generate post id")
	}
	p := &domain.Post{Entity: domain.Entity{ID: postID}, OwnerID: actorID, Content: strings.TrimSpace(req.Content)}
	p.InitTimestamps()

	if err := s.store.CreatePost(ctx, p); err != nil {
		return nil, translate(err, "create post")
	}
	return p, nil
}

// DeletePost removes a post owned by actorID.
func (s *ContentService) DeletePost(ctx context.Context, actorID, postID string) error {
	p, err := s.store.GetPost(ctx, postID)
	if err != nil {
		return translate(err, "post "+postID)
	}
	if p.OwnerID != actorID {
		return domainerrors.Forbidden("only the owner can delete this post")
	}
	if err := s.store.DeletePost(ctx, postID); err != nil {
		return translate(err, "delete post")
	}
	return nil
}

// UserPosts lists a user's community posts with like counts, newest first.
func (s *ContentService) UserPosts(ctx context.Context, ownerID, page, limit string) (*domain.Page[domain.PostView], error) {
	if _, err := s.store.GetUser(ctx, ownerID); err != nil {
		return nil, translate(err, "user "+ownerID)
	}
	p := view.ParsePage(page, limit, s.limits)
	posts, total, err := s.store.ListPostsByOwner(ctx, ownerID, p)
	if err != nil {
		return nil, translate(err, "list posts")
	}
	items, err := view.EnrichPosts(ctx, s.store, posts)
	if err != nil {
		return nil, translate(err, "enrich posts")
	}
	return newPage(items, total, p), nil
}

// checkCommentTarget verifies a comment target exists and is visible.
func (s *ContentService) checkCommentTarget(ctx context.Context, actorID string, target domain.TargetRef) error {
	if err := target.Validate(); err != nil {
		return domainerrors.Validation(err.Error())
	}
	if !target.Kind.Commentable() {
		return domainerrors.Validationf("cannot comment on a %s", target.Kind)
	}
	if target.Kind == domain.TargetVideo {
		v, err := s.store.GetVideo(ctx, target.ID)
		if err != nil {
			return translate(err, "video "+target.ID)
		}
		if !visibleTo(v, actorID) {
			return domainerrors.NotFoundf("video %s not found", target.ID)
		}
		return nil
	}
	ok, err := s.store.TargetExists(ctx, target)
	if err != nil {
		return translate(err, "resolve comment target")
	}
	if !ok {
		return domainerrors.NotFoundf("%s %s not found", target.Kind, target.ID)
	}
	return nil
}

// CreateComment attaches a comment by actorID to a video or post.
func (s *ContentService) CreateComment(ctx context.Context, actorID string, target domain.TargetRef, req CreateCommentRequest) (*domain.CommentView, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if err := s.requireActor(ctx, actorID); err != nil {
		return nil, err
	}
	if err := s.checkCommentTarget(ctx, actorID, target); err != nil {
		return nil, err
	}

	commentID, err := id.Generate(id.PrefixComment)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "generate comment id")
	}
	c := &domain.Comment{
		Entity:  domain.Entity{ID: commentID},
		OwnerID: actorID,
		Target:  target,
		Content: strings.TrimSpace(req.Content),
	}
	c.InitTimestamps()

	// The store re-checks the target in the insert, so a target deleted
	// since checkCommentTarget still yields NotFound.
	if err := s.store.CreateComment(ctx, c); err != nil {
		return nil, translate(err, "create comment")
	}

	owners, err := s.store.OwnerSummaries(ctx, []string{actorID})
	if err != nil {
		return nil, translate(err, "comment owner")
	}
	return &domain.CommentView{Comment: *c, Owner: owners[actorID]}, nil
}

// DeleteComment removes a comment. The comment owner may delete it.
func (s *ContentService) DeleteComment(ctx context.Context, actorID, commentID string) error {
	c, err := s.store.GetComment(ctx, commentID)
	if err != nil {
		return translate(err, "comment "+commentID)
	}
	if c.OwnerID != actorID {
		return domainerrors.Forbidden("only the author can delete this comment")
	}
	if err := s.store.DeleteComment(ctx, commentID); err != nil {
		return translate(err, "delete comment")
	}
	return nil
}

// Comments lists comments on a video or post, newest first, with owners and
// like counts.
func (s *ContentService) Comments(ctx context.Context, actorID string, target domain.TargetRef, page, limit string) (*domain.Page[domain.CommentView], error) {
	if err := s.checkCommentTarget(ctx, actorID, target); err != nil {
		return nil, err
	}
	p := view.ParsePage(page, limit, s.limits)
	comments, total, err := s.store.ListComments(ctx, target, p)
	if err != nil {
		return nil, translate(err, "list comments")
	}
	if err := view.AttachCommentLikes(ctx, s.store, comments); err != nil {
		return nil, translate(err, "count comment likes")
	}
	return newPage(comments, total, p), nil
}

// Reindex rebuilds the search index from every stored video.
func (s *ContentService) Reindex(ctx context.Context) (int, error) {
	videos, err := s.store.ListAllVideos(ctx)
	if err != nil {
		return 0, translate(err, "list videos")
	}
	docs := make([]*search.VideoDocument, len(videos))
	for i := range videos {
		docs[i] = search.NewVideoDocument(&videos[i])
	}
	if err := s.index.Rebuild(docs); err != nil {
		return 0, domainerrors.Wrap(err, domainerrors.CodeInternal, "rebuild search index")
	}
	return len(docs), nil
}
