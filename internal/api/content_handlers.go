package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/reelhouse/reelhouse-server/internal/domain"
	"github.com/reelhouse/reelhouse-server/internal/service"
)

func (s *Server) registerVideoRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createVideo",
		Method:        http.MethodPost,
		Path:          "/api/v1/videos",
		Summary:       "Create video",
		Description:   "Creates a video owned by the caller and indexes it for text search",
		Tags:          []string{"Videos"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateVideo)

	huma.Register(s.api, huma.Operation{
		OperationID: "getVideo",
		Method:      http.MethodGet,
		Path:        "/api/v1/videos/{id}",
		Summary:     "Get video",
		Description: "Returns a video with its owner, like and comment counts and the first page of comments",
		Tags:        []string{"Videos"},
	}, s.handleGetVideo)

	huma.Register(s.api, huma.Operation{
		OperationID: "togglePublish",
		Method:      http.MethodPatch,
		Path:        "/api/v1/videos/{id}/publish",
		Summary:     "Toggle publish",
		Description: "Flips the publication flag of a video the caller owns",
		Tags:        []string{"Videos"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleTogglePublish)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteVideo",
		Method:        http.MethodDelete,
		Path:          "/api/v1/videos/{id}",
		Summary:       "Delete video",
		Description:   "Deletes a video the caller owns together with its comments, likes and history entries",
		Tags:          []string{"Videos"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteVideo)

	huma.Register(s.api, huma.Operation{
		OperationID:   "recordPlayback",
		Method:        http.MethodPost,
		Path:          "/api/v1/videos/{id}/play",
		Summary:       "Record playback",
		Description:   "Counts a view and adds the video to the caller's watch history",
		Tags:          []string{"Videos"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, s.handleRecordPlayback)
}

func (s *Server) registerPostRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createPost",
		Method:        http.MethodPost,
		Path:          "/api/v1/posts",
		Summary:       "Create post",
		Description:   "Creates a community post owned by the caller",
		Tags:          []string{"Posts"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreatePost)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deletePost",
		Method:        http.MethodDelete,
		Path:          "/api/v1/posts/{id}",
		Summary:       "Delete post",
		Description:   "Deletes a post the caller owns",
		Tags:          []string{"Posts"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeletePost)

	huma.Register(s.api, huma.Operation{
		OperationID: "channelPosts",
		Method:      http.MethodGet,
		Path:        "/api/v1/channels/{id}/posts",
		Summary:     "Channel posts",
		Description: "Returns a channel's posts with like counts, newest first",
		Tags:        []string{"Posts"},
	}, s.handleChannelPosts)
}

func (s *Server) registerCommentRoutes() {
	for _, kind := range []domain.TargetKind{domain.TargetVideo, domain.TargetPost} {
		tag := string(kind) + "s"
		base := "/api/v1/" + tag + "/{id}/comments"

		huma.Register(s.api, huma.Operation{
			OperationID: "list" + capitalize(string(kind)) + "Comments",
			Method:      http.MethodGet,
			Path:        base,
			Summary:     "List " + string(kind) + " comments",
			Description: "Returns comments with owner projections and like counts, newest first",
			Tags:        []string{"Comments"},
		}, s.listComments(kind))

		huma.Register(s.api, huma.Operation{
			OperationID:   "create" + capitalize(string(kind)) + "Comment",
			Method:        http.MethodPost,
			Path:          base,
			Summary:       "Comment on a " + string(kind),
			Description:   "Adds a comment owned by the caller",
			Tags:          []string{"Comments"},
			Security:      []map[string][]string{{"bearer": {}}},
			DefaultStatus: http.StatusCreated,
		}, s.createComment(kind))
	}

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteComment",
		Method:        http.MethodDelete,
		Path:          "/api/v1/comments/{id}",
		Summary:       "Delete comment",
		Description:   "Deletes a comment the caller owns",
		Tags:          []string{"Comments"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteComment)
}

// === DTOs ===

// CreateVideoRequest is the request body for creating a video.
type CreateVideoRequest struct {
	Title        string  `json:"title" doc:"Video title"`
	Description  string  `json:"description,omitempty" doc:"Video description"`
	VideoURL     string  `json:"video_url" doc:"Playable media URL"`
	ThumbnailURL string  `json:"thumbnail_url" doc:"Thumbnail image URL"`
	Duration     float64 `json:"duration,omitempty" doc:"Duration in seconds"`
	IsPublished  bool    `json:"is_published,omitempty" doc:"Publish immediately"`
}

// CreateVideoInput wraps the create video request for Huma.
type CreateVideoInput struct {
	Body CreateVideoRequest
}

// VideoOutput wraps a video for Huma.
type VideoOutput struct {
	Body *domain.Video
}

// IDInput identifies an entity by path ID.
type IDInput struct {
	ID string `path:"id" doc:"Entity ID"`
}

// CreatePostRequest is the request body for creating a post.
type CreatePostRequest struct {
	Content string `json:"content" doc:"Post text"`
}

// CreatePostInput wraps the create post request for Huma.
type CreatePostInput struct {
	Body CreatePostRequest
}

// PostOutput wraps a post for Huma.
type PostOutput struct {
	Body *domain.Post
}

// CreateCommentRequest is the request body for creating a comment.
type CreateCommentRequest struct {
	Content string `json:"content" doc:"Comment text"`
}

// CreateCommentInput wraps the create comment request for Huma.
type CreateCommentInput struct {
	ID   string `path:"id" doc:"Video or post ID"`
	Body CreateCommentRequest
}

// CommentOutput wraps a comment view for Huma.
type CommentOutput struct {
	Body *domain.CommentView
}

// CommentsInput identifies a commentable target and a page.
type CommentsInput struct {
	ID string `path:"id" doc:"Video or post ID"`
	PageParams
}

// CommentsOutput wraps a page of comments for Huma.
type CommentsOutput struct {
	Body *domain.Page[domain.CommentView]
}

// === Handlers ===

func (s *Server) handleCreateVideo(ctx context.Context, input *CreateVideoInput) (*VideoOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	v, err := s.services.Content.CreateVideo(ctx, userID, service.CreateVideoRequest{
		Title:        input.Body.Title,
		Description:  input.Body.Description,
		VideoURL:     input.Body.VideoURL,
		ThumbnailURL: input.Body.ThumbnailURL,
		Duration:     input.Body.Duration,
		IsPublished:  input.Body.IsPublished,
	})
	if err != nil {
		return nil, err
	}
	return &VideoOutput{Body: v}, nil
}

func (s *Server) handleGetVideo(ctx context.Context, input *IDInput) (*ContentViewOutput, error) {
	v, err := s.services.Content.VideoDetail(ctx, actorID(ctx), input.ID)
	if err != nil {
		return nil, err
	}
	return &ContentViewOutput{Body: v}, nil
}

func (s *Server) handleTogglePublish(ctx context.Context, input *IDInput) (*VideoOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	v, err := s.services.Content.TogglePublish(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}
	return &VideoOutput{Body: v}, nil
}

func (s *Server) handleDeleteVideo(ctx context.Context, input *IDInput) (*struct{}, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Content.DeleteVideo(ctx, userID, input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *Server) handleRecordPlayback(ctx context.Context, input *IDInput) (*struct{}, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Channels.RecordPlayback(ctx, userID, input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *Server) handleCreatePost(ctx context.Context, input *CreatePostInput) (*PostOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.services.Content.CreatePost(ctx, userID, service.CreatePostRequest{Content: input.Body.Content})
	if err != nil {
		return nil, err
	}
	return &PostOutput{Body: p}, nil
}

func (s *Server) handleDeletePost(ctx context.Context, input *IDInput) (*struct{}, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Content.DeletePost(ctx, userID, input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *Server) handleChannelPosts(ctx context.Context, input *ChannelPageInput) (*PostsOutput, error) {
	page, err := s.services.Content.UserPosts(ctx, input.ID, input.Page, input.Limit)
	if err != nil {
		return nil, err
	}
	return &PostsOutput{Body: page}, nil
}

func (s *Server) listComments(kind domain.TargetKind) func(context.Context, *CommentsInput) (*CommentsOutput, error) {
	return func(ctx context.Context, input *CommentsInput) (*CommentsOutput, error) {
		target := domain.TargetRef{Kind: kind, ID: input.ID}
		page, err := s.services.Content.Comments(ctx, actorID(ctx), target, input.Page, input.Limit)
		if err != nil {
			return nil, err
		}
		return &CommentsOutput{Body: page}, nil
	}
}

func (s *Server) createComment(kind domain.TargetKind) func(context.Context, *CreateCommentInput) (*CommentOutput, error) {
	return func(ctx context.Context, input *CreateCommentInput) (*CommentOutput, error) {
		userID, err := GetUserID(ctx)
		if err != nil {
			return nil, err
		}

		target := domain.TargetRef{Kind: kind, ID: input.ID}
		c, err := s.services.Content.CreateComment(ctx, userID, target, service.CreateCommentRequest{Content: input.Body.Content})
		if err != nil {
			return nil, err
		}
		return &CommentOutput{Body: c}, nil
	}
}

func (s *Server) handleDeleteComment(ctx context.Context, input *IDInput) (*struct{}, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Content.DeleteComment(ctx, userID, input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}
