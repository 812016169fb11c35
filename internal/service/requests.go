package service

// CreateUserRequest registers a channel. Credentials are handled by the
// auth collaborator and never reach this server.
type CreateUserRequest struct {
	Username   string `json:"username" validate:"required,username"`
	Email      string `json:"email" validate:"required,email,max=254"`
	FullName   string `json:"full_name" validate:"notblank,max=100"`
	Avatar     string `json:"avatar" validate:"required,url"`
	CoverImage string `json:"cover_image" validate:"omitempty,url"`
}

// CreateVideoRequest publishes video metadata. Media URLs are opaque.
type CreateVideoRequest struct {
	Title        string  `json:"title" validate:"notblank,max=200"`
	Description  string  `json:"description" validate:"max=5000"`
	VideoURL     string  `json:"video_url" validate:"required,url"`
	ThumbnailURL string  `json:"thumbnail_url" validate:"required,url"`
	Duration     float64 `json:"duration" validate:"gte=0"`
	IsPublished  bool    `json:"is_published"`
}

// CreatePostRequest creates a community post.
type CreatePostRequest struct {
	Content string `json:"content" validate:"notblank,max=2000"`
}

// CreateCommentRequest comments on a video or post.
type CreateCommentRequest struct {
	Content string `json:"content" validate:"notblank,max=1000"`
}

// CreatePlaylistRequest creates a playlist.
type CreatePlaylistRequest struct {
	Name        string `json:"name" validate:"notblank,max=100"`
	Description string `json:"description" validate:"max=1000"`
}
