package domain

// Video is the content item that feeds and the sampler operate on.
type Video struct {
	Entity
	OwnerID      string  `json:"owner_id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	VideoURL     string  `json:"video_url"`
	ThumbnailURL string  `json:"thumbnail_url"`
	Duration     float64 `json:"duration"` // seconds
	Views        int64   `json:"views"`
	IsPublished  bool    `json:"is_published"`
}

// Ref returns the like target for this video.
func (v *Video) Ref() TargetRef { return TargetRef{Kind: TargetVideo, ID: v.ID} }

// Post is a community post. Posts have no publication flag.
type Post struct {
	Entity
	OwnerID string `json:"owner_id"`
	Content string `json:"content"`
}

// Ref returns the like target for this post.
func (p *Post) Ref() TargetRef { return TargetRef{Kind: TargetPost, ID: p.ID} }

// Comment is attached to exactly one video or post.
type Comment struct {
	Entity
	OwnerID string    `json:"owner_id"`
	Target  TargetRef `json:"target"`
	Content string    `json:"content"`
}

// Ref returns the like target for this comment.
func (c *Comment) Ref() TargetRef { return TargetRef{Kind: TargetComment, ID: c.ID} }
