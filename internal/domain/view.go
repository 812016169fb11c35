package domain

import "time"

// ContentView is a video enriched with its owner projection and engagement counts.
// Owner is nil when the owner row no longer exists. Comments is only populated
// for detail views.
type ContentView struct {
	Video
	Owner        *OwnerSummary `json:"owner"`
	LikeCount    int           `json:"like_count"`
	CommentCount int           `json:"comment_count"`
	Comments     []CommentView `json:"comments,omitempty"`
}

// CommentView is a comment with its owner projection and like count.
type CommentView struct {
	Comment
	Owner     *OwnerSummary `json:"owner"`
	LikeCount int           `json:"like_count"`
}

// PostView is a community post with its owner projection and like count.
type PostView struct {
	Post
	Owner     *OwnerSummary `json:"owner"`
	LikeCount int           `json:"like_count"`
}

// ChannelProfile is the public view of a user's channel as seen by a viewer.
type ChannelProfile struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	FullName         string    `json:"full_name"`
	Avatar           string    `json:"avatar"`
	CoverImage       string    `json:"cover_image,omitempty"`
	SubscribersCount int       `json:"subscribers_count"`
	SubscribedTo     int       `json:"subscribed_to_count"`
	IsSubscribed     bool      `json:"is_subscribed"`
	CreatedAt        time.Time `json:"created_at"`
}

// ChannelStats aggregates a channel's audience and engagement.
type ChannelStats struct {
	ChannelID          string `json:"channel_id"`
	SubscribersCount   int    `json:"subscribers_count"`
	SubscriptionsCount int    `json:"subscriptions_count"`
	VideoCount         int    `json:"video_count"`
	TotalViews         int64  `json:"total_views"`
	TotalLikes         int    `json:"total_likes"` // likes received on the channel's videos and posts
	PostCount          int    `json:"post_count"`
}

// ConnectionView is one side of a subscription edge projected for listings.
type ConnectionView struct {
	User         OwnerSummary `json:"user"`
	SubscribedAt time.Time    `json:"subscribed_at"`
}

// HistoryEntry is a watch-history video with the time it was added.
type HistoryEntry struct {
	ContentView
	WatchedAt time.Time `json:"watched_at"`
}

// PlaylistView is a playlist with its ordered, owner-projected videos.
type PlaylistView struct {
	Playlist
	Owner  *OwnerSummary `json:"owner"`
	Videos []ContentView `json:"videos"`
}

// Page is one page of a listing plus the total count of the same predicate.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"total_count"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
}

// FeedPage is a page of content views.
type FeedPage = Page[ContentView]
