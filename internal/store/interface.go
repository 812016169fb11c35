// Package store defines the persistence interface for the Reelhouse server.
package store

import (
	"context"

	"github.com/reelhouse/reelhouse-server/internal/domain"
	"github.com/reelhouse/reelhouse-server/internal/view"
)

// Store defines the interface for all persistence operations.
type Store interface {
	// Lifecycle
	Close() error
	Ping(ctx context.Context) error

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error

	// Videos
	CreateVideo(ctx context.Context, video *domain.Video) error
	GetVideo(ctx context.Context, id string) (*domain.Video, error)
	SetVideoPublished(ctx context.Context, id string, published bool) (*domain.Video, error)
	IncrementViews(ctx context.Context, id string) error
	DeleteVideo(ctx context.Context, id string) error
	ListAllVideos(ctx context.Context) ([]domain.Video, error)

	// Posts and comments
	CreatePost(ctx context.Context, post *domain.Post) error
	GetPost(ctx context.Context, id string) (*domain.Post, error)
	DeletePost(ctx context.Context, id string) error
	CreateComment(ctx context.Context, comment *domain.Comment) error
	GetComment(ctx context.Context, id string) (*domain.Comment, error)
	DeleteComment(ctx context.Context, id string) error

	// Relationship edges
	ToggleEdge(ctx context.Context, kind domain.EdgeKind, subjectID string, target domain.TargetRef) (domain.EdgeState, error)
	EdgeExists(ctx context.Context, kind domain.EdgeKind, subjectID string, target domain.TargetRef) (bool, error)
	TargetExists(ctx context.Context, target domain.TargetRef) (bool, error)

	// Watch history
	AddToWatchHistory(ctx context.Context, userID, videoID string) error
	RemoveFromWatchHistory(ctx context.Context, userID, videoID string) error
	ClearWatchHistory(ctx context.Context, userID string) (int, error)

	// Playlists
	CreatePlaylist(ctx context.Context, playlist *domain.Playlist) error
	GetPlaylist(ctx context.Context, id string) (*domain.Playlist, error)
	ListPlaylists(ctx context.Context, ownerID string) ([]domain.Playlist, error)
	AddPlaylistVideo(ctx context.Context, playlistID, videoID string) (*domain.PlaylistEntry, error)
	RemovePlaylistVideo(ctx context.Context, playlistID, videoID string) error
	DeletePlaylist(ctx context.Context, id string) error

	// Compiled view execution
	view.Reader
	ListVideos(ctx context.Context, q view.ContentQuery) ([]domain.Video, int, error)
	SampleVideo(ctx context.Context, f view.ContentFilter) (*domain.Video, error)
	ListWatchHistory(ctx context.Context, userID string, p view.Page) ([]domain.HistoryEntry, int, error)
	ListLikedVideos(ctx context.Context, userID string, p view.Page) ([]domain.Video, int, error)
	ListLikedPosts(ctx context.Context, userID string, p view.Page) ([]domain.Post, int, error)
	ListPostsByOwner(ctx context.Context, ownerID string, p view.Page) ([]domain.Post, int, error)
	ListComments(ctx context.Context, target domain.TargetRef, p view.Page) ([]domain.CommentView, int, error)
	ListSubscribers(ctx context.Context, channelID string, p view.Page) ([]domain.ConnectionView, int, error)
	ListSubscriptions(ctx context.Context, subscriberID string, p view.Page) ([]domain.ConnectionView, int, error)
	ListPlaylistVideos(ctx context.Context, playlistID string) ([]domain.Video, error)
	GetChannelProfile(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, error)
	GetChannelStats(ctx context.Context, channelID string) (*domain.ChannelStats, error)
}
