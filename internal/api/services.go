package api

import (
	"github.com/reelhouse/reelhouse-server/internal/service"
)

// Services groups all business logic services used by the API server.
type Services struct {
	Users      *service.UserService
	Edges      *service.EdgeService
	Feed       *service.FeedService
	Recommend  *service.RecommendationService
	Engagement *service.EngagementService
	Channels   *service.ChannelService
	Content    *service.ContentService
	Playlists  *service.PlaylistService
}
