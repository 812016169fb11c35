package service

import (
	"context"

	"github.com/reelhouse/reelhouse-server/internal/domain"
	"github.com/reelhouse/reelhouse-server/internal/search"
)

// VideoIndex is the free-text index over videos. *search.SearchIndex implements it.
type VideoIndex interface {
	MatchIDs(ctx context.Context, text string) ([]string, error)
	IndexVideo(doc *search.VideoDocument) error
	DeleteVideo(id string) error
	Rebuild(docs []*search.VideoDocument) error
}

// StatsCache caches channel stats. *cache.Cache implements it; a nil
// *cache.Cache is a valid disabled cache.
type StatsCache interface {
	ChannelStats(channelID string) (*domain.ChannelStats, bool)
	PutChannelStats(stats *domain.ChannelStats) error
	InvalidateChannel(channelIDs ...string) error
}
