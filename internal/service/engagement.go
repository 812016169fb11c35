package service

import (
	"context"
	"log/slog"

	"github.com/reelhouse/reelhouse-server/internal/domain"
	domainerrors "github.com/reelhouse/reelhouse-server/internal/errors"
	"github.com/reelhouse/reelhouse-server/internal/metrics"
	"github.com/reelhouse/reelhouse-server/internal/store"
)

// EngagementService counts likes and comments and aggregates channel stats.
type EngagementService struct {
	store  store.Store
	cache  StatsCache
	logger *slog.Logger
}

// NewEngagementService creates a new engagement service.
func NewEngagementService(store store.Store, cache StatsCache, logger *slog.Logger) *EngagementService {
	return &EngagementService{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// LikeCounts returns the like count of every target, including zero counts.
// Targets may mix kinds; each kind is counted with one grouped read.
func (s *EngagementService) LikeCounts(ctx context.Context, targets []domain.TargetRef) (map[domain.TargetRef]int, error) {
	byKind := make(map[domain.TargetKind][]string)
	counts := make(map[domain.TargetRef]int, len(targets))
	for _, t := range targets {
		if err := t.Validate(); err != nil {
			return nil, domainerrors.Validation(err.Error())
		}
		if !domain.EdgeLike.Accepts(t.Kind) {
			return nil, domainerrors.Validationf("a %s cannot be liked", t.Kind)
		}
		if _, seen := counts[t]; !seen {
			counts[t] = 0
			byKind[t.Kind] = append(byKind[t.Kind], t.ID)
		}
	}

	for kind, ids := range byKind {
		got, err := s.store.LikeCounts(ctx, kind, ids)
		if err != nil {
			return nil, translate(err, "count likes")
		}
		for id, n := range got {
			counts[domain.TargetRef{Kind: kind, ID: id}] = n
		}
	}
	return counts, nil
}

// CommentCounts returns the comment count of every video or post in ids.
func (s *EngagementService) CommentCounts(ctx context.Context, kind domain.TargetKind, ids []string) (map[string]int, error) {
	if !kind.Commentable() {
		return nil, domainerrors.Validationf("a %s has no comments", kind)
	}
	got, err := s.store.CommentCounts(ctx, kind, ids)
	if err != nil {
		return nil, translate(err, "count comments")
	}
	counts := make(map[string]int, len(ids))
	for _, id := range ids {
		counts[id] = got[id]
	}
	return counts, nil
}

// ChannelStats returns a channel's audience and engagement totals. Results
// are cached until the TTL lapses or a subscription to or from the channel
// toggles; like totals may lag by up to one TTL.
func (s *EngagementService) ChannelStats(ctx context.Context, channelID string) (*domain.ChannelStats, error) {
	if channelID == "" {
		return nil, domainerrors.Validation("channel id is required")
	}

	if stats, ok := s.cache.ChannelStats(channelID); ok {
		metrics.RecordCacheLookup("channel_stats", true)
		return stats, nil
	}
	metrics.RecordCacheLookup("channel_stats", false)

	stats, err := s.store.GetChannelStats(ctx, channelID)
	if err != nil {
		return nil, translate(err, "channel stats")
	}
	if err := s.cache.PutChannelStats(stats); err != nil {
		s.logger.Warn("failed to cache channel stats", "channel_id", channelID, "error", err)
	}
	return stats, nil
}
