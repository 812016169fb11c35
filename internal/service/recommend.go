package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/reelhouse/reelhouse-server/internal/domain"
	domainerrors "github.com/reelhouse/reelhouse-server/internal/errors"
	"github.com/reelhouse/reelhouse-server/internal/metrics"
	"github.com/reelhouse/reelhouse-server/internal/store"
	"github.com/reelhouse/reelhouse-server/internal/view"
)

// RecommendationService samples the next video for an actor.
type RecommendationService struct {
	store       store.Store
	markSampled bool
	logger      *slog.Logger
}

// NewRecommendationService creates a new recommendation service. When
// markSampled is set, every sampled video is added to the actor's watch
// history so consecutive calls do not repeat.
func NewRecommendationService(store store.Store, markSampled bool, logger *slog.Logger) *RecommendationService {
	return &RecommendationService{
		store:       store,
		markSampled: markSampled,
		logger:      logger,
	}
}

// Next returns one published video the actor has not watched, chosen
// uniformly at random, enriched like the video detail view.
//
// When every published video is in the actor's history, the history is
// cleared and Next returns NotFound; the following call samples from the
// full catalog again.
//
// The reset is best-effort. Two concurrent calls that both find the catalog
// exhausted may both clear the history and then sample the same video.
func (s *RecommendationService) Next(ctx context.Context, actorID string) (*domain.ContentView, error) {
	if actorID == "" {
		return nil, domainerrors.Unauthorized("recommendations require an acting user")
	}

	v, err := s.store.SampleVideo(ctx, view.ContentFilter{
		PublishedOnly:    true,
		ExcludeWatchedBy: actorID,
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil, s.reset(ctx, actorID)
	}
	if err != nil {
		return nil, translate(err, "sample video")
	}

	cv, err := detailView(ctx, s.store, v)
	if err != nil {
		return nil, err
	}

	// Only a video that is actually returned counts as watched.
	if s.markSampled {
		if err := s.store.AddToWatchHistory(ctx, actorID, v.ID); err != nil {
			return nil, translate(err, "record sampled video")
		}
	}
	metrics.RecordSample()
	return cv, nil
}

// reset clears the exhausted history and reports NotFound.
func (s *RecommendationService) reset(ctx context.Context, actorID string) error {
	cleared, err := s.store.ClearWatchHistory(ctx, actorID)
	if err != nil {
		return translate(err, "reset watch history")
	}
	metrics.RecordSamplerReset()
	s.logger.Info("recommendations exhausted, watch history reset",
		"user_id", actorID,
		"cleared", cleared,
	)
	return domainerrors.NotFound("no unwatched videos left; watch history has been reset")
}
