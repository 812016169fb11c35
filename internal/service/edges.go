package service

import (
	"context"
	"log/slog"

	"github.com/reelhouse/reelhouse-server/internal/domain"
	domainerrors "github.com/reelhouse/reelhouse-server/internal/errors"
	"github.com/reelhouse/reelhouse-server/internal/metrics"
	"github.com/reelhouse/reelhouse-server/internal/store"
)

// EdgeService toggles and reads like and subscription edges.
type EdgeService struct {
	store  store.Store
	cache  StatsCache
	logger *slog.Logger
}

// NewEdgeService creates a new edge service.
func NewEdgeService(store store.Store, cache StatsCache, logger *slog.Logger) *EdgeService {
	return &EdgeService{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// checkEdge rejects malformed edge requests before they reach the store.
func checkEdge(kind domain.EdgeKind, subjectID string, target domain.TargetRef) error {
	if !kind.Valid() {
		return domainerrors.Validationf("unknown edge kind %q", kind)
	}
	if subjectID == "" {
		return domainerrors.Unauthorized("an acting user is required")
	}
	if err := target.Validate(); err != nil {
		return domainerrors.Validation(err.Error())
	}
	if !kind.Accepts(target.Kind) {
		return domainerrors.Validationf("a %s cannot target a %s", kind, target.Kind)
	}
	if kind == domain.EdgeSubscription && target.ID == subjectID {
		return domainerrors.Validation("cannot subscribe to your own channel")
	}
	return nil
}

// Toggle flips the edge between subjectID and target: an absent edge is
// created and a present one removed. The returned state carries the edge
// that was created or removed.
//
// A target that does not exist yields NotFound and creates nothing. A toggle
// that kept losing races to concurrent toggles of the same pair yields
// Conflict; the caller may retry.
func (s *EdgeService) Toggle(ctx context.Context, kind domain.EdgeKind, subjectID string, target domain.TargetRef) (*domain.EdgeState, error) {
	if err := checkEdge(kind, subjectID, target); err != nil {
		metrics.RecordToggleFailure(string(kind), errorCode(err))
		return nil, err
	}

	if err := s.checkVisible(ctx, subjectID, target); err != nil {
		metrics.RecordToggleFailure(string(kind), errorCode(err))
		return nil, err
	}

	state, err := s.store.ToggleEdge(ctx, kind, subjectID, target)
	if err != nil {
		err = translate(err, "toggle "+string(kind))
		metrics.RecordToggleFailure(string(kind), errorCode(err))
		return nil, err
	}
	metrics.RecordToggle(string(kind), state.Present)

	if kind == domain.EdgeSubscription {
		if err := s.cache.InvalidateChannel(target.ID, subjectID); err != nil {
			s.logger.Warn("failed to invalidate channel stats", "channel_id", target.ID, "error", err)
		}
	}

	s.logger.Debug("edge toggled",
		"kind", kind,
		"subject_id", subjectID,
		"target", target.String(),
		"present", state.Present,
	)
	return &state, nil
}

// checkVisible hides unpublished videos from everyone but their owner, so a
// like cannot reveal that a draft exists.
func (s *EdgeService) checkVisible(ctx context.Context, subjectID string, target domain.TargetRef) error {
	if target.Kind != domain.TargetVideo {
		return nil
	}
	v, err := s.store.GetVideo(ctx, target.ID)
	if err != nil {
		return translate(err, "video "+target.ID)
	}
	if !visibleTo(v, subjectID) {
		return domainerrors.NotFoundf("video %s not found", target.ID)
	}
	return nil
}

// ToggleLike toggles userID's like on a video, post or comment.
func (s *EdgeService) ToggleLike(ctx context.Context, userID string, target domain.TargetRef) (*domain.EdgeState, error) {
	return s.Toggle(ctx, domain.EdgeLike, userID, target)
}

// ToggleSubscription toggles subscriberID's subscription to channelID.
func (s *EdgeService) ToggleSubscription(ctx context.Context, subscriberID, channelID string) (*domain.EdgeState, error) {
	return s.Toggle(ctx, domain.EdgeSubscription, subscriberID, domain.ChannelRef(channelID))
}

// Exists reports whether the edge is present. It never writes.
func (s *EdgeService) Exists(ctx context.Context, kind domain.EdgeKind, subjectID string, target domain.TargetRef) (bool, error) {
	if err := checkEdge(kind, subjectID, target); err != nil {
		return false, err
	}
	ok, err := s.store.EdgeExists(ctx, kind, subjectID, target)
	if err != nil {
		return false, translate(err, "read edge")
	}
	return ok, nil
}

// IsLiked reports whether userID likes target.
func (s *EdgeService) IsLiked(ctx context.Context, userID string, target domain.TargetRef) (bool, error) {
	return s.Exists(ctx, domain.EdgeLike, userID, target)
}
