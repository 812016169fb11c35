package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/reelhouse/reelhouse-server/internal/domain"
	domainerrors "github.com/reelhouse/reelhouse-server/internal/errors"
	"github.com/reelhouse/reelhouse-server/internal/metrics"
	"github.com/reelhouse/reelhouse-server/internal/normalize"
	"github.com/reelhouse/reelhouse-server/internal/store"
	"github.com/reelhouse/reelhouse-server/internal/view"
)

// FeedService composes paginated, enriched video feeds.
//
// Every feed resolves one match predicate, counts it, and reads one sorted
// page of it; the page is then joined with owner projections and like
// counts. Malformed paging and sort input is recovered to defaults and
// never rejected.
type FeedService struct {
	store  store.Store
	index  VideoIndex
	limits view.Limits
	logger *slog.Logger
}

// NewFeedService creates a new feed service.
func NewFeedService(store store.Store, index VideoIndex, limits view.Limits, logger *slog.Logger) *FeedService {
	return &FeedService{
		store:  store,
		index:  index,
		limits: limits,
		logger: logger,
	}
}

// Feed returns the global feed of published videos, optionally narrowed by a
// text query, an owner ID and an owner username. Each filter applies
// independently.
func (s *FeedService) Feed(ctx context.Context, actorID string, q domain.FeedQuery) (*domain.FeedPage, error) {
	filter, err := s.baseFilter(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.compose(ctx, "global", filter, q)
}

// SubscribedFeed returns published videos owned by actorID or by channels
// actorID subscribes to.
func (s *FeedService) SubscribedFeed(ctx context.Context, actorID string, q domain.FeedQuery) (*domain.FeedPage, error) {
	if actorID == "" {
		return nil, domainerrors.Unauthorized("the subscribed feed requires an acting user")
	}
	filter, err := s.baseFilter(ctx, q)
	if err != nil {
		return nil, err
	}
	filter.SubscribedBy = actorID
	return s.compose(ctx, "subscribed", filter, q)
}

// ChannelVideos lists one channel's videos. The channel owner also sees
// their unpublished videos.
func (s *FeedService) ChannelVideos(ctx context.Context, actorID, channelID string, q domain.FeedQuery) (*domain.FeedPage, error) {
	if _, err := s.store.GetUser(ctx, channelID); err != nil {
		return nil, translate(err, "channel "+channelID+" not found")
	}

	q.OwnerID = channelID
	filter, err := s.baseFilter(ctx, q)
	if err != nil {
		return nil, err
	}
	filter.VisibleTo = actorID
	return s.compose(ctx, "channel", filter, q)
}

// baseFilter builds the published-only predicate shared by every feed.
func (s *FeedService) baseFilter(ctx context.Context, q domain.FeedQuery) (view.ContentFilter, error) {
	filter := view.ContentFilter{
		PublishedOnly: true,
		OwnerID:       q.OwnerID,
		OwnerUsername: normalize.Username(q.OwnerUsername),
	}

	if text := normalize.Query(q.Query); text != "" {
		ids, err := s.index.MatchIDs(ctx, text)
		if err != nil {
			return view.ContentFilter{}, domainerrors.Unavailable(err, "search videos")
		}
		filter.IDs = ids
	}
	return filter, nil
}

func (s *FeedService) compose(ctx context.Context, feed string, filter view.ContentFilter, q domain.FeedQuery) (*domain.FeedPage, error) {
	start := time.Now()
	page := view.ParsePage(q.Page, q.Limit, s.limits)

	videos, total, err := s.store.ListVideos(ctx, view.ContentQuery{
		Filter: filter,
		Sort:   q.Sort(),
		Page:   page,
	})
	if err != nil {
		return nil, translate(err, "list videos")
	}

	items, err := view.EnrichVideos(ctx, s.store, videos, view.StagesListing)
	if err != nil {
		return nil, translate(err, "enrich videos")
	}

	metrics.RecordFeedQuery(feed, time.Since(start), len(items))
	return &domain.FeedPage{
		Items:      items,
		TotalCount: total,
		Page:       page.Number,
		Limit:      page.Limit,
	}, nil
}
