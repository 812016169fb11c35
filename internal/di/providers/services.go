package providers

import (
	"github.com/samber/do/v2"

	"github.com/reelhouse/reelhouse-server/internal/config"
	"github.com/reelhouse/reelhouse-server/internal/logger"
	"github.com/reelhouse/reelhouse-server/internal/service"
	"github.com/reelhouse/reelhouse-server/internal/validation"
	"github.com/reelhouse/reelhouse-server/internal/view"
)

func feedLimits(cfg *config.Config) view.Limits {
	return view.Limits{Default: cfg.Feed.DefaultLimit, Max: cfg.Feed.MaxLimit}
}

// ProvideUserService provides the user registration service.
func ProvideUserService(i do.Injector) (*service.UserService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewUserService(storeHandle.Store, validator, log.Logger), nil
}

// ProvideEdgeService provides the like and subscription toggle service.
func ProvideEdgeService(i do.Injector) (*service.EdgeService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	cacheHandle := do.MustInvoke[*CacheHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewEdgeService(storeHandle.Store, cacheHandle.Cache, log.Logger), nil
}

// ProvideFeedService provides the paginated video feed service.
func ProvideFeedService(i do.Injector) (*service.FeedService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewFeedService(storeHandle.Store, indexHandle.SearchIndex, feedLimits(cfg), log.Logger), nil
}

// ProvideRecommendationService provides the next-video sampler.
func ProvideRecommendationService(i do.Injector) (*service.RecommendationService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewRecommendationService(storeHandle.Store, cfg.Recommend.MarkSampled, log.Logger), nil
}

// ProvideEngagementService provides the batch count and channel stats service.
func ProvideEngagementService(i do.Injector) (*service.EngagementService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	cacheHandle := do.MustInvoke[*CacheHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewEngagementService(storeHandle.Store, cacheHandle.Cache, log.Logger), nil
}

// ProvideChannelService provides channel profiles, connections and history.
func ProvideChannelService(i do.Injector) (*service.ChannelService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewChannelService(storeHandle.Store, feedLimits(cfg), log.Logger), nil
}

// ProvideContentService provides video, post and comment management.
func ProvideContentService(i do.Injector) (*service.ContentService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewContentService(
		storeHandle.Store,
		indexHandle.SearchIndex,
		validator,
		feedLimits(cfg),
		log.Logger,
	), nil
}

// ProvidePlaylistService provides the playlist service.
func ProvidePlaylistService(i do.Injector) (*service.PlaylistService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPlaylistService(storeHandle.Store, validator, log.Logger), nil
}
