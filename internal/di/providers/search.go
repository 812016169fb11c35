package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/reelhouse/reelhouse-server/internal/config"
	"github.com/reelhouse/reelhouse-server/internal/logger"
	"github.com/reelhouse/reelhouse-server/internal/search"
	"github.com/reelhouse/reelhouse-server/internal/service"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.SearchIndex
	// Created is true when the index was built fresh on this start, either
	// because none existed or because its mapping version changed.
	Created bool
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the Bleve search index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	index, created, err := search.NewSearchIndex(search.Options{
		DataPath: cfg.Data.SearchPath(),
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	docCount, _ := index.DocumentCount()
	log.Info("Search index initialized", "documents", docCount, "created", created)

	return &SearchIndexHandle{SearchIndex: index, Created: created}, nil
}

// TriggerSearchReindexIfNeeded rebuilds the index in the background when it
// was just created or is empty while videos exist.
// Should be called after all services are wired.
func TriggerSearchReindexIfNeeded(i do.Injector) {
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	contentService := do.MustInvoke[*service.ContentService](i)
	log := do.MustInvoke[*logger.Logger](i)

	docCount, _ := indexHandle.DocumentCount()
	if docCount > 0 && !indexHandle.Created {
		return
	}

	ctx := context.Background()
	videos, err := storeHandle.ListAllVideos(ctx)
	if err != nil || len(videos) == 0 {
		return
	}

	log.Info("Search index needs rebuilding, triggering reindex",
		"video_count", len(videos),
		"created", indexHandle.Created,
	)

	go func() {
		n, err := contentService.Reindex(context.Background())
		if err != nil {
			log.Error("Search reindex failed", "error", err)
			return
		}
		log.Info("Search reindex completed", "documents", n)
	}()
}
