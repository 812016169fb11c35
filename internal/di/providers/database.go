package providers

import (
	"fmt"
	"os"

	"github.com/samber/do/v2"

	"github.com/reelhouse/reelhouse-server/internal/cache"
	"github.com/reelhouse/reelhouse-server/internal/config"
	"github.com/reelhouse/reelhouse-server/internal/logger"
	"github.com/reelhouse/reelhouse-server/internal/store/sqlite"
	"github.com/reelhouse/reelhouse-server/internal/validation"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the SQLite store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if err := os.MkdirAll(cfg.Data.BasePath, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	dbPath := cfg.Data.DatabasePath()
	db, err := sqlite.Open(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}

// CacheHandle wraps the view cache with shutdown capability. Cache is nil
// when caching is disabled; a nil *cache.Cache always misses.
type CacheHandle struct {
	*cache.Cache
}

// Shutdown implements do.Shutdownable.
func (h *CacheHandle) Shutdown() error {
	return h.Close()
}

// ProvideCache provides the Badger view cache.
func ProvideCache(i do.Injector) (*CacheHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.Cache.Enabled {
		log.Info("View cache disabled by configuration")
		return &CacheHandle{}, nil
	}

	c, err := cache.Open(cache.Options{
		Path:   cfg.Data.CachePath(),
		TTL:    cfg.Cache.StatsTTL,
		Logger: log.Logger,
	})
	if err != nil {
		return nil, err
	}
	return &CacheHandle{Cache: c}, nil
}

// ProvideValidator provides the request validator shared by services.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}
