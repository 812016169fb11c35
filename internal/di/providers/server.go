package providers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/samber/do/v2"

	"github.com/reelhouse/reelhouse-server/internal/api"
	"github.com/reelhouse/reelhouse-server/internal/auth"
	"github.com/reelhouse/reelhouse-server/internal/config"
	"github.com/reelhouse/reelhouse-server/internal/logger"
	"github.com/reelhouse/reelhouse-server/internal/service"
)

// httpDrainTimeout bounds how long in-flight requests may run after a
// shutdown signal.
const httpDrainTimeout = 30 * time.Second

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	api *api.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), httpDrainTimeout)
	defer cancel()
	err := h.Server.Shutdown(ctx)
	h.api.Close()
	return err
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := &api.Services{
		Users:      do.MustInvoke[*service.UserService](i),
		Edges:      do.MustInvoke[*service.EdgeService](i),
		Feed:       do.MustInvoke[*service.FeedService](i),
		Recommend:  do.MustInvoke[*service.RecommendationService](i),
		Engagement: do.MustInvoke[*service.EngagementService](i),
		Channels:   do.MustInvoke[*service.ChannelService](i),
		Content:    do.MustInvoke[*service.ContentService](i),
		Playlists:  do.MustInvoke[*service.PlaylistService](i),
	}

	handler := api.NewServer(
		storeHandle.Store,
		indexHandle.SearchIndex,
		services,
		tokenService,
		api.Options{
			AllowedOrigins:   cfg.Server.AllowedOrigins,
			TogglesPerMinute: cfg.RateLimit.TogglesPerMinute,
			ToggleBurst:      cfg.RateLimit.Burst,
		},
		log.Logger,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv, api: handler}, nil
}
