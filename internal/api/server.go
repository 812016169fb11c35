// Package api provides the HTTP API server and handlers for the Reelhouse application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/reelhouse/reelhouse-server/internal/auth"
	"github.com/reelhouse/reelhouse-server/internal/ratelimit"
	"github.com/reelhouse/reelhouse-server/internal/store"
)

// DocumentCounter reports the size of the search index for health checks.
type DocumentCounter interface {
	DocumentCount() (uint64, error)
}

// Options configures transport concerns of the server.
type Options struct {
	AllowedOrigins   []string
	TogglesPerMinute int
	ToggleBurst      int
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store         store.Store
	index         DocumentCounter
	services      *Services
	tokens        *auth.TokenService
	router        *chi.Mux
	api           huma.API
	toggleLimiter *ratelimit.KeyedRateLimiter
	logger        *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	st store.Store,
	index DocumentCounter,
	services *Services,
	tokens *auth.TokenService,
	opts Options,
	logger *slog.Logger,
) *Server {
	s := &Server{
		store:         st,
		index:         index,
		services:      services,
		tokens:        tokens,
		router:        chi.NewRouter(),
		toggleLimiter: ratelimit.PerMinute(opts.TogglesPerMinute, opts.ToggleBurst),
		logger:        logger,
	}

	s.setupMiddleware(opts)

	humaConfig := huma.DefaultConfig("Reelhouse API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases background resources held by middleware.
func (s *Server) Close() {
	s.toggleLimiter.Stop()
}

// setupMiddleware configures the middleware stack. It must run before any
// route is registered on the router.
func (s *Server) setupMiddleware(opts Options) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	s.router.Use(authMiddleware(s.tokens))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Handle("/metrics", promhttp.Handler())

	s.registerHealthRoutes()
	s.registerUserRoutes()
	s.registerFeedRoutes()
	s.registerEdgeRoutes()
	s.registerChannelRoutes()
	s.registerVideoRoutes()
	s.registerPostRoutes()
	s.registerCommentRoutes()
	s.registerEngagementRoutes()
	s.registerPlaylistRoutes()
}
