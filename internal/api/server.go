// Package api provides the HTTP API server and handlers for the Shelfmark application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/shelfmark/shelfmark-server/internal/config"
	"github.com/shelfmark/shelfmark-server/internal/ratelimit"
	"github.com/shelfmark/shelfmark-server/internal/service"
	"github.com/shelfmark/shelfmark-server/internal/store"
	"github.com/shelfmark/shelfmark-server/internal/validation"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store     store.Store
	services  *service.Services
	validator *validation.Validator
	router    *chi.Mux
	api       huma.API
	limiter   *ratelimit.KeyedLimiter
	logger    *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st store.Store, services *service.Services, cfg *config.Config, logger *slog.Logger) *Server {
	s := &Server{
		store:     st,
		services:  services,
		validator: validation.New(),
		router:    chi.NewRouter(),
		logger:    logger,
	}

	s.setupMiddleware(cfg)

	humaConfig := huma.DefaultConfig("Shelfmark API", "1.0.0")
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerAuthorRoutes()
	s.registerBookRoutes()
	s.registerTagRoutes()
	s.registerSessionRoutes()
	s.registerGoalRoutes()
	s.registerStatisticsRoutes()
	s.registerStatusRoutes()
	s.registerSearchRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware(cfg *config.Config) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 120 requests/minute with a burst of 30, per client IP.
	s.limiter = ratelimit.New(2, 30)
	s.router.Use(RateLimitMiddleware(s.limiter, s.logger))
}

// Close releases server-owned background resources, currently the rate
// limiter's pruning goroutine.
func (s *Server) Close() {
	s.limiter.Stop()
}
