package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Clark-Hu/filmgraph/internal/config"
	"github.com/Clark-Hu/filmgraph/internal/domain"
	"github.com/Clark-Hu/filmgraph/internal/query"
	"github.com/Clark-Hu/filmgraph/internal/repository"
)

// Catalog answers the movie search and detail pages.
type Catalog interface {
	Search(ctx context.Context, params query.SearchParams) (domain.SearchPage, error)
	Detail(ctx context.Context, id string) (domain.MovieDetail, error)
	Resolve(ctx context.Context, id string) (string, error)
}

// RatingsStore persists community ratings.
type RatingsStore interface {
	Upsert(ctx context.Context, params repository.RatingUpsertParams) (domain.Rating, bool, error)
	Aggregate(ctx context.Context, movieID string) (domain.RatingAggregate, error)
	Delete(ctx context.Context, movieID, raterID string) error
}

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Server wires HTTP routing, middleware, and handlers.
type Server struct {
	cfg     config.Config
	catalog Catalog
	ratings RatingsStore
	checks  map[string]HealthCheck
	pages   *pages
	logger  *slog.Logger
	router  chi.Router
	httpSrv *http.Server
}

// Options carries the optional collaborators of a Server.
type Options struct {
	// Ratings enables the community rating routes when non-nil.
	Ratings RatingsStore
	Checks  map[string]HealthCheck
	Logger  *slog.Logger
}

// New constructs the HTTP server with base middleware and routes.
func New(cfg config.Config, catalog Catalog, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	s := &Server{
		cfg:     cfg,
		catalog: catalog,
		ratings: opts.Ratings,
		checks:  opts.Checks,
		pages:   mustParsePages(),
		logger:  logger,
		router:  r,
	}
	s.registerRoutes()
	return s
}

// ServeHTTP lets the server be mounted or exercised directly.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) registerRoutes() {
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Handle("/static/*", staticHandler())

	s.router.Get("/", s.handleLanding)
	s.router.Get("/main", s.handleMain)
	s.router.Get("/search", s.handleSearch)

	s.router.Route("/movie", func(r chi.Router) {
		r.Get("/detail/*", s.handleMovieDetail)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleMovie)
			if s.ratings != nil {
				r.Post("/ratings", s.handleSubmitRating)
				r.Delete("/ratings", s.handleDeleteRating)
				r.Get("/rating", s.handleGetRating)
			}
		})
	})
}

// Start boots the HTTP server asynchronously.
func (s *Server) Start(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:         ":" + s.cfg.Port,
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.cfg.ReadTimeoutSecs) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeoutSecs) * time.Second,
		IdleTimeout:  time.Duration(s.cfg.IdleTimeoutSecs) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.httpSrv.Addr)
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpSrv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{Status: "ok"}
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			s.logger.Warn("health check failed", "dependency", name, "error", err)
			if resp.Checks == nil {
				resp.Checks = make(map[string]string, len(s.checks))
			}
			resp.Checks[name] = err.Error()
			resp.Status = "unavailable"
		}
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	s.respondJSON(w, status, resp)
}
