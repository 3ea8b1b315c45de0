package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/tssearch/internal/core/domain"
	"github.com/custodia-labs/tssearch/internal/core/ports/driving"
	"github.com/custodia-labs/tssearch/internal/logger"
)

// Route paths.
const (
	BasePath   = "/api/v1"
	HealthPath = "/health"
	SearchPath = "/timestamp/search"
)

const shutdownTimeout = 10 * time.Second

// Deps are the services the router calls.
type Deps struct {
	Search driving.SearchService
	Health HealthChecker
}

// NewRouter builds the gin engine with middleware and routes.
func NewRouter(deps Deps, cfg domain.ServerSettings) (*gin.Engine, error) {
	if deps.Search == nil {
		return nil, fmt.Errorf("%w: search service is required", domain.ErrInvalidInput)
	}
	if cfg.RequestsPerSecond <= 0 || cfg.Burst < 1 {
		return nil, fmt.Errorf("%w: rate limit must be positive", domain.ErrInvalidInput)
	}

	r := gin.New()
	r.Use(AccessLog(), gin.Recovery(), RateLimit(rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)))

	h := &handlers{search: deps.Search, health: deps.Health}
	api := r.Group(BasePath)
	api.GET(HealthPath, h.healthCheck)
	api.GET(SearchPath, h.searchChapters)

	r.NoRoute(func(c *gin.Context) {
		RespondError(c, fmt.Errorf("%w: %s", domain.ErrNotFound, c.Request.URL.Path))
	})
	return r, nil
}

// Server runs the router on a listener until its context ends.
type Server struct {
	httpServer *http.Server
}

// NewServer creates a server for cfg.Listen.
func NewServer(deps Deps, cfg domain.ServerSettings) (*Server, error) {
	router, err := NewRouter(deps, cfg)
	if err != nil {
		return nil, err
	}
	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Listen,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Handler returns the underlying router.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run listens on the configured address and blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln and shuts down gracefully when ctx ends.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	logger.Info("http: listening on %s", ln.Addr())

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("http: stopped")
	return nil
}
