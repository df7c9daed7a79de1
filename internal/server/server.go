// Package server composes the application: store, cache, query
// builder, handlers and the HTTP listener.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/cache"
	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/config"
	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/handler"
	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/middleware"
	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/query"
	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/store"
	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/store/postgres"
	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/store/postgrest"
)

// memoryCacheEntries bounds the in-process cache tier.
const memoryCacheEntries = 1024

// Server is the application container.
type Server struct {
	cfg   *config.Config
	log   zerolog.Logger
	echo  *echo.Echo
	store store.Store
	cache *cache.Manager

	closers []func()
}

// New wires every dependency and returns a Server ready to start.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Server, error) {
	s := &Server{cfg: cfg, log: log}

	backend, err := s.buildStore(ctx)
	if err != nil {
		return nil, err
	}
	s.store = backend

	s.cache = cache.New(s.buildCacheTier(ctx))

	db := query.NewDB(backend, query.WithLogger(log))
	h := handler.New(db, s.cache, log)

	auth := middleware.NewServiceKeyAuthenticator(cfg.AdminKey)
	guard := middleware.RequireContentEditor(auth)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(log)
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(log))
	e.Use(middleware.Audit(log))

	e.GET("/api/healthz", s.health)
	h.Register(e, guard)

	s.echo = e
	return s, nil
}

// buildStore creates the store implementation selected by the config.
func (s *Server) buildStore(ctx context.Context) (store.Store, error) {
	switch s.cfg.Backend {
	case config.BackendPostgres:
		pg, err := postgres.New(ctx, s.cfg.DatabaseURL, s.log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect postgres store: %w", err)
		}
		s.closers = append(s.closers, pg.Close)
		return pg, nil
	default:
		return postgrest.NewClient(postgrest.Config{
			BaseURL:    s.cfg.SupabaseURL,
			ServiceKey: s.cfg.SupabaseServiceKey,
		}, s.log), nil
	}
}

// buildCacheTier picks the cache tier. Redis is preferred when
// configured, an unreachable Redis falls back to the memory tier.
func (s *Server) buildCacheTier(ctx context.Context) cache.Store {
	if !s.cfg.CacheEnabled {
		return nil
	}
	if s.cfg.RedisURL != "" {
		tier, err := cache.NewRedis(ctx, s.cfg.RedisURL, s.log)
		if err == nil {
			s.closers = append(s.closers, func() { _ = tier.Close() })
			return tier
		}
		s.log.Warn().Err(err).Msg("redis unavailable, using memory cache")
	}
	return cache.NewMemory(memoryCacheEntries)
}

// health reports backend reachability.
func (s *Server) health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "degraded",
			"error":  err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Start begins serving and blocks until the listener stops.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.cfg.ListenAddr).Str("backend", s.cfg.Backend).Msg("starting server")
	return s.echo.Start(s.cfg.ListenAddr)
}

// Shutdown stops the listener, waits for inflight requests and releases
// every connection.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.echo.Shutdown(ctx)
	for _, closeFn := range s.closers {
		closeFn()
	}
	if err != nil {
		return fmt.Errorf("failed to shutdown http server: %w", err)
	}
	return nil
}

// Echo exposes the router for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
