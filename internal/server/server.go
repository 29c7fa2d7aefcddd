// Package server is the composition root: it wires the store, services,
// handlers and middleware into a chi router and runs the HTTP server with
// graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"

	"github.com/sakif/skillup/internal/auth"
	"github.com/sakif/skillup/internal/config"
	"github.com/sakif/skillup/internal/handler"
	"github.com/sakif/skillup/internal/logger"
	"github.com/sakif/skillup/internal/metrics"
	"github.com/sakif/skillup/internal/middleware"
	"github.com/sakif/skillup/internal/repository/gormstore"
	"github.com/sakif/skillup/internal/service"
	"github.com/sakif/skillup/internal/view"
)

const shutdownTimeout = 30 * time.Second

// Server owns the router and the store. The store is closed when Start
// returns.
type Server struct {
	router   *chi.Mux
	cfg      *config.Config
	logger   *logger.Logger
	store    *gormstore.Store
	registry *prometheus.Registry
	catalog  *service.CatalogService
}

// Option adjusts how New wires the server.
type Option func(*options)

type options struct {
	google handler.OAuthProvider
	source service.ItemSource
}

// WithOAuthProvider replaces the Google provider built from config.
func WithOAuthProvider(p handler.OAuthProvider) Option {
	return func(o *options) { o.google = p }
}

// WithItemSource replaces the placeholder checklist item source.
func WithItemSource(src service.ItemSource) Option {
	return func(o *options) { o.source = src }
}

func New(cfg *config.Config, logg *logger.Logger, store *gormstore.Store, opts ...Option) (*Server, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	s := &Server{
		router: chi.NewRouter(),
		cfg:    cfg,
		logger: logg,
		store:  store,
	}
	if cfg.Metrics.Enabled {
		s.registry = prometheus.NewRegistry()
		s.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	sessions, err := newSessionService(cfg.Auth, cfg.App, logg)
	if err != nil {
		return nil, err
	}

	if o.google == nil && cfg.Auth.GoogleEnabled() {
		o.google = auth.NewGoogleProvider(cfg.Auth.GoogleClientID, cfg.Auth.GoogleClientSecret, cfg.Auth.GoogleCallbackURL)
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	s.setupRoutes(sessions, o, renderer)
	return s, nil
}

func newSessionService(a config.AuthConfig, app config.AppConfig, logg *logger.Logger) (*auth.SessionService, error) {
	secret := a.SessionSecret
	if secret == "" {
		if app.IsProd() {
			return nil, errors.New("server: session secret is required in prod")
		}
		generated, err := auth.RandomSecret()
		if err != nil {
			return nil, err
		}
		secret = generated
		logg.Warn(context.Background(), "no session secret configured; sessions will not survive a restart")
	}
	return auth.NewSessionService(secret, a.SessionTTL)
}

// registerer returns nil when metrics are disabled; the metrics package
// treats that as a no-op.
func (s *Server) registerer() prometheus.Registerer {
	if s.registry == nil {
		return nil
	}
	return s.registry
}

func (s *Server) setupRoutes(sessions *auth.SessionService, o options, renderer *view.Renderer) {
	domainMetrics := metrics.NewDomainMetrics(s.registerer())

	s.catalog = service.NewCatalogService(s.store, s.logger, domainMetrics)
	identity := service.NewIdentityService(s.store, s.logger)
	checklists := service.NewChecklistService(service.ChecklistDeps{
		Identity:   identity,
		Catalog:    s.catalog,
		Checklists: s.store,
		Owners:     s.store,
		Source:     o.source,
		Policy:     service.DuplicatePolicy(s.cfg.Checklist.DuplicatePolicy),
		Logger:     s.logger,
		Metrics:    domainMetrics,
	})

	paths := handler.NewCareerPathHandler(s.catalog, s.logger)
	lists := handler.NewChecklistHandler(checklists, s.logger)
	pages := handler.NewPageHandler(renderer, s.catalog, checklists, o.google != nil, s.logger)
	authH := handler.NewAuthHandler(o.google, sessions, identity, s.cfg.Auth.SecureCookie, s.logger)
	health := handler.NewHealthHandler(s.store, s.logger)

	s.router.Use(middleware.RequestID(s.logger))
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Recoverer(s.logger))
	s.router.Use(middleware.Logger(s.logger))
	if s.registry != nil {
		s.router.Use(middleware.Metrics(metrics.NewHTTPMetrics(s.registry)))
		s.router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	s.router.Get("/healthz", health.Healthz)

	s.router.Route("/auth", func(r chi.Router) {
		r.Get("/google/login", authH.GoogleLogin)
		r.Get("/google/callback", authH.GoogleCallback)
		r.Post("/logout", authH.Logout)
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.cfg.CORS.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type", middleware.RequestIDHeader},
			ExposedHeaders:   []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           300,
		}))

		r.NotFound(handler.APINotFound)
		r.Get("/career-paths", paths.List)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireSession(sessions))
			r.Get("/me", authH.Me)
			r.Post("/checklist", lists.Create)
			r.Get("/checklists", lists.List)
			r.Get("/checklists/{id}", lists.Get)
			r.Patch("/checklist/items/{id}", lists.UpdateItemStatus)
		})
	})

	s.router.Group(func(r chi.Router) {
		r.Use(auth.OptionalSession(sessions))
		r.Get("/", pages.Home)
		r.Get("/checklists", pages.Checklists)
		r.Get("/checklists/{id}", pages.Detail)
	})
	s.router.NotFound(auth.OptionalSession(sessions)(http.HandlerFunc(pages.NotFound)).ServeHTTP)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Catalog exposes the catalog service so callers can seed at startup.
func (s *Server) Catalog() *service.CatalogService {
	return s.catalog
}

// Start serves until ctx is cancelled or SIGINT/SIGTERM arrives, then
// drains in-flight requests and closes the store.
func (s *Server) Start(ctx context.Context) (err error) {
	defer func() {
		err = multierr.Append(err, s.store.Close())
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.App.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info(s.logger.WithFields(ctx, map[string]any{
			"port": s.cfg.App.Port,
			"url":  s.cfg.App.PublicURL(),
		}), "server starting")
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.logger.Info(context.Background(), "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	s.logger.Info(context.Background(), "server stopped gracefully")
	return nil
}
