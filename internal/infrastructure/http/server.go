package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/mrops-br/storefront-api/internal/infrastructure/config"
	"github.com/mrops-br/storefront-api/internal/infrastructure/http/handler"
	"github.com/mrops-br/storefront-api/internal/infrastructure/http/middleware"
	"github.com/mrops-br/storefront-api/internal/infrastructure/http/response"
	"github.com/mrops-br/storefront-api/internal/infrastructure/telemetry"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// HealthCheck reports whether a dependency is usable
type HealthCheck func(ctx context.Context) error

// Server represents the HTTP server
type Server struct {
	router    *chi.Mux
	config    *config.ServerConfig
	pages     *handler.PageHandler
	carts     *handler.CartHandler
	health    HealthCheck
	logger    *slog.Logger
	telemetry *telemetry.Telemetry
	srv       *http.Server
}

// NewServer creates a new HTTP server. health may be nil.
func NewServer(
	cfg *config.ServerConfig,
	pages *handler.PageHandler,
	carts *handler.CartHandler,
	health HealthCheck,
	logger *slog.Logger,
	telem *telemetry.Telemetry,
) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		config:    cfg,
		pages:     pages,
		carts:     carts,
		health:    health,
		logger:    logger,
		telemetry: telem,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.srv = &http.Server{
		Addr:    net.JoinHostPort(cfg.Host, cfg.Port),
		Handler: s.Handler(),
	}
	return s
}

func (s *Server) setupMiddleware() {
	meter := s.telemetry.Meter()

	s.router.Use(chimiddleware.RequestID)
	s.router.Use(middleware.StructuredLogger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.ActiveRequestsMiddleware(meter))
	s.router.Use(middleware.DurationMillisecondsMiddleware(meter))
}

func (s *Server) setupRoutes() {
	s.router.Group(func(r chi.Router) {
		r.Use(middleware.HTTPRouteContext())

		r.Get("/", s.pages.Home)
		r.Get("/collections/{handle}", s.pages.Collection)
		r.Get("/products/{handle}", s.pages.Product)

		r.Route("/cart", func(r chi.Router) {
			r.Post("/", s.carts.CreateCart)
			r.Get("/{id}", s.carts.GetCart)
			r.Post("/{id}/actions", s.carts.ApplyAction)
		})
	})

	s.router.Get("/health", s.healthCheck)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.telemetry.Registry, promhttp.HandlerOpts{}))
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health(r.Context()); err != nil {
			s.logger.ErrorContext(r.Context(), "Health check failed", slog.String("error", err.Error()))
			response.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Handler returns the router wrapped with otelhttp, which provides server spans and
// the http.server.request.duration histogram
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.router, "http-server",
		otelhttp.WithTracerProvider(s.telemetry.TracerProvider),
		otelhttp.WithMeterProvider(s.telemetry.MeterProvider),
		otelhttp.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/metrics" && r.URL.Path != "/health"
		}),
	)
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", slog.String("address", s.srv.Addr))

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.srv.Shutdown(ctx)
}
