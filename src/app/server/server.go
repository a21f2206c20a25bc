// Package server provides HTTP server initialization and lifecycle management.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"employeeapi/src/app/http/handler"
	"employeeapi/src/app/http/response"
	"employeeapi/src/app/middleware"
	"employeeapi/src/core/ports"
	"employeeapi/src/core/usecase"
	"employeeapi/src/infra/config"
	"employeeapi/src/infra/logger"
	"employeeapi/src/infra/metrics"
)

// Deps are the collaborators the server is built from. They are constructed
// by the entry point and injected here.
type Deps struct {
	// Employees is the record store.
	Employees ports.EmployeeRepository

	// Registry gathers the exported metrics. Nil disables the metrics endpoint.
	Registry *prometheus.Registry

	// Metrics are the application collectors registered on Registry.
	Metrics *metrics.Metrics
}

// Server wraps the HTTP server and its dependencies.
type Server struct {
	cfg    *config.Config
	log    *slog.Logger
	router *gin.Engine
	http   *http.Server
	deps   Deps

	// Handlers
	healthHandler   *handler.HealthHandler
	employeeHandler *handler.EmployeeHandler
}

// New creates a new Server with all dependencies wired up.
func New(cfg *config.Config, log *slog.Logger, deps Deps) *Server {
	// Set Gin mode based on log level
	if cfg.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router without default middleware
	router := gin.New()

	// Create services
	healthService := usecase.NewHealthService(logger.WithComponent(log, "health"), map[string]ports.HealthChecker{
		"store": deps.Employees,
	})
	employeeService := usecase.NewEmployeeService(deps.Employees, logger.WithComponent(log, "employees"))

	s := &Server{
		cfg:             cfg,
		log:             log,
		router:          router,
		deps:            deps,
		healthHandler:   handler.NewHealthHandler(healthService),
		employeeHandler: handler.NewEmployeeHandler(employeeService, log),
	}

	s.setupMiddleware()
	s.setupRoutes()
	s.setupHTTPServer()

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	// Order matters: Recovery should be first to catch all panics
	s.router.Use(middleware.Recovery(s.log))
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.CORS())
	if s.deps.Metrics != nil {
		s.router.Use(middleware.Metrics(s.deps.Metrics))
	}
	s.router.Use(middleware.Logging(s.log))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check endpoints
	s.router.GET("/health", s.healthHandler.Health)
	s.router.GET("/health/detailed", s.healthHandler.DetailedHealth)

	if s.cfg.Metrics.Enabled && s.deps.Registry != nil {
		s.router.GET(s.cfg.Metrics.Path, gin.WrapH(promhttp.HandlerFor(s.deps.Registry, promhttp.HandlerOpts{})))
	}

	employees := s.router.Group("/employees")
	{
		employees.GET("", s.employeeHandler.List)
		employees.GET("/:id", s.employeeHandler.Get)
		employees.POST("", s.employeeHandler.Create)
		employees.PUT("/:id", s.employeeHandler.Update)
		employees.DELETE("/:id", s.employeeHandler.Delete)
	}

	// Handle 404
	s.router.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "The requested resource was not found", middleware.GetRequestID(c))
	})
}

// setupHTTPServer configures the underlying HTTP server.
func (s *Server) setupHTTPServer() {
	s.http = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}
}

// Run starts the HTTP server and blocks until shutdown.
// It handles graceful shutdown on SIGINT/SIGTERM.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return s.RunContext(ctx)
}

// RunContext serves until ctx is done or the listener fails, then shuts down gracefully.
func (s *Server) RunContext(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.log.Info("starting HTTP server",
			"addr", s.cfg.Server.Addr(),
		)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.log.Info("received shutdown signal", "cause", context.Cause(ctx))
	case err := <-errCh:
		return err
	}

	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	s.log.Info("shutting down server", "timeout", s.cfg.Server.ShutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("server stopped gracefully")
	return nil
}

// Router returns the Gin router for testing.
func (s *Server) Router() *gin.Engine {
	return s.router
}
