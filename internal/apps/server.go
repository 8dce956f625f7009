package apps

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/sbilibin2017/demoapp/internal/configs"
	"github.com/sbilibin2017/demoapp/internal/metrics"
	"github.com/sbilibin2017/demoapp/internal/repositories/memory"
	"github.com/sbilibin2017/demoapp/internal/runner"
	"github.com/sbilibin2017/demoapp/internal/services"
	"github.com/sbilibin2017/demoapp/internal/worker"

	httpHandlers "github.com/sbilibin2017/demoapp/internal/handlers/http"
	httpMiddlewares "github.com/sbilibin2017/demoapp/internal/middlewares/http"
)

// Server is the demo HTTP service with its metrics registry and background workers.
type Server struct {
	config    *configs.ServerConfig
	log       *zap.Logger
	registry  *metrics.Registry
	readiness *services.Readiness
	handler   http.Handler
	workers   []runner.Worker
}

// NewServer wires the registry, request metrics, services and routes.
// Metric declaration errors are returned so that startup can fail fast.
func NewServer(config *configs.ServerConfig, log *zap.Logger) (*Server, error) {
	registry := metrics.NewRegistry()

	httpMetrics, err := metrics.NewHTTPMetrics(registry, config.Buckets)
	if err != nil {
		return nil, fmt.Errorf("declare request metrics: %w", err)
	}

	if config.RuntimeMetrics {
		if err := registry.RegisterRuntimeCollectors(); err != nil {
			return nil, fmt.Errorf("register runtime collectors: %w", err)
		}
	}

	s := &Server{
		config:    config,
		log:       log,
		registry:  registry,
		readiness: services.NewReadiness(),
	}

	if config.HostMetrics {
		hostWorker, err := worker.NewHostMetricsWorker(registry, worker.SystemSampler{}, config.HostMetricsInterval, log)
		if err != nil {
			return nil, fmt.Errorf("declare host metrics: %w", err)
		}
		s.workers = append(s.workers, hostWorker)
	}

	reader := memory.NewItemReadRepository(memory.SampleItems())
	items := services.NewItemService(reader, config.DataDelay)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(httpMiddlewares.LoggingMiddleware(log))
	r.Use(httpMiddlewares.MetricsMiddleware(httpMetrics, log))
	r.Use(httpMiddlewares.RecoverMiddleware(log))

	r.NotFound(httpHandlers.NewNotFoundHandler())
	r.MethodNotAllowed(httpHandlers.NewMethodNotAllowedHandler())

	r.Get("/", httpHandlers.NewGreetingHandler(config.Version, config.Environment))
	r.Get("/health", httpHandlers.NewHealthHandler())
	r.Get("/ready", httpHandlers.NewReadyHandler(s.readiness))
	r.Get("/metrics", httpHandlers.NewMetricsHandler(registry, log))
	r.Route("/api", func(r chi.Router) {
		r.Get("/data", httpHandlers.NewItemListHandler(items, log))
	})
	r.Get("/swagger/doc.json", httpHandlers.NewSwaggerDocHandler(log))

	s.handler = r
	return s, nil
}

// Handler returns the instrumented router.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Registry returns the metrics registry served on /metrics.
func (s *Server) Registry() *metrics.Registry {
	return s.registry
}

// Ready reports whether the server currently accepts traffic.
func (s *Server) Ready() bool {
	return s.readiness.IsReady()
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.config.Address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done and then shuts down gracefully.
// The server reports ready while serving and not ready once draining starts.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &listenerServer{
		Server: &http.Server{
			Handler:           s.handler,
			ReadHeaderTimeout: 10 * time.Second,
			ErrorLog:          zap.NewStdLog(s.log),
		},
		ln: ln,
	}

	r := runner.NewRunner(
		runner.WithShutdownTimeout(s.config.ShutdownTimeout),
		runner.OnShutdown(func() {
			s.readiness.SetReady(false)
			s.log.Info("draining")
		}),
	)
	r.AddHTTPServer(srv)
	for _, w := range s.workers {
		r.AddWorker(w)
	}

	s.log.Info("server started",
		zap.String("address", ln.Addr().String()),
		zap.String("environment", s.config.Environment),
		zap.String("version", s.config.Version),
	)
	s.readiness.SetReady(true)

	err := r.Run(ctx)
	s.readiness.SetReady(false)
	if err != nil {
		return err
	}

	s.log.Info("server stopped")
	return nil
}

// listenerServer serves an http.Server on a listener opened up front.
type listenerServer struct {
	*http.Server
	ln net.Listener
}

// ListenAndServe serves on the prepared listener.
func (s *listenerServer) ListenAndServe() error {
	return s.Serve(s.ln)
}
