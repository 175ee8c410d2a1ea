package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/theapemachine/errnie"
	"github.com/theapemachine/qbell"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

/*
Server is the network front door. It is built once at process start and
lives until the context passed to Run is cancelled. When a metrics
address is configured, a second listener serves /metrics so that the main
listener keeps its single route.
*/
type Server struct {
	cfg     *qbell.Config
	engine  *gin.Engine
	http    *http.Server
	metrics *http.Server
}

// NewEngine builds the gin engine with recovery, request logging, the
// CORS policy and the measurement route.
func NewEngine(cfg *qbell.Config, svc Measurer) *gin.Engine {
	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	engine.Use(gin.Recovery())
	engine.Use(requestLogger())
	engine.Use(CORS(cfg.CORS))

	SetupRoutes(engine, svc)

	return engine
}

// New wires the engine and, if cfg.MetricsAddr is set, the metrics
// listener for gatherer. A nil gatherer uses the prometheus default.
func New(cfg *qbell.Config, svc Measurer, gatherer prometheus.Gatherer) *Server {
	engine := NewEngine(cfg, svc)

	s := &Server{
		cfg:    cfg,
		engine: engine,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	if cfg.MetricsAddr != "" {
		if gatherer == nil {
			gatherer = prometheus.DefaultGatherer
		}

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

		s.metrics = &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
	}

	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled or a listener fails, then shuts every
// listener down.
func (s *Server) Run(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)

	servers := []*http.Server{s.http}
	if s.metrics != nil {
		servers = append(servers, s.metrics)
	}

	for _, srv := range servers {
		group.Go(func() error {
			errnie.Info("listening on %s", srv.Addr)

			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return errors.Wrapf(err, "listen %s", srv.Addr)
			}
			return nil
		})

		group.Go(func() error {
			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				return errors.Wrapf(err, "shutdown %s", srv.Addr)
			}

			errnie.Info("stopped listening on %s", srv.Addr)
			return nil
		})
	}

	return group.Wait()
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		log.Debug(
			"request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"took", time.Since(start),
		)
	}
}
