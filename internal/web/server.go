package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"questboard/internal/engine"
	"questboard/internal/metrics"
	"questboard/internal/storage"
)

// QuestService is the subset of engine.Service the handlers call.
type QuestService interface {
	ListTasks(ctx context.Context) ([]storage.Task, error)
	CreateTask(ctx context.Context, in engine.CreateTaskInput) (*storage.Task, error)
	CompleteTask(ctx context.Context, id string) (*engine.CompleteResult, error)
	DeleteTask(ctx context.Context, id string) error
	ListAchievements(ctx context.Context) ([]storage.Achievement, error)
	DeleteAchievement(ctx context.Context, id string) error
	Stats(ctx context.Context) (*engine.Stats, error)
}

var _ QuestService = (*engine.Service)(nil)

// Server is the Questboard HTTP API
type Server struct {
	svc      QuestService
	router   *gin.Engine
	log      *slog.Logger
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
}

type Option func(*Server)

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics records request metrics into m and serves g on /metrics.
func WithMetrics(m *metrics.Metrics, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = g
	}
}

// NewServer creates a new API server
func NewServer(svc QuestService, opts ...Option) *Server {
	s := &Server{
		svc: svc,
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())
	if s.metrics != nil {
		router.Use(s.observe())
	}
	s.router = router

	router.GET("/healthz", s.handleHealth)
	if s.gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}

	api := router.Group("/api")
	{
		api.GET("/tasks", s.handleListTasks)
		api.POST("/tasks", s.handleCreateTask)
		api.POST("/tasks/:id/complete", s.handleCompleteTask)
		api.DELETE("/tasks/:id", s.handleDeleteTask)
		api.GET("/achievements", s.handleListAchievements)
		api.DELETE("/achievements/:id", s.handleDeleteAchievement)
		api.GET("/stats", s.handleStats)
	}

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		s.metrics.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start).Seconds())
	}
}
