package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alexanderramin/jobcolor/internal/metrics"
	"github.com/alexanderramin/jobcolor/internal/service"
)

// Services are the job store use cases exposed over HTTP.
type Services struct {
	Colors  service.ColorService
	Jobs    service.JobService
	Catalog service.CatalogService
}

// Server serves the job API from the local job store.
type Server struct {
	router *gin.Engine
	svc    Services
	logger *slog.Logger
}

// New builds the router. A nil logger discards request logs.
func New(svc Services, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		router: gin.New(),
		svc:    svc,
		logger: logger,
	}
	// Job numbers may carry escaped slashes.
	s.router.UseRawPath = true
	s.router.UnescapePathValues = true
	s.router.Use(gin.Recovery(), requestLogger(logger), metrics.Middleware())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	jobs := s.router.Group("/api/jobs")
	jobs.GET("/color-details/:jobNumber", s.getColorDetails)
	jobs.GET("/items-for-color", s.getItems)
	jobs.POST("/save-color-changes", s.saveColorChanges)
	jobs.GET("/search-numbers-completion/:fragment", s.searchJobNumbers)
	jobs.GET("/details-update/:jobNumber", s.getJobDetails)

	s.router.NoRoute(func(c *gin.Context) {
		abortWithError(c, http.StatusNotFound, "Not found")
	})
}

// Handler exposes the router, mainly for httptest.
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
		s.logger.Info("job store listening", "addr", addr)
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("job store stopped")
	return nil
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/metrics" || path == "/health" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "error", c.Errors.Last().Error())
		}
		if c.Writer.Status() >= 500 {
			logger.Warn("request", attrs...)
		} else {
			logger.Info("request", attrs...)
		}
	}
}
