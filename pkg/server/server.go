// Package server implements the processing-service sampling API: script
// generation, validation and a simulated dry run streamed as server-sent
// events.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/kika-project/kika-sampling/pkg/logger"
)

// Default pacing of the simulated dry run, matching the service.
const (
	DefaultStepDelay = 500 * time.Millisecond
	DefaultFileDelay = 300 * time.Millisecond
)

const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	Version string
	// APIKey, when set, is required as a bearer token on /api routes.
	APIKey string
	// StepDelay is the pause after each dry-run phase.
	StepDelay time.Duration
	// FileDelay is the pause after each simulated file.
	FileDelay time.Duration
	// Now supplies log timestamps. Defaults to time.Now.
	Now func() time.Time
}

// Server serves the sampling API.
type Server struct {
	opts   Options
	router *gin.Engine
	log    logger.Logger
}

// New builds a Server with its routes registered.
func New(opts Options) *Server {
	if opts.Version == "" {
		opts.Version = "dev"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	s := &Server{opts: opts, router: router, log: logger.WithPrefix("server")}

	router.Use(gin.Recovery(), s.requestLogger())
	router.GET("/healthz", s.handleHealth)

	api := router.Group("/api/sampling")
	if opts.APIKey != "" {
		api.Use(s.requireAPIKey())
	}
	{
		api.POST("/generate-script", s.handleGenerateScript)
		api.POST("/validate", s.handleValidate)
		api.POST("/dry-run", s.handleDryRun)
	}

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr and serves until ctx is done, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Infof("API server listening on %s", ln.Addr())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		s.log.Info("Server stopped")
		return nil
	})

	return g.Wait()
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.log.WithFields(map[string]interface{}{
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).Round(time.Millisecond),
			"request_id": c.GetHeader("X-Request-ID"),
		}).Debugf("%s %s", c.Request.Method, c.Request.URL.Path)
	}
}

func (s *Server) requireAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || token != s.opts.APIKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid or missing API key"})
			return
		}
		c.Next()
	}
}
