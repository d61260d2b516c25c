// Package server exposes the use cases over HTTP and serves the web page.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/naka-gawa/github-assistant/internal/domain"
)

//go:embed static
var staticFiles embed.FS

const shutdownTimeout = 10 * time.Second

// ProfileReviewer reviews a GitHub profile.
type ProfileReviewer interface {
	Review(ctx context.Context, username string) (*domain.ProfileReview, error)
}

// ReadmeGenerator drafts a README for a repository.
type ReadmeGenerator interface {
	Generate(ctx context.Context, owner, name, branch string) (*domain.ReadmeDraft, error)
}

// RepoVisualizer collects the metrics of a repository.
type RepoVisualizer interface {
	Visualize(ctx context.Context, owner, name string) (*domain.RepoVisualization, error)
}

// Options configures a Server.
type Options struct {
	AllowedOrigins []string
	// CacheTTL is how long successful responses are reused. Zero disables caching.
	CacheTTL       time.Duration
	RequestTimeout time.Duration
	Logger         *log.Logger
}

// Server routes API requests to the use cases.
type Server struct {
	profiles   ProfileReviewer
	readmes    ReadmeGenerator
	visualizer RepoVisualizer
	cache      *responseCache
	timeout    time.Duration
	logger     *log.Logger
	engine     *gin.Engine
	indexHTML  []byte
}

// New creates a Server and registers its routes.
func New(profiles ProfileReviewer, readmes ReadmeGenerator, visualizer RepoVisualizer, opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 2 * time.Minute
	}
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded web page: %w", err)
	}
	index, err := fs.ReadFile(static, "index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded index page: %w", err)
	}

	s := &Server{
		profiles:   profiles,
		readmes:    readmes,
		visualizer: visualizer,
		cache:      newResponseCache(opts.CacheTTL),
		timeout:    opts.RequestTimeout,
		logger:     opts.Logger,
		engine:     gin.New(),
		indexHTML:  index,
	}

	s.engine.Use(gin.Recovery(), requestLogger(s.logger), cors(opts.AllowedOrigins), instrument())

	api := s.engine.Group("/api")
	api.POST("/profile-review", s.handleProfileReview)
	api.POST("/readme-generator", s.handleReadmeGenerator)
	api.POST("/repo-visualizer", s.handleRepoVisualizer)

	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.engine.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", s.indexHTML)
	})
	s.engine.StaticFS("/static", http.FS(static))

	return s, nil
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
		s.logger.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down: %w", err)
		}
		return nil
	}
}
