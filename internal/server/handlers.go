package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/naka-gawa/github-assistant/internal/domain"
)

// analysisParseMessage is shown when the model's review could not be decoded.
const analysisParseMessage = "Failed to parse analysis result"

type profileReviewRequest struct {
	Username string `json:"username"`
}

type repoRequest struct {
	RepoOwner string `json:"repoOwner"`
	RepoName  string `json:"repoName"`
	Branch    string `json:"branch"`
}

func (s *Server) handleProfileReview(c *gin.Context) {
	var req profileReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	key := "profile:" + normalize(req.Username)
	v, err := s.run(c, "profile-review", key, func(ctx context.Context) (any, error) {
		return s.profiles.Review(ctx, req.Username)
	})
	if err != nil {
		// A review that failed to parse still carries the profile data.
		if review, ok := v.(*domain.ProfileReview); ok && review != nil && errors.Is(err, domain.ErrAnalysisParse) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":       analysisParseMessage,
				"profileData": review.ProfileData,
			})
			return
		}
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (s *Server) handleReadmeGenerator(c *gin.Context) {
	var req repoRequest
	if !bindJSON(c, &req) {
		return
	}
	key := "readme:" + normalize(req.RepoOwner) + "/" + normalize(req.RepoName) + "@" + strings.TrimSpace(req.Branch)
	v, err := s.run(c, "readme-generator", key, func(ctx context.Context) (any, error) {
		return s.readmes.Generate(ctx, req.RepoOwner, req.RepoName, req.Branch)
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (s *Server) handleRepoVisualizer(c *gin.Context) {
	var req repoRequest
	if !bindJSON(c, &req) {
		return
	}
	key := "visualize:" + normalize(req.RepoOwner) + "/" + normalize(req.RepoName)
	v, err := s.run(c, "repo-visualizer", key, func(ctx context.Context) (any, error) {
		return s.visualizer.Visualize(ctx, req.RepoOwner, req.RepoName)
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// run executes fn through the response cache. The execution is detached from the
// request's cancellation because other callers may be waiting on the same result.
func (s *Server) run(c *gin.Context, endpoint, key string, fn func(ctx context.Context) (any, error)) (any, error) {
	v, hit, err := s.cache.do(key, func() (any, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), s.timeout)
		defer cancel()
		return fn(ctx)
	})
	if hit {
		cacheLookups.WithLabelValues(endpoint, "hit").Inc()
	} else {
		cacheLookups.WithLabelValues(endpoint, "miss").Inc()
	}
	return v, err
}

// writeError maps an error to its status code. The body is always {"error": message}.
func (s *Server) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrLLMUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}
	if status >= http.StatusInternalServerError {
		s.logger.Printf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return false
	}
	return true
}

// normalize lowercases GitHub names, which are case-insensitive.
func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
