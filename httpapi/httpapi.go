// Package httpapi implements SPEC_FULL.md §4's "thin httpapi package
// that calls the four host entry points from §6 and nothing else": a
// gin router exposing compile, execute, and a live-stats websocket
// stream over the pipeline.Driver this module's core already built.
// Grounded on the teacher's services/orchestrator router (gin.New +
// otelgin.Middleware + grouped /v1 routes, services/orchestrator/
// routes/routes.go and cmd/trace/main.go) and its
// handlers/websocket.go for the upgrade pattern.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	otelgin "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/meschsystems/jyro/artifact"
	"github.com/meschsystems/jyro/pipeline"
)

// Server bundles a pipeline.Driver with the HTTP-specific concerns
// (logging, per-remote-address rate limiting) needed to expose it
// safely to untrusted clients.
type Server struct {
	driver  *pipeline.Driver
	logger  *slog.Logger
	limiter *limiterGroup
	cache   *artifact.Cache
}

// NewServer builds a Server around driver. A nil logger defaults to
// slog.Default(). executeRPS/executeBurst configure the per-remote-
// address token bucket guarding /v1/execute; pass 0 for both to
// disable rate limiting entirely (e.g. for an internal/trusted
// deployment).
func NewServer(driver *pipeline.Driver, logger *slog.Logger, executeRPS float64, executeBurst int) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		driver:  driver,
		logger:  logger.With(slog.String("component", "httpapi")),
		limiter: newLimiterGroup(executeRPS, executeBurst),
	}
}

// NewRouter builds a gin.Engine with Recovery, otelgin request tracing,
// and this module's /health and /v1 routes registered.
func (s *Server) NewRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("jyro"))

	router.GET("/health", s.handleHealth)

	v1 := router.Group("/v1")
	{
		v1.POST("/compile", s.handleCompile)
		v1.POST("/execute", s.executeRateLimit(), s.handleExecute)
		v1.GET("/stream", s.handleStream)
	}
	return router
}

// WithCache attaches a content-addressed artifact cache that
// handleCompile consults before running CompileToArtifact and
// populates afterward, so identical source text compiled repeatedly
// (the common case for a host re-sending the same script) skips Parse
// and Validate on every call after the first. A nil cache (the
// default) disables this and every /v1/compile request compiles fresh.
func (s *Server) WithCache(cache *artifact.Cache) *Server {
	s.cache = cache
	return s
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
