// Package http wires the analysis API: the gin router, its middleware chain
// and the graceful-shutdown server wrapper.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/AstroAspect-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AstroAspect-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/AstroAspect-Intelligence/internal/interfaces/http/handlers"
	"github.com/turtacn/AstroAspect-Intelligence/internal/interfaces/http/middleware"
)

// RouterConfig holds every dependency the router mounts.
type RouterConfig struct {
	AnalysisHandler *handlers.AnalysisHandler
	HealthHandler   *handlers.HealthHandler

	Logger  logging.Logger
	Metrics *prometheus.AppMetrics
	// MetricsHandler serves the Prometheus exposition; nil disables MetricsPath.
	MetricsHandler http.Handler
	MetricsPath    string

	// Mode is the gin mode: "debug", "release" or "test".
	Mode        string
	MaxBodySize int64
	CORS        middleware.CORSConfig
	// RateLimiter enables per-client throttling when non-nil.
	RateLimiter middleware.RateLimiter
}

// NewRouter builds the gin engine.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.RequestLogging(logger, middleware.DefaultLoggingConfig()),
		middleware.Metrics(cfg.Metrics),
		middleware.CORS(cfg.CORS),
	)
	if cfg.RateLimiter != nil {
		r.Use(middleware.RateLimit(cfg.RateLimiter, middleware.DefaultRateLimitConfig()))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handlers.ErrorResponse{Code: "COMMON_005", Message: "route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, handlers.ErrorResponse{Code: "COMMON_002", Message: "method not allowed"})
	})

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterRoutes(r)
	}
	if cfg.MetricsHandler != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(cfg.MetricsHandler))
	}

	if cfg.AnalysisHandler != nil {
		v1 := r.Group("/api/v1", middleware.BodyLimit(cfg.MaxBodySize))
		cfg.AnalysisHandler.RegisterRoutes(v1)
	}
	return r
}

//Personal.AI order the ending
