// Package api implements the HTTP trigger surface for the deal pipeline.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonesrussell/godeals/internal/config"
	"github.com/jonesrussell/godeals/internal/domain"
	"github.com/jonesrussell/godeals/internal/logger"
	"github.com/jonesrussell/godeals/internal/storage"
)

// Runner triggers one pipeline run.
type Runner interface {
	Run(ctx context.Context) (*domain.RunSummary, error)
}

// artifactNames maps public artifact names to their storage keys. Only
// these names are readable through the API.
var artifactNames = map[string]string{
	"catalog":     domain.KeyCatalog,
	"catalog-raw": domain.KeyCatalogRaw,
	"stats":       domain.KeyStats,
	"featured":    domain.KeyFeatured,
	"history":     domain.KeyHistory,
}

// SetupRouter creates and configures the Gin router with all routes.
func SetupRouter(
	log logger.Interface,
	runner Runner,
	store storage.Interface,
	cfg config.Interface,
	gatherer prometheus.Gatherer,
) *gin.Engine {
	// Disable Gin's default logging
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Define public routes
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(
			promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	v1 := router.Group("/api/v1")
	if cfg.GetServerConfig().SecurityEnabled {
		v1.Use(apiKeyMiddleware(cfg.GetServerConfig().APIKey, log))
	}

	v1.POST("/runs", handleRun(runner, log))
	v1.GET("/artifacts/:name", handleArtifact(store, log))

	return router
}

// handleRun triggers one pipeline run. The operation is idempotent:
// identical source data and date produce identical artifacts, and
// persistence is overwrite-by-key.
func handleRun(runner Runner, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := runner.Run(c.Request.Context())
		if err != nil {
			log.Error("Pipeline run failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "pipeline run failed",
			})
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

// handleArtifact serves a persisted artifact to downstream consumers (the
// browsing UI and the alert matcher read only these).
func handleArtifact(store storage.Interface, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		key, ok := artifactNames[name]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown artifact"})
			return
		}

		data, err := store.Get(c.Request.Context(), key)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "artifact not yet generated"})
				return
			}
			log.Error("Failed to read artifact", "key", key, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})
			return
		}

		c.Data(http.StatusOK, "application/json", data)
	}
}

// loggingMiddleware creates a middleware that logs HTTP requests
func loggingMiddleware(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()

		log.Info("HTTP Request",
			"method", c.Request.Method,
			"path", path,
			"query", query,
			"status", statusCode,
			"latency", latency,
		)
	}
}

// corsMiddleware adds CORS headers to allow frontend access
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, "+
				"Cache-Control, X-Requested-With, X-API-Key")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// apiKeyMiddleware rejects requests without the configured API key.
func apiKeyMiddleware(apiKey string, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader("X-API-Key")
		if provided == "" || provided != apiKey {
			log.Warn("Rejected request with missing or invalid API key",
				"path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid API key",
			})
			return
		}
		c.Next()
	}
}
