// Package httpapi exposes the bot's operational HTTP surface: a liveness
// probe and the Prometheus scrape endpoint. It is a sidecar to the gateway
// connection, not a public API, so the middleware stack is deliberately
// small: structured access logs and panic recovery.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// RegisterRoutes attaches the sidecar endpoints to the given Gin engine.
// /healthz reports liveness and database reachability; /metrics serves the
// Prometheus registry (bot counters plus Go runtime collectors).
func RegisterRoutes(r *gin.Engine, db *gorm.DB, log zerolog.Logger) {
	r.Use(accessLog(log))
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// accessLog emits one structured log line per request, leveled by outcome.
func accessLog(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ev := log.Info()
		switch {
		case c.Writer.Status() >= 500:
			ev = log.Error()
		case c.Writer.Status() >= 400:
			ev = log.Warn()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("http request")
	}
}
