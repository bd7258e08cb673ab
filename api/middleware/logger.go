package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kilianp07/lfpfade/core/logger"
)

// Logger logs one structured line per request.
func Logger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := map[string]any{
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     c.Writer.Status(),
			"latency_ms": float64(time.Since(start).Microseconds()) / 1000,
			"client_ip":  c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}
		if c.Writer.Status() >= 500 {
			log.Errorf("%s %s -> %d", c.Request.Method, c.Request.URL.Path, c.Writer.Status())
			return
		}
		log.Infow("request", fields)
	}
}
