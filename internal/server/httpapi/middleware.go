package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mlukins/accountd/internal/logging"
)

// requestLogger logs one line per request through the project logger.
// Errors attached to the gin context (unexpected failures) are included.
func requestLogger(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		}

		if len(c.Errors) > 0 {
			log.Error(c.Request.Context(), "request failed", append(args, "error", c.Errors.String())...)
			return
		}

		log.Info(c.Request.Context(), "request", args...)
	}
}
