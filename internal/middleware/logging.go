package middleware

import (
	"log/slog"
	"time"

	"github.com/m1z23r/drift/pkg/drift"
)

func RequestLogger(logger *slog.Logger) drift.HandlerFunc {
	return func(c *drift.Context) {
		start := time.Now()

		c.Next()

		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
