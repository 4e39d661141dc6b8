package dashboard

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/searchlab/recipebench/logger"
	"github.com/searchlab/recipebench/tracer"
)

// requestIDMiddleware adds a unique request ID to each request
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("requestID", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// loggingMiddleware logs each request through the structured logger.
func loggingMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.Info("http request", nil, map[string]interface{}{
			"request_id": c.GetString("requestID"),
			"method":     c.Request.Method,
			"path":       path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
		})
	}
}

// traceContextMiddleware continues upstream traces by extracting W3C trace
// headers into the request context.
func traceContextMiddleware(tr *tracer.Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tr == nil {
			c.Next()
			return
		}

		carrier := map[string]string{}
		if v := c.GetHeader("traceparent"); v != "" {
			carrier["traceparent"] = v
		}
		if v := c.GetHeader("tracestate"); v != "" {
			carrier["tracestate"] = v
		}
		if len(carrier) > 0 {
			c.Request = c.Request.WithContext(tr.SetCarrierOnContext(c.Request.Context(), carrier))
		}
		c.Next()
	}
}
