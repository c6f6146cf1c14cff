package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/people-backend/internal/platform/ctxutil"
	"github.com/yungbote/people-backend/internal/platform/logger"
)

func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		return func(c *gin.Context) { c.Next() }
	}
	log = log.With("component", "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		status := c.Writer.Status()
		kv := []interface{}{
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		ctx := c.Request.Context()
		if meta := ctxutil.GetRequestMeta(ctx); meta != nil {
			kv = append(kv, "request_id", meta.RequestID, "trace_id", meta.TraceID, "client_ip", meta.ClientIP)
		}
		if actor := ctxutil.Actor(ctx); actor != "" {
			kv = append(kv, "actor", actor)
		}
		if len(c.Errors) > 0 {
			kv = append(kv, "gin_errors", c.Errors.String())
		}

		if status >= 500 {
			log.Error("request failed", kv...)
			return
		}
		if status >= 400 {
			log.Warn("request rejected", kv...)
			return
		}
		log.Info("request", kv...)
	}
}
