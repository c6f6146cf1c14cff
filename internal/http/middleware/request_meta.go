package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/people-backend/internal/platform/ctxutil"
)

const (
	headerTraceID   = "X-Trace-Id"
	headerRequestID = "X-Request-Id"

	maxIncomingIDLength = 128
)

// incomingID returns the trimmed header value, or "" when it is missing or
// too long to trust.
func incomingID(c *gin.Context, header string) string {
	v := strings.TrimSpace(c.GetHeader(header))
	if len(v) > maxIncomingIDLength {
		return ""
	}
	return v
}

// AttachRequestMeta stamps every request with a request id and a trace id.
// An active OTel span wins over a caller-supplied trace id.
func AttachRequestMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		meta := &ctxutil.RequestMeta{
			RequestID: incomingID(c, headerRequestID),
			ClientIP:  c.ClientIP(),
		}
		if meta.RequestID == "" {
			meta.RequestID = uuid.NewString()
		}
		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			meta.TraceID = sc.TraceID().String()
		} else if id := incomingID(c, headerTraceID); id != "" {
			meta.TraceID = id
		} else {
			meta.TraceID = strings.ReplaceAll(uuid.NewString(), "-", "")
		}

		c.Request = c.Request.WithContext(ctxutil.WithRequestMeta(c.Request.Context(), meta))
		c.Header(headerTraceID, meta.TraceID)
		c.Header(headerRequestID, meta.RequestID)
		c.Next()
	}
}
