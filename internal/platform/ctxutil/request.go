package ctxutil

import "context"

type requestMetaKey struct{}

// RequestMeta identifies one inbound HTTP request across logs, traces and
// audit records.
type RequestMeta struct {
	RequestID string
	TraceID   string
	ClientIP  string
}

func WithRequestMeta(ctx context.Context, m *RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, m)
}

func GetRequestMeta(ctx context.Context) *RequestMeta {
	if ctx == nil {
		return nil
	}
	if m, ok := ctx.Value(requestMetaKey{}).(*RequestMeta); ok {
		return m
	}
	return nil
}

func RequestID(ctx context.Context) string {
	if m := GetRequestMeta(ctx); m != nil {
		return m.RequestID
	}
	return ""
}
