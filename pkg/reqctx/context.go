package reqctx

import (
	"context"
	"time"
)

type ctxKey int

const keyRequestMeta ctxKey = iota

// RequestMeta is the per-request metadata captured by the HTTP middleware.
type RequestMeta struct {
	// RequestID is the UUID generated for (or forwarded with) the request.
	RequestID string

	// ClientIP as Fiber resolved it, honoring forwarding headers.
	ClientIP string

	UserAgent string

	// RequestedAt is when the middleware first saw the request.
	RequestedAt time.Time
}

func WithRequestMeta(ctx context.Context, meta *RequestMeta) context.Context {
	return context.WithValue(ctx, keyRequestMeta, meta)
}

func RequestMetaFromContext(ctx context.Context) (*RequestMeta, bool) {
	meta, ok := ctx.Value(keyRequestMeta).(*RequestMeta)
	return meta, ok && meta != nil
}

// MustRequestMeta panics when the metadata is absent. Only for paths the
// middleware is guaranteed to have covered.
func MustRequestMeta(ctx context.Context) *RequestMeta {
	meta, ok := RequestMetaFromContext(ctx)
	if !ok {
		panic("reqctx: RequestMeta not found in context")
	}
	return meta
}

// RequestIDFromContext returns just the request id, or "" when unset.
func RequestIDFromContext(ctx context.Context) string {
	meta, ok := RequestMetaFromContext(ctx)
	if !ok {
		return ""
	}
	return meta.RequestID
}
