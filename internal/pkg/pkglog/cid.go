package pkglog

import "context"

type chainIDContextKey struct{}

type requestIDContextKey struct{}

// GetCorrelationID returns the correlation ID stored in the context.
//
// The HTTP middleware sets it per request; a delivery run sets it once with
// the run ID so every chunk log and outbound request carries the same value.
func GetCorrelationID(ctx context.Context) string {
	clm, ok := ctx.Value(chainIDContextKey{}).(string)
	if !ok {
		return "[invalid_chain_id]"
	}
	return clm
}

// SetCorrelationID stores a correlation ID into the context.
func SetCorrelationID(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, chainIDContextKey{}, cid)
}

// HasCorrelationID reports whether ctx carries a usable correlation ID.
func HasCorrelationID(ctx context.Context) bool {
	cid := GetCorrelationID(ctx)
	return cid != "" && cid != "[invalid_chain_id]"
}

// SetRequestID stores the ID of a single request, such as one chunk of a
// delivery run, into the context.
func SetRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDContextKey{}, rid)
}

// GetRequestID returns the request ID stored in the context, or "".
func GetRequestID(ctx context.Context) string {
	rid, _ := ctx.Value(requestIDContextKey{}).(string)
	return rid
}
