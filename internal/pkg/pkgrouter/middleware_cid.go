package pkgrouter

import (
	"net/http"
	"strings"

	"github.com/m4ur1n0/rtvf-information-automation/internal/pkg/pkglog"
)

// Generator generates a unique string, used as the correlation ID of
// requests that arrive without one.
type Generator interface {
	Generate() string
}

const (
	// HeaderCorrelationID carries the uploader's run ID. Every chunk request
	// of one run sends the same value.
	HeaderCorrelationID = "X-Correlation-ID"
	// HeaderRequestID carries the ID of a single chunk request.
	HeaderRequestID = "X-Request-ID"

	maxIDLen = 128
)

// cleanID trims v and drops values that would break a header or a log line.
func cleanID(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.ContainsAny(v, "\r\n") {
		return ""
	}
	if len(v) > maxIDLen {
		v = v[:maxIDLen]
	}
	return v
}

// incomingIDs are the IDs an uploader attaches to a chunk request.
type incomingIDs struct {
	run     string
	request string
}

func readIDs(h http.Header) incomingIDs {
	return incomingIDs{
		run:     cleanID(h.Get(HeaderCorrelationID)),
		request: cleanID(h.Get(HeaderRequestID)),
	}
}

// correlation picks the ID that ties log lines together: the run ID, else
// the request ID for clients that only send one, else a generated one.
func (ids incomingIDs) correlation(uid Generator) string {
	switch {
	case ids.run != "":
		return ids.run
	case ids.request != "":
		return ids.request
	case uid != nil:
		return uid.Generate()
	default:
		return ""
	}
}

func middlewareCorrelationID(uid Generator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ids := readIDs(r.Header)
			ctx := r.Context()

			if cid := ids.correlation(uid); cid != "" {
				w.Header().Set(HeaderCorrelationID, cid)
				ctx = pkglog.SetCorrelationID(ctx, cid)
			}
			if ids.request != "" {
				w.Header().Set(HeaderRequestID, ids.request)
				ctx = pkglog.SetRequestID(ctx, ids.request)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
