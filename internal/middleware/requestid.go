package middleware

import (
	"net/http"

	"pedalads/internal/ratelimit"
	"pedalads/internal/reqctx"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestID assigns a request id (or keeps the incoming X-Request-Id),
// echoes it in the response and stores it for logger.WithCtx.
func RequestID(next http.Handler) http.Handler {
	return chimw.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := chimw.GetReqID(r.Context())
		w.Header().Set(chimw.RequestIDHeader, rid)
		next.ServeHTTP(w, r.WithContext(reqctx.WithRequestID(r.Context(), rid)))
	}))
}

// ClientIP resolves the caller identifier used by the rate limiter:
// first X-Forwarded-For entry, then X-Real-IP, then "unknown".
func ClientIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ratelimit.ClientIdentifier(r.Header)
		next.ServeHTTP(w, r.WithContext(reqctx.WithClientIP(r.Context(), id)))
	})
}
