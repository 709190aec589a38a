package middleware

import (
	"net/http"
	"strconv"
	"time"

	"pedalads/internal/logger"
	"pedalads/internal/reqctx"
	helpers "pedalads/internal/utils/helpers"

	"github.com/go-chi/httprate"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// GlobalRateLimit is a process-wide token bucket refilled at rpm requests
// per minute. rpm <= 0 disables it.
func GlobalRateLimit(rpm int) func(http.Handler) http.Handler {
	if rpm <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	limiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), rpm)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				logger.WithCtx(r.Context()).Warn("global rate limit exceeded", zap.String("path", r.URL.Path))
				w.Header().Set("Retry-After", "60")
				helpers.Error(w, http.StatusTooManyRequests, "Too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// BurstLimit caps each client at n requests per window on the routes it
// wraps. Must run after ClientIP.
func BurstLimit(n int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(n, window,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			return reqctx.ClientIP(r.Context()), nil
		}),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			logger.WithCtx(r.Context()).Warn("burst limit exceeded", zap.String("path", r.URL.Path))
			w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
			helpers.Error(w, http.StatusTooManyRequests, "Too many requests")
		}),
	)
}
