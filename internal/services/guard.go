package services

import (
	"context"

	"pedalads/internal/logger"
	"pedalads/internal/metrics"
	"pedalads/internal/ratelimit"
	"pedalads/internal/reqctx"

	"go.uber.org/zap"
)

// rateGuard applies a policy to the caller in ctx and fails open when the
// limiter itself errors.
type rateGuard struct {
	limiter ratelimit.Limiter
	metrics *metrics.Metrics
}

func (g rateGuard) allow(ctx context.Context, p ratelimit.Policy) bool {
	if g.limiter == nil {
		return true
	}
	id := reqctx.ClientIP(ctx)
	ok, err := g.limiter.Allow(ctx, id, p)
	if err != nil {
		logger.WithCtx(ctx).Warn("rate limiter failed, allowing request",
			zap.String("action", p.Action),
			zap.String("identifier", id),
			zap.Error(err),
		)
		g.metrics.RecordLimiterFailure(ctx, p.Action)
		return true
	}
	if !ok {
		logger.WithCtx(ctx).Warn("rate limit exceeded",
			zap.String("action", p.Action),
			zap.String("identifier", id),
		)
		g.metrics.RecordRateLimited(ctx, p.Action)
	}
	return ok
}
