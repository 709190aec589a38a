package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Metrics is safe to use as a nil pointer; every recorder is then a no-op.
type Metrics struct {
	HTTPRequests     metric.Int64Counter
	HTTPDuration     metric.Float64Histogram
	PostsCreated     metric.Int64Counter
	LeadsCaptured    metric.Int64Counter
	RateLimited      metric.Int64Counter
	LimiterFailures  metric.Int64Counter
	EmailsDispatched metric.Int64Counter
}

func Setup(serviceName string) (*Metrics, http.Handler, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, nil, err
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	m := &Metrics{}

	m.HTTPRequests, err = meter.Int64Counter(
		"pedalads_http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.HTTPDuration, err = meter.Float64Histogram(
		"pedalads_http_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.PostsCreated, err = meter.Int64Counter(
		"pedalads_posts_created_total",
		metric.WithDescription("Blog posts created"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.LeadsCaptured, err = meter.Int64Counter(
		"pedalads_leads_captured_total",
		metric.WithDescription("Form submissions stored, by kind"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.RateLimited, err = meter.Int64Counter(
		"pedalads_rate_limited_total",
		metric.WithDescription("Requests rejected by the rate limiter, by action"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.LimiterFailures, err = meter.Int64Counter(
		"pedalads_rate_limiter_failures_total",
		metric.WithDescription("Rate limiter errors that let the request through"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.EmailsDispatched, err = meter.Int64Counter(
		"pedalads_emails_total",
		metric.WithDescription("Email jobs processed, by outcome"),
	)
	if err != nil {
		return nil, nil, err
	}

	return m, promhttp.Handler(), nil
}

func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labels := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
		attribute.Int("status", status),
	)

	m.HTTPRequests.Add(ctx, 1, labels)
	m.HTTPDuration.Record(ctx, duration.Seconds(), labels)
}

func (m *Metrics) RecordPostCreated(ctx context.Context, category string) {
	if m == nil {
		return
	}
	m.PostsCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("category", category)))
}

func (m *Metrics) RecordLead(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.LeadsCaptured.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

func (m *Metrics) RecordRateLimited(ctx context.Context, action string) {
	if m == nil {
		return
	}
	m.RateLimited.Add(ctx, 1, metric.WithAttributes(attribute.String("action", action)))
}

func (m *Metrics) RecordLimiterFailure(ctx context.Context, action string) {
	if m == nil {
		return
	}
	m.LimiterFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("action", action)))
}

func (m *Metrics) RecordEmail(ctx context.Context, ok bool) {
	if m == nil {
		return
	}
	outcome := "sent"
	if !ok {
		outcome = "failed"
	}
	m.EmailsDispatched.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
