package httpapi

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the instruments recorded by the HTTP handler.
type Metrics struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
	matches  metric.Int64Histogram
}

// NewMetrics creates the instruments with the given meter.
func NewMetrics(meter metric.Meter) (m *Metrics, err error) {
	m = &Metrics{}

	m.requests, err = meter.Int64Counter("webtools_http_requests_total",
		metric.WithDescription("HTTP requests handled, by route and status code."))
	if err != nil {
		return
	}

	m.duration, err = meter.Float64Histogram("webtools_http_request_duration_seconds",
		metric.WithDescription("Time taken to handle HTTP requests."),
		metric.WithUnit("s"))
	if err != nil {
		return
	}

	m.matches, err = meter.Int64Histogram("webtools_regexp_matches",
		metric.WithDescription("Number of matches returned by a regexp check."))
	return
}

func (m *Metrics) recordRequest(ctx context.Context, route string, status int, timeTaken time.Duration) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("route", route),
		attribute.String("status", strconv.Itoa(status)),
	)
	m.requests.Add(ctx, 1, attrs)
	m.duration.Record(ctx, timeTaken.Seconds(), attrs)
}

func (m *Metrics) recordMatches(ctx context.Context, n int) {
	if m == nil {
		return
	}

	m.matches.Record(ctx, int64(n))
}
