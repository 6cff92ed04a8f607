// Package metrics records OpenTelemetry call metrics for client operations.
package metrics

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/objkit/objkit-go"
	"github.com/objkit/objkit-go/middleware"
	"github.com/objkit/objkit-go/middleware/id"
	objkithttp "github.com/objkit/objkit-go/transport/http"
)

// ScopeName is the instrumentation scope of the instruments.
const ScopeName = "github.com/objkit/objkit-go"

// Instrument names.
const (
	CallCountName    = "objkit.client.call.count"
	CallDurationName = "objkit.client.call.duration"
)

// Outcome attribute values.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// OperationMetrics holds the instruments shared by every operation of a
// client. It is safe for concurrent use.
type OperationMetrics struct {
	calls    metric.Int64Counter
	duration metric.Float64Histogram

	now func() time.Time
}

// NewOperationMetrics creates the call instruments with the meter provider.
// A nil provider uses the global MeterProvider.
func NewOperationMetrics(mp metric.MeterProvider) (*OperationMetrics, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(ScopeName)

	calls, err := meter.Int64Counter(CallCountName,
		metric.WithDescription("The number of operation calls made"),
		metric.WithUnit("{call}"))
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(CallDurationName,
		metric.WithDescription("The time taken by an operation call, including the response body decode"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	return &OperationMetrics{calls: calls, duration: duration, now: time.Now}, nil
}

// AddMetricsMiddleware adds m to the front of the initialize step.
func AddMetricsMiddleware(stack *middleware.Stack, m *OperationMetrics) error {
	return stack.Initialize.Add(m, middleware.Before)
}

// ID returns the identifier for the metrics middleware.
func (*OperationMetrics) ID() string { return id.OperationMetrics }

// HandleInitialize times the rest of the operation and records the call.
func (m *OperationMetrics) HandleInitialize(ctx context.Context, in middleware.InitializeInput, next middleware.InitializeHandler) (
	out middleware.InitializeOutput, metadata middleware.Metadata, err error,
) {
	start := m.now()
	out, metadata, err = next.HandleInitialize(ctx, in)
	elapsed := m.now().Sub(start)

	attrs := []attribute.KeyValue{
		attribute.String("rpc.service", middleware.GetServiceID(ctx)),
		attribute.String("rpc.method", middleware.GetOperationName(ctx)),
	}
	if code, ok := objkithttp.GetResponseStatusCode(metadata); ok {
		attrs = append(attrs, attribute.Int("http.response.status_code", code))
	}
	if err != nil {
		attrs = append(attrs, attribute.String("outcome", OutcomeError))
		var apiErr objkit.APIError
		if errors.As(err, &apiErr) {
			attrs = append(attrs, attribute.String("error.code", apiErr.ErrorCode()))
		}
	} else {
		attrs = append(attrs, attribute.String("outcome", OutcomeSuccess))
	}

	set := metric.WithAttributes(attrs...)
	m.calls.Add(ctx, 1, set)
	m.duration.Record(ctx, elapsed.Seconds(), set)

	return out, metadata, err
}
