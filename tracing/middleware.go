// Package tracing records an OpenTelemetry span for every client operation.
package tracing

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/objkit/objkit-go"
	"github.com/objkit/objkit-go/middleware"
	"github.com/objkit/objkit-go/middleware/id"
	objkithttp "github.com/objkit/objkit-go/transport/http"
)

// ScopeName is the instrumentation scope of the spans.
const ScopeName = "github.com/objkit/objkit-go"

// Span attribute keys set in addition to the rpc semantic conventions.
const (
	AttributeRequestID = attribute.Key("objkit.request_id")
	AttributeErrorCode = attribute.Key("objkit.error.code")
)

type operationSpan struct {
	tracer trace.Tracer
}

// AddSpanMiddleware adds a middleware to the front of the initialize step
// that wraps the whole operation in a client span. A nil provider uses the
// global TracerProvider.
func AddSpanMiddleware(stack *middleware.Stack, tp trace.TracerProvider) error {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return stack.Initialize.Add(&operationSpan{tracer: tp.Tracer(ScopeName)}, middleware.Before)
}

func (*operationSpan) ID() string { return id.OperationTracing }

func (m *operationSpan) HandleInitialize(ctx context.Context, in middleware.InitializeInput, next middleware.InitializeHandler) (
	out middleware.InitializeOutput, metadata middleware.Metadata, err error,
) {
	service := middleware.GetServiceID(ctx)
	operation := middleware.GetOperationName(ctx)

	ctx, span := m.tracer.Start(ctx, service+"."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("rpc.system", "objkit"),
			attribute.String("rpc.service", service),
			attribute.String("rpc.method", operation),
		),
	)
	defer span.End()

	out, metadata, err = next.HandleInitialize(ctx, in)

	if code, ok := objkithttp.GetResponseStatusCode(metadata); ok {
		span.SetAttributes(attribute.Int("http.response.status_code", code))
	}
	if v, ok := objkithttp.GetRequestID(metadata); ok && len(v) != 0 {
		span.SetAttributes(AttributeRequestID.String(v))
	}

	if err != nil {
		var apiErr objkit.APIError
		if errors.As(err, &apiErr) {
			span.SetAttributes(AttributeErrorCode.String(apiErr.ErrorCode()))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return out, metadata, err
	}

	span.SetStatus(codes.Ok, "")
	return out, metadata, err
}
