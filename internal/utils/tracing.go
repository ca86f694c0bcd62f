package utils

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "painel-brotar"

// TraceOperation starts a span with the given attributes. The returned
// cleanup records the duration and ends the span.
func TraceOperation(ctx context.Context, operationName string, attributes map[string]interface{}) (context.Context, trace.Span, func()) {
	start := time.Now()

	otelAttrs := make([]attribute.KeyValue, 0, len(attributes))
	for k, v := range attributes {
		switch val := v.(type) {
		case string:
			otelAttrs = append(otelAttrs, attribute.String(k, val))
		case int:
			otelAttrs = append(otelAttrs, attribute.Int(k, val))
		case int64:
			otelAttrs = append(otelAttrs, attribute.Int64(k, val))
		case bool:
			otelAttrs = append(otelAttrs, attribute.Bool(k, val))
		case float64:
			otelAttrs = append(otelAttrs, attribute.Float64(k, val))
		default:
			otelAttrs = append(otelAttrs, attribute.String(k, "unknown_type"))
		}
	}

	spanCtx, span := otel.Tracer(tracerName).Start(ctx, operationName, trace.WithAttributes(otelAttrs...))

	cleanup := func() {
		span.SetAttributes(attribute.Int64("duration_ms", time.Since(start).Milliseconds()))
		span.End()
	}

	return spanCtx, span, cleanup
}

// TraceHTTPOperation traces an outgoing call to the registry backend
func TraceHTTPOperation(ctx context.Context, method, path, resource string) (context.Context, trace.Span, func()) {
	return TraceOperation(ctx, "backend."+method+" "+resource, map[string]interface{}{
		"http.method":      method,
		"http.target":      path,
		"backend.resource": resource,
	})
}

// TraceReconcileOperation traces one child create/update/delete issued on
// parent submit
func TraceReconcileOperation(ctx context.Context, child, operation string, childID int64) (context.Context, trace.Span, func()) {
	return TraceOperation(ctx, "reconcile."+child+"."+operation, map[string]interface{}{
		"reconcile.child":     child,
		"reconcile.operation": operation,
		"reconcile.child_id":  childID,
	})
}
