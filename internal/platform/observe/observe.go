// Package observe wraps a service operation in an OpenTelemetry span and
// records its latency and rule rejections.
package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"licensing/internal/platform/metrics"
	dErrors "licensing/pkg/domain-errors"
)

// Operation starts a span named op. The returned func ends it with the
// operation's error:
//
//	ctx, done := observe.Operation(ctx, tracer, s.metrics, "license.detain")
//	defer func() { done(err) }()
func Operation(ctx context.Context, tracer trace.Tracer, m *metrics.Metrics, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, op, trace.WithAttributes(attrs...))
	return ctx, func(err error) {
		defer span.End()
		m.ObserveOperation(op, start)
		if err == nil {
			span.SetStatus(codes.Ok, "")
			return
		}
		code := dErrors.CodeOf(err)
		span.SetAttributes(attribute.String("licensing.error_code", string(code)))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if IsRuleRejection(code) {
			m.IncRuleRejection(op, string(code))
		}
	}
}

// IsRuleRejection reports whether code is a business-rule outcome rather than
// an infrastructure failure.
func IsRuleRejection(code dErrors.Code) bool {
	switch code {
	case "", dErrors.CodePersistenceFailure, dErrors.CodeTimeout, dErrors.CodeInternal:
		return false
	}
	return true
}
