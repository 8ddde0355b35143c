package mylogger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

func Info(ctx context.Context, logger *zap.Logger, msg string, fields ...zap.Field) {
	caller(logger).Info(msg, withTrace(ctx, fields)...)
}

func Error(ctx context.Context, logger *zap.Logger, msg string, fields ...zap.Field) {
	caller(logger).Error(msg, withTrace(ctx, fields)...)
}

func Warn(ctx context.Context, logger *zap.Logger, msg string, fields ...zap.Field) {
	caller(logger).Warn(msg, withTrace(ctx, fields)...)
}

func Debug(ctx context.Context, logger *zap.Logger, msg string, fields ...zap.Field) {
	caller(logger).Debug(msg, withTrace(ctx, fields)...)
}

func caller(logger *zap.Logger) *zap.Logger {
	return logger.WithOptions(zap.AddCallerSkip(1))
}

// withTrace appends trace_id and span_id when ctx carries a valid span.
func withTrace(ctx context.Context, fields []zap.Field) []zap.Field {
	spanCtx := trace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return fields
	}

	return append(fields,
		zap.String("trace_id", spanCtx.TraceID().String()),
		zap.String("span_id", spanCtx.SpanID().String()),
	)
}
