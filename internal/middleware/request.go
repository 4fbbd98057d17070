package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/event-marketplace/internal/logger"
)

const HeaderRequestID = "X-Request-ID"

var tracer = otel.Tracer("github.com/BruksfildServices01/event-marketplace/internal/middleware")

// RequestLogger tags every request with an id, opens the server span and
// puts a scoped logger in the request context.
func RequestLogger(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Writer.Header().Set(HeaderRequestID, id)

		ctx, span := tracer.Start(c.Request.Context(), c.Request.Method+" "+c.FullPath(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attribute.String("request.id", id)),
		)
		defer span.End()

		l := base.With(zap.String("request_id", id))
		if sc := span.SpanContext(); sc.IsValid() {
			l = l.With(zap.String("trace_id", sc.TraceID().String()))
		}
		c.Request = c.Request.WithContext(logger.WithContext(ctx, l))

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.status_code", status))

		l.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
