package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/inoUwU/todo-api/internal/api/shared"
	"github.com/inoUwU/todo-api/internal/platform/logger"
)

// NewTraceMiddleware returns a middleware that adds a trace ID to the
// request context and attaches a trace-scoped logger for all downstream
// handlers. It should be applied early in the middleware chain so that
// every subsequent handler logs with the same trace ID.
func NewTraceMiddleware(baseLogger *slog.Logger) func(http.Handler) http.Handler {
	if baseLogger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for trace middleware")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Add a trace ID to the context
			ctx := shared.SetTraceID(r.Context())

			// Get the trace ID for logging
			traceID := shared.GetTraceID(ctx)

			// Add trace ID to the logger and carry the logger in the context
			log := baseLogger.With(slog.String("trace_id", traceID))
			ctx = logger.WithContext(ctx, log)

			// Log the incoming request with trace ID
			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			// Wrap the response writer to capture the status and size for
			// the completion log line
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			start := time.Now()
			next.ServeHTTP(ww, r.WithContext(ctx))

			log.Info("request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)))
		})
	}
}
