package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/inoUwU/todo-api/internal/platform/logger"
)

// Timeout returns a middleware that enforces a per-request deadline. The
// handler runs against a buffered response writer in its own goroutine; if
// it finishes in time the buffered response is flushed to the client,
// otherwise the client receives a status-only 408 and the handler is
// abandoned. Store mutations already committed by an abandoned handler
// stand; there is no rollback.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			tw := &timeoutWriter{header: make(http.Header)}
			done := make(chan struct{})
			panicChan := make(chan interface{}, 1)

			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicChan <- p
					}
				}()
				next.ServeHTTP(tw, r.WithContext(ctx))
				close(done)
			}()

			select {
			case p := <-panicChan:
				// Re-raise on the request goroutine so the recoverer
				// middleware handles it.
				panic(p)

			case <-done:
				tw.mu.Lock()
				defer tw.mu.Unlock()
				dst := w.Header()
				for k, vv := range tw.header {
					dst[k] = vv
				}
				if tw.status == 0 {
					tw.status = http.StatusOK
				}
				w.WriteHeader(tw.status)
				if _, err := w.Write(tw.buf.Bytes()); err != nil {
					log := logger.FromContextOrDefault(ctx, slog.Default())
					log.Error("failed to write buffered response", slog.String("error", err.Error()))
				}

			case <-ctx.Done():
				tw.mu.Lock()
				tw.timedOut = true
				tw.mu.Unlock()

				log := logger.FromContextOrDefault(ctx, slog.Default())
				log.Warn("request timed out",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Duration("timeout", timeout))

				w.WriteHeader(http.StatusRequestTimeout)
			}
		})
	}
}

// timeoutWriter buffers the handler's response so that nothing reaches the
// client until the handler has beaten the deadline. After a timeout all
// writes are silently discarded.
type timeoutWriter struct {
	mu       sync.Mutex
	header   http.Header
	buf      bytes.Buffer
	status   int
	timedOut bool
}

func (tw *timeoutWriter) Header() http.Header {
	return tw.header
}

func (tw *timeoutWriter) WriteHeader(status int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut || tw.status != 0 {
		return
	}
	tw.status = status
}

func (tw *timeoutWriter) Write(p []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	if tw.status == 0 {
		tw.status = http.StatusOK
	}
	return tw.buf.Write(p)
}
