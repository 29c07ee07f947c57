package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/inoUwU/todo-api/internal/platform/logger"
)

// Recoverer recovers from panics in downstream handlers, logs the panic
// with a stack trace, and responds 500 with a plain-text diagnostic.
// http.ErrAbortHandler is re-raised so the server can abort the connection
// the way net/http expects.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				// ALLOW-PANIC: net/http sentinel for aborting the connection
				panic(rec)
			}

			log := logger.FromContextOrDefault(r.Context(), slog.Default())
			log.Error("panic recovered",
				slog.String("panic", fmt.Sprintf("%v", rec)),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("stack", string(debug.Stack())))

			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusInternalServerError)
			if _, err := fmt.Fprintf(w, "Unhandled internal error: %v", rec); err != nil {
				log.Error("failed to write panic response", slog.String("error", err.Error()))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
