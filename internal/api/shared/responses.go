package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithStatus writes a status-only response with an empty body.
// Domain failures (404) and timeouts (408) carry no body; only the
// status code is meaningful to the client.
func RespondWithStatus(w http.ResponseWriter, r *http.Request, status int) {
	// Get trace ID from context if available
	traceID := GetTraceID(r.Context())

	slog.Debug("sending status-only response",
		"status_code", status,
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	w.WriteHeader(status)
}

// RespondWithStatusAndLog writes a status-only response and logs the
// underlying error. This is useful where the full error belongs in the
// logs but the client only observes the status code.
//
// Log level strategy:
// - 5xx errors: logged at ERROR level
// - everything else: logged at DEBUG level
func RespondWithStatusAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	err error,
) {
	// Get trace ID from context if available
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
	}

	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", err.Error()),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}

	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	w.WriteHeader(status)
}

// RespondWithInternalError writes the plain-text 500 response used for
// errors that are defects rather than domain conditions. Unlike the
// status-only failures, the 500 path carries a diagnostic message.
func RespondWithInternalError(w http.ResponseWriter, r *http.Request, err error) {
	traceID := GetTraceID(r.Context())

	slog.LogAttrs(r.Context(), slog.LevelError, "unhandled internal error",
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.String("error", fmt.Sprintf("%v", err)),
		slog.String("error_type", fmt.Sprintf("%T", err)))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	if _, werr := fmt.Fprintf(w, "Unhandled internal error: %v", err); werr != nil {
		slog.Error("failed to write error response", "error", werr)
	}
}
