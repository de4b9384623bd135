package logging

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RequestMiddleware tags each request with an ID (generated unless the
// client sent X-Request-ID) and logs start/completion. Paths matching one
// of quietPrefixes log at trace instead of info: pointer-move traffic
// arrives dozens of times a second during a drag and would drown the log.
func RequestMiddleware(quietPrefixes ...string) func(http.Handler) http.Handler {
	quiet := func(path string) bool {
		for _, p := range quietPrefixes {
			if strings.HasPrefix(path, p) {
				return true
			}
		}
		return false
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.New().String()
			}

			ctx := WithRequestID(r.Context(), requestID)
			r = r.WithContext(ctx)
			w.Header().Set("X-Request-ID", requestID)

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			logStart := InfoContext
			logDone := InfoContext
			if quiet(r.URL.Path) {
				logStart, logDone = TraceContext, TraceContext
			}

			start := time.Now()
			logStart(ctx, "request started",
				"method", r.Method,
				"path", r.URL.Path,
				"remoteAddr", r.RemoteAddr,
			)

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)
			if wrapped.statusCode >= 400 {
				logDone = ErrorContext
			}
			logDone(ctx, "request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.statusCode,
				"durationMs", duration.Milliseconds(),
			)
		})
	}
}

// responseWriter captures the status code for completion logging.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Flush forwards to the underlying writer so SSE streams keep working
// behind the wrapper.
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
