package middleware

import (
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/exercise-tracker/internal/api/shared"
	"github.com/phrazzld/exercise-tracker/internal/platform/logger"
)

// TraceIDHeader is the response header carrying the request's trace ID.
const TraceIDHeader = "X-Trace-Id"

// Trace assigns a trace ID to every request and stores a logger carrying
// it in the request context. The chi request ID is reused when present,
// so it must run after chi's RequestID middleware.
func Trace(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context(), chimiddleware.GetReqID(r.Context()))
			traceID := shared.GetTraceID(ctx)

			ctx = logger.WithRequestID(ctx, traceID)
			ctx = logger.WithLogger(ctx, base.With(slog.String("trace_id", traceID)))

			w.Header().Set(TraceIDHeader, traceID)

			logger.FromContext(ctx).Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
