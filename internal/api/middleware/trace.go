package middleware

import (
	"log/slog"
	"net/http"

	"github.com/rsoares/taskhub-api/internal/api/shared"
	"github.com/rsoares/taskhub-api/internal/platform/logger"
)

// Trace adds a trace ID to the request context and a trace-tagged logger
// alongside it. Apply early so every downstream log line carries the ID.
func Trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)

		log := slog.With(slog.String("trace_id", traceID))
		ctx = logger.WithContext(ctx, log)

		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
