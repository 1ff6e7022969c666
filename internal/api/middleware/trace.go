package middleware

import (
	"log/slog"
	"net/http"

	"github.com/bookshelfhq/bookshelf/internal/api/shared"
)

// TraceMiddleware stamps each request context with a trace ID so error
// payloads and log lines produced further down the chain can be
// correlated. Mount it before the auth middleware and the handlers.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())

		slog.Debug("request started",
			slog.String("trace_id", shared.GetTraceID(ctx)),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
