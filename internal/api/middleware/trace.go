// Package middleware contains HTTP middleware applied to the router.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/acmebank/clientms/internal/api/shared"
	"github.com/acmebank/clientms/internal/platform/logger"
)

// Trace adds a trace ID to the request context and installs a trace-scoped
// logger alongside it, so the service and store layers pick up the trace ID
// on every log line. Apply it early in the chain.
func Trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())

		log := slog.With(slog.String("trace_id", shared.GetTraceID(ctx)))
		ctx = logger.WithLogger(ctx, log)

		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
