package middleware_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/acmebank/clientms/internal/api/middleware"
	"github.com/acmebank/clientms/internal/api/shared"
	"github.com/acmebank/clientms/internal/platform/logger"
	"github.com/stretchr/testify/assert"
)

func TestTrace(t *testing.T) {
	t.Run("handler sees a trace ID", func(t *testing.T) {
		var seen string
		handler := middleware.Trace(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = shared.GetTraceID(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/clientes", nil))

		assert.Len(t, seen, 32, "handler should see a trace ID in its context")
	})

	t.Run("handler context carries the trace-scoped logger", func(t *testing.T) {
		sentinel := slog.New(slog.NewTextHandler(io.Discard, nil))

		var got *slog.Logger
		handler := middleware.Trace(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = logger.FromContextOrDefault(r.Context(), sentinel)
			w.WriteHeader(http.StatusOK)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/clientes", nil))

		assert.NotNil(t, got)
		assert.NotSame(t, sentinel, got,
			"downstream code should receive the installed logger, not its fallback")
	})
}
