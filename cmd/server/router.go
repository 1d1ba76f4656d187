package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/acmebank/clientms/internal/api"
	apiMiddleware "github.com/acmebank/clientms/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() (http.Handler, error) {
	metricsHandler, err := apiMiddleware.RegisterMetrics(nil)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)
	r.Use(apiMiddleware.Metrics)

	clientHandler := api.NewClientHandler(app.clientService)

	r.Route("/clientes", func(r chi.Router) {
		r.Post("/", clientHandler.Create)
		r.Get("/", clientHandler.List)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", clientHandler.Get)
			r.Put("/", clientHandler.Update)
			r.Patch("/", clientHandler.Patch)
			r.Delete("/", clientHandler.Delete)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	r.Method(http.MethodGet, "/metrics", metricsHandler)

	return r, nil
}
