package gateway

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MKhiriev/go-user-gateway/internal/handler/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.TraceID(h.logger))
	router.Use(middleware.Logging)
	router.Use(chimw.Recoverer)

	router.Get("/health", h.health)
	router.Get("/version", h.version)
	if h.readiness != nil {
		router.Get("/ready", h.ready)
	}
	if h.gatherer != nil {
		router.Get("/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}).ServeHTTP)
	}

	router.Route(h.routePrefix, func(r chi.Router) {
		r.Use(h.guard.Middleware)

		r.Handle("/", h.upstream)
		r.Handle("/*", h.upstream)
	})

	return router
}
