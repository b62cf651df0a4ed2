package http

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-user-gateway/internal/handler/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.TraceID(h.logger))
	router.Use(middleware.Logging)
	router.Use(chimw.Recoverer)

	router.Get("/health", h.health)
	router.Get("/version", h.getServerVersion)

	router.Route("/users", func(r chi.Router) {
		r.Use(chimw.Compress(5, "application/json"))

		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Post("/logout", h.logout)

		r.Get("/", h.listUsers)
		r.Get("/id", h.getUserByBody)
		r.Get("/{id:[0-9]+}", h.getUserByID)
		r.Delete("/{id:[0-9]+}", h.deleteUser)
	})

	router.MethodNotAllowed(methodNotAllowedAsNotFound)

	return router
}
