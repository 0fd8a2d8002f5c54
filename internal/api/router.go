package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/erazemk/cargotrack/internal/app"
	"github.com/erazemk/cargotrack/internal/model"
)

// NewRouter creates the API router with all endpoints registered. Paths are
// relative to its mount point, normally /api.
func NewRouter(a *app.App, secret string) chi.Router {
	r := chi.NewRouter()

	authHandler := &AuthHandler{Secret: secret}
	reportsHandler := &ReportsHandler{App: a}
	photosHandler := &PhotosHandler{App: a}
	itemsHandler := &RecordsHandler[model.Item]{Screen: a.Items}
	customersHandler := &RecordsHandler[model.Customer]{Screen: a.Customers}

	// Public.
	r.Get("/health", Health)
	r.Post("/auth/login", authHandler.Login)
	r.Post("/auth/logout", authHandler.Logout)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(secret))
		r.Use(RequestBodyLimit(8 << 20))

		r.Get("/profile", reportsHandler.Profile)
		r.Get("/reports", reportsHandler.Reports)

		r.Route("/items", func(r chi.Router) {
			r.Put("/{id}/photo", photosHandler.Upload)
			r.Get("/{id}/photo", photosHandler.Get)
			itemsHandler.Routes(r)
		})
		r.Route("/customers", customersHandler.Routes)
	})

	return r
}

// RequestBodyLimit caps request bodies at n bytes.
func RequestBodyLimit(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, n)
			next.ServeHTTP(w, r)
		})
	}
}
