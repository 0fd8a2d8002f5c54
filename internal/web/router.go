package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/erazemk/cargotrack/internal/app"
	webembed "github.com/erazemk/cargotrack/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(a *app.App, secret string) (chi.Router, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		App:       a,
		Templates: templates,
		Secret:    secret,
	}
	items := s.itemsPage()
	customers := s.customersPage()

	r := chi.NewRouter()

	// Static assets.
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public routes.
	r.Get("/login", s.LoginPage)
	r.Post("/login", s.LoginSubmit)
	r.Get("/logout", s.Logout)
	r.Post("/logout", s.Logout)

	r.Group(func(r chi.Router) {
		r.Use(CookieAuthMiddleware(secret))

		r.Get("/", s.Dashboard)
		r.Get("/reports", s.ReportsPage)
		r.Get("/profile", s.ProfilePage)

		r.Route("/items", func(r chi.Router) {
			r.Get("/{id}/photo", s.ItemPhotoGet)
			r.Post("/{id}/photo", s.ItemPhotoSubmit)
			items.routes(r)
		})
		r.Route("/customers", customers.routes)
	})

	return r, nil
}
