package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/cargotrack/internal/api"
	"github.com/erazemk/cargotrack/internal/auth"
)

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, http.StatusOK, "login.html", &PageData{Title: "Masuk"})
}

// LoginSubmit handles POST /login. Any non-empty username and password open
// a session; the name is shown on the profile page.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	token, err := auth.Login(s.Secret, username, r.FormValue("password"))
	if errors.Is(err, auth.ErrMissingCredentials) {
		s.Templates.Render(w, http.StatusBadRequest, "login.html", &PageData{
			Title: "Masuk",
			Error: "Masukkan nama pengguna dan kata sandi.",
		})
		return
	}
	if err != nil {
		slog.Error("failed to generate token", "error", err)
		s.Templates.Render(w, http.StatusInternalServerError, "login.html", &PageData{
			Title: "Masuk",
			Error: "Gagal masuk.",
		})
		return
	}

	http.SetCookie(w, api.SessionCookieFor(token, r))
	slog.Info("user logged in", "user", username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles /logout.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	clearAuthCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
