package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/cargotrack/internal/auth"
)

// AuthHandler handles the demo login endpoints.
type AuthHandler struct {
	Secret string
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	token, err := auth.Login(h.Secret, req.Username, req.Password)
	if errors.Is(err, auth.ErrMissingCredentials) {
		jsonError(w, r, http.StatusBadRequest, "MISSING_CREDENTIALS", "username and password required")
		return
	}
	if err != nil {
		slog.Error("failed to generate token", "error", err)
		jsonError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to generate token")
		return
	}

	http.SetCookie(w, SessionCookieFor(token, r))
	slog.Info("user logged in", "user", req.Username)
	jsonResponse(w, http.StatusOK, loginResponse{Token: token})
}

// Logout handles POST /api/auth/logout. Tokens are stateless, so logging out
// only clears the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	jsonResponse(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// SessionCookieFor returns the cookie carrying token.
func SessionCookieFor(token string, r *http.Request) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.SessionExpiry.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	}
}
