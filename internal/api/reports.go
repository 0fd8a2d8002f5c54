package api

import (
	"net/http"
	"time"

	"github.com/erazemk/cargotrack/internal/app"
)

// ReportsHandler serves the dashboard figures and the session profile.
type ReportsHandler struct {
	App *app.App
}

type profileResponse struct {
	Username  string    `json:"username"`
	LoginTime time.Time `json:"login_time"`
	Items     int       `json:"items"`
	Customers int       `json:"customers"`
}

// Reports handles GET /api/reports.
func (h *ReportsHandler) Reports(w http.ResponseWriter, r *http.Request) {
	summary, err := h.App.Report(r.Context())
	if err != nil {
		domainError(w, r, err, "compute reports")
		return
	}
	jsonResponse(w, http.StatusOK, summary)
}

// Profile handles GET /api/profile.
func (h *ReportsHandler) Profile(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, r, http.StatusUnauthorized, "UNAUTHENTICATED", "not authenticated")
		return
	}
	summary, err := h.App.Report(r.Context())
	if err != nil {
		domainError(w, r, err, "load profile")
		return
	}
	jsonResponse(w, http.StatusOK, profileResponse{
		Username:  claims.Username,
		LoginTime: claims.LoginTime(),
		Items:     summary.Items.Total,
		Customers: summary.Customers.Total,
	})
}

// Health handles GET /api/health.
func Health(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
