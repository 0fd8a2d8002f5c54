package web

import (
	"log/slog"
	"net/http"

	"github.com/erazemk/cargotrack/internal/model"
	"github.com/erazemk/cargotrack/internal/report"
)

// recentCount is how many items the dashboard lists.
const recentCount = 5

type reportData struct {
	PageData
	Summary report.Summary
	Recent  []model.Item
}

func (s *Server) reportData(r *http.Request, title, active string) (*reportData, error) {
	summary, err := s.App.Report(r.Context())
	if err != nil {
		return nil, err
	}
	items, err := s.App.Items.All(r.Context())
	if err != nil {
		return nil, err
	}
	// Newest first.
	recent := make([]model.Item, 0, recentCount)
	for i := len(items) - 1; i >= 0 && len(recent) < recentCount; i-- {
		recent = append(recent, items[i])
	}
	return &reportData{
		PageData: s.pageData(r, title, active),
		Summary:  summary,
		Recent:   recent,
	}, nil
}

func (s *Server) renderReport(w http.ResponseWriter, r *http.Request, page, title, active string) {
	data, err := s.reportData(r, title, active)
	if err != nil {
		slog.Error("failed to compute report", "page", page, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.Templates.Render(w, http.StatusOK, page, data)
}

// Dashboard handles GET /.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	s.renderReport(w, r, "dashboard.html", "Dashboard", "/")
}

// ReportsPage handles GET /reports.
func (s *Server) ReportsPage(w http.ResponseWriter, r *http.Request) {
	s.renderReport(w, r, "reports.html", "Laporan", "/reports")
}

// ProfilePage handles GET /profile.
func (s *Server) ProfilePage(w http.ResponseWriter, r *http.Request) {
	s.renderReport(w, r, "profile.html", "Profil", "/profile")
}
