package web

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/erazemk/cargotrack/internal/app"
	"github.com/erazemk/cargotrack/internal/auth"
	"github.com/erazemk/cargotrack/internal/model"
	webembed "github.com/erazemk/cargotrack/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

var labels = map[string]string{
	model.ItemStatusInWarehouse: "Di Gudang",
	model.ItemStatusInContainer: "Dalam Kontainer",
	model.ItemStatusDelayed:     "Terlambat",
	model.ItemStatusShipped:     "Terkirim",

	model.CustomerStatusActive:   "Aktif",
	model.CustomerStatusInactive: "Tidak Aktif",
	model.CustomerStatusPending:  "Menunggu",

	model.CustomerTypeRegular:    "Reguler",
	model.CustomerTypePremium:    "Premium",
	model.CustomerTypeVIP:        "VIP",
	model.CustomerTypeEnterprise: "Enterprise",
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"label": func(v string) string {
			if l, ok := labels[v]; ok {
				return l
			}
			return v
		},
		// inputDate formats a filter bound for an <input type="date">.
		"inputDate": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("2006-01-02")
		},
		"longTime": func(t time.Time) string {
			return t.Local().Format("02 Jan 2006 15:04")
		},
		"add": func(a, b int) int { return a + b },
	}
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.TemplatesFS()

	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	pages := []string{
		"login.html",
		"dashboard.html",
		"items.html",
		"item_detail.html",
		"customers.html",
		"customer_detail.html",
		"reports.html",
		"profile.html",
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap())
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a template with the given status and data.
func (ts *Templates) Render(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title  string
	Active string
	User   *auth.Claims
	Error  string
}

// Server holds all dependencies for page handlers.
type Server struct {
	App       *app.App
	Templates *Templates
	Secret    string
}

func (s *Server) pageData(r *http.Request, title, active string) PageData {
	return PageData{Title: title, Active: active, User: GetWebClaims(r.Context())}
}
