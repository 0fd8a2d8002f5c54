package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/erazemk/cargotrack/internal/api"
	"github.com/erazemk/cargotrack/internal/imaging"
	"github.com/erazemk/cargotrack/internal/model"
	"github.com/erazemk/cargotrack/internal/screen"
)

func (s *Server) itemsPage() *listPage[model.Item] {
	return &listPage[model.Item]{
		s:           s,
		screen:      s.App.Items,
		template:    "items.html",
		title:       "Manajemen Barang",
		path:        "/items",
		detail:      "item_detail.html",
		detailTitle: "Detail Barang",
		parse:       parseItem,
		photos:      s.App.Photos.Has,
		statuses:    model.ItemStatuses,
	}
}

func (s *Server) customersPage() *listPage[model.Customer] {
	return &listPage[model.Customer]{
		s:           s,
		screen:      s.App.Customers,
		template:    "customers.html",
		title:       "Data Pelanggan",
		path:        "/customers",
		detail:      "customer_detail.html",
		detailTitle: "Detail Pelanggan",
		parse:       parseCustomer,
		statuses:    model.CustomerStatuses,
		types:       model.CustomerTypes,
	}
}

func parseItem(r *http.Request, it model.Item) model.Item {
	it.Code = strings.TrimSpace(r.FormValue("code"))
	it.Name = strings.TrimSpace(r.FormValue("name"))
	it.Status = r.FormValue("status")
	it.Customer = strings.TrimSpace(r.FormValue("customer"))
	it.Quantity, _ = strconv.Atoi(r.FormValue("quantity"))
	it.Weight = strings.TrimSpace(r.FormValue("weight"))
	it.Destination = strings.TrimSpace(r.FormValue("destination"))
	it.Description = strings.TrimSpace(r.FormValue("description"))
	return it
}

func parseCustomer(r *http.Request, c model.Customer) model.Customer {
	c.Name = strings.TrimSpace(r.FormValue("name"))
	c.Company = strings.TrimSpace(r.FormValue("company"))
	c.Email = strings.TrimSpace(r.FormValue("email"))
	c.Phone = strings.TrimSpace(r.FormValue("phone"))
	c.Address = strings.TrimSpace(r.FormValue("address"))
	c.Status = r.FormValue("status")
	c.Type = r.FormValue("type")
	c.Notes = strings.TrimSpace(r.FormValue("notes"))
	return c
}

// ItemPhotoSubmit handles POST /items/{id}/photo.
func (s *Server) ItemPhotoSubmit(w http.ResponseWriter, r *http.Request) {
	page := s.itemsPage()
	id, ok := page.pathID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadBytes+1<<10)
	if err := r.ParseMultipartForm(imaging.MaxUploadBytes); err != nil {
		page.render(w, r, http.StatusBadRequest, "Foto terlalu besar (maks. 5 MB).", nil)
		return
	}
	file, _, err := r.FormFile("photo")
	if err != nil {
		page.render(w, r, http.StatusBadRequest, "Pilih file foto.", nil)
		return
	}
	defer file.Close()

	if _, err := s.App.SetPhoto(r.Context(), id, file); err != nil {
		switch {
		case errors.Is(err, screen.ErrNotFound):
			page.fail(w, r, err)
		case errors.Is(err, imaging.ErrUnsupportedFormat):
			page.render(w, r, http.StatusUnsupportedMediaType, "Foto harus berformat JPEG atau PNG.", nil)
		default:
			slog.Warn("photo rejected", "id", id, "error", err)
			page.render(w, r, http.StatusBadRequest, "Foto tidak dapat diproses.", nil)
		}
		return
	}

	slog.Info("item photo uploaded", "user", webUser(r.Context()), "id", id)
	page.redirect(w, r)
}

// ItemPhotoGet handles GET /items/{id}/photo.
func (s *Server) ItemPhotoGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	photo, ok := s.App.Photos.Get(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Disposition", "inline")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	api.ServePhoto(w, r, photo)
}
