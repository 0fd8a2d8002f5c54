package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/erazemk/cargotrack/internal/app"
	"github.com/erazemk/cargotrack/internal/imaging"
	"github.com/erazemk/cargotrack/internal/screen"
	"github.com/erazemk/cargotrack/internal/store"
)

// PhotosHandler handles item photo endpoints.
type PhotosHandler struct {
	App *app.App
}

// Upload handles PUT /api/items/{id}/photo. The photo is sent as the
// "photo" field of a multipart form.
func (h *PhotosHandler) Upload(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		jsonError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid item id")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadBytes+1<<10)
	if err := r.ParseMultipartForm(imaging.MaxUploadBytes); err != nil {
		jsonError(w, r, http.StatusBadRequest, "BAD_REQUEST", "file too large or invalid multipart form")
		return
	}
	file, _, err := r.FormFile("photo")
	if err != nil {
		jsonError(w, r, http.StatusBadRequest, "BAD_REQUEST", "photo file required")
		return
	}
	defer file.Close()

	photo, err := h.App.SetPhoto(r.Context(), id, file)
	switch {
	case errors.Is(err, screen.ErrNotFound):
		domainError(w, r, err, "upload photo")
		return
	case errors.Is(err, imaging.ErrUnsupportedFormat):
		jsonError(w, r, http.StatusUnsupportedMediaType, "UNSUPPORTED_FORMAT", err.Error())
		return
	case err != nil:
		jsonError(w, r, http.StatusBadRequest, "INVALID_PHOTO", err.Error())
		return
	}

	slog.Info("item photo uploaded", "user", username(r.Context()), "id", id, "bytes", len(photo.Data))
	w.Header().Set("ETag", photo.ETag)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "photo uploaded"})
}

// Get handles GET /api/items/{id}/photo.
func (h *PhotosHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		jsonError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid item id")
		return
	}
	photo, ok := h.App.Photos.Get(id)
	if !ok {
		jsonError(w, r, http.StatusNotFound, "NOT_FOUND", "no photo")
		return
	}
	ServePhoto(w, r, photo)
}

// ServePhoto writes photo, answering 304 when the client already holds it.
func ServePhoto(w http.ResponseWriter, r *http.Request, photo store.Photo) {
	w.Header().Set("ETag", photo.ETag)
	w.Header().Set("Cache-Control", "private, no-cache")
	if r.Header.Get("If-None-Match") == photo.ETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", photo.MIME)
	w.Write(photo.Data)
}
