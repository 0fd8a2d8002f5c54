package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/erazemk/cargotrack/internal/form"
	"github.com/erazemk/cargotrack/internal/model"
	"github.com/erazemk/cargotrack/internal/screen"
)

// RecordsHandler exposes one list screen: its page view, filter bar, pager,
// add/edit dialog and delete confirmation.
type RecordsHandler[T model.Record[T]] struct {
	Screen *screen.Screen[T]
}

type filterRequest struct {
	Search   string `json:"search"`
	Status   string `json:"status"`
	Type     string `json:"type"`
	DateFrom string `json:"dateFrom"`
	DateTo   string `json:"dateTo"`
}

type pageRequest struct {
	Page int `json:"page"`
}

// Routes registers the screen's endpoints on r. Static segments are
// registered before {id} so chi prefers them.
func (h *RecordsHandler[T]) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/schema", h.Schema)

	r.Put("/filter", h.SetFilter)
	r.Delete("/filter", h.ClearFilter)
	r.Put("/page", h.GoToPage)

	r.Get("/form", h.Form)
	r.Post("/form", h.OpenCreate)
	r.Put("/form", h.UpdateForm)
	r.Delete("/form", h.CancelForm)
	r.Post("/form/submit", h.SubmitForm)

	r.Get("/delete", h.PendingDelete)
	r.Post("/delete/confirm", h.ConfirmDelete)
	r.Post("/delete/cancel", h.CancelDelete)

	r.Get("/{id}", h.Get)
	r.Post("/{id}/form", h.OpenEdit)
	r.Post("/{id}/delete", h.RequestDelete)
}

func (h *RecordsHandler[T]) name() string { return h.Screen.Kind().Name }

// List handles GET /api/{kind}.
func (h *RecordsHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.Screen.View(r.Context())
	if err != nil {
		domainError(w, r, err, "list "+h.name()+"s")
		return
	}
	jsonResponse(w, http.StatusOK, page)
}

// Get handles GET /api/{kind}/{id}.
func (h *RecordsHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	rec, err := h.Screen.Get(r.Context(), id)
	if err != nil {
		domainError(w, r, err, "get "+h.name())
		return
	}
	jsonResponse(w, http.StatusOK, rec)
}

// Schema handles GET /api/{kind}/schema.
func (h *RecordsHandler[T]) Schema(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Screen.Kind().Validator.Schema())
}

// SetFilter handles PUT /api/{kind}/filter.
func (h *RecordsHandler[T]) SetFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	c, err := model.NewCriteria(req.Search, req.Status, req.Type, req.DateFrom, req.DateTo)
	if err != nil {
		jsonError(w, r, http.StatusBadRequest, "INVALID_FILTER", err.Error())
		return
	}
	h.applyCriteria(w, r, c)
}

// ClearFilter handles DELETE /api/{kind}/filter.
func (h *RecordsHandler[T]) ClearFilter(w http.ResponseWriter, r *http.Request) {
	h.applyCriteria(w, r, model.Criteria{})
}

func (h *RecordsHandler[T]) applyCriteria(w http.ResponseWriter, r *http.Request, c model.Criteria) {
	if err := h.Screen.SetCriteria(r.Context(), c); err != nil {
		domainError(w, r, err, "filter "+h.name()+"s")
		return
	}
	h.List(w, r)
}

// GoToPage handles PUT /api/{kind}/page.
func (h *RecordsHandler[T]) GoToPage(w http.ResponseWriter, r *http.Request) {
	var req pageRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	if err := h.Screen.GoToPage(req.Page); err != nil {
		domainError(w, r, err, "change page")
		return
	}
	h.List(w, r)
}

// Form handles GET /api/{kind}/form.
func (h *RecordsHandler[T]) Form(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Screen.Form())
}

// OpenCreate handles POST /api/{kind}/form.
func (h *RecordsHandler[T]) OpenCreate(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Screen.OpenCreate())
}

// OpenEdit handles POST /api/{kind}/{id}/form.
func (h *RecordsHandler[T]) OpenEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	state, err := h.Screen.OpenEdit(r.Context(), id)
	if err != nil {
		domainError(w, r, err, "open "+h.name())
		return
	}
	jsonResponse(w, http.StatusOK, state)
}

// UpdateForm handles PUT /api/{kind}/form.
func (h *RecordsHandler[T]) UpdateForm(w http.ResponseWriter, r *http.Request) {
	var fields T
	if err := decodeJSON(r, &fields); err != nil {
		jsonError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	state, err := h.Screen.UpdateForm(fields)
	if err != nil {
		domainError(w, r, err, "update form")
		return
	}
	jsonResponse(w, http.StatusOK, state)
}

// CancelForm handles DELETE /api/{kind}/form.
func (h *RecordsHandler[T]) CancelForm(w http.ResponseWriter, r *http.Request) {
	h.Screen.CancelForm()
	jsonResponse(w, http.StatusOK, h.Screen.Form())
}

// SubmitForm handles POST /api/{kind}/form/submit.
func (h *RecordsHandler[T]) SubmitForm(w http.ResponseWriter, r *http.Request) {
	mode, rec, err := h.Screen.SubmitForm(r.Context())
	if err != nil {
		domainError(w, r, err, "save "+h.name())
		return
	}

	status, verb := http.StatusOK, "updated"
	if mode == form.Creating {
		status, verb = http.StatusCreated, "created"
	}
	slog.Info(h.name()+" "+verb, "user", username(r.Context()), "id", rec.RecordID())
	jsonResponse(w, status, rec)
}

// RequestDelete handles POST /api/{kind}/{id}/delete.
func (h *RecordsHandler[T]) RequestDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	rec, err := h.Screen.RequestDelete(r.Context(), id)
	if err != nil {
		domainError(w, r, err, "request delete")
		return
	}
	jsonResponse(w, http.StatusOK, rec)
}

// PendingDelete handles GET /api/{kind}/delete.
func (h *RecordsHandler[T]) PendingDelete(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.Screen.PendingDelete()
	if !ok {
		domainError(w, r, screen.ErrNoPendingDelete, "get pending delete")
		return
	}
	jsonResponse(w, http.StatusOK, rec)
}

// ConfirmDelete handles POST /api/{kind}/delete/confirm.
func (h *RecordsHandler[T]) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Screen.ConfirmDelete(r.Context())
	if err != nil {
		domainError(w, r, err, "delete "+h.name())
		return
	}
	slog.Info(h.name()+" deleted", "user", username(r.Context()), "id", rec.RecordID())
	h.List(w, r)
}

// CancelDelete handles POST /api/{kind}/delete/cancel.
func (h *RecordsHandler[T]) CancelDelete(w http.ResponseWriter, r *http.Request) {
	h.Screen.CancelDelete()
	jsonResponse(w, http.StatusOK, map[string]string{"message": "delete cancelled"})
}

func (h *RecordsHandler[T]) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		jsonError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid "+h.name()+" id")
		return 0, false
	}
	return id, true
}
