package web

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/erazemk/cargotrack/internal/form"
	"github.com/erazemk/cargotrack/internal/listing"
	"github.com/erazemk/cargotrack/internal/model"
	"github.com/erazemk/cargotrack/internal/screen"
)

// listPage renders one list screen and handles its form posts. Every post
// redirects back to the list unless it has an error to show.
type listPage[T model.Record[T]] struct {
	s        *Server
	screen   *screen.Screen[T]
	template string
	title    string
	path     string
	// detail is the template of the single-record page.
	detail      string
	detailTitle string
	// parse overlays posted form values on the dialog's current fields.
	parse func(r *http.Request, base T) T
	// photos marks records that have a photo attached.
	photos   func(id int64) bool
	statuses []string
	types    []string
}

type listData[T any] struct {
	PageData
	View     listing.Page[T]
	Form     screen.FormState[T]
	Pending  *T
	Missing  map[string]bool
	Required map[string]bool
	Photos   map[int64]bool
	Statuses []string
	Types    []string
}

type detailData[T any] struct {
	PageData
	Record   T
	Path     string
	HasPhoto bool
}

func (p *listPage[T]) routes(r chi.Router) {
	r.Get("/", p.list)
	r.Post("/filter", p.filter)
	r.Post("/filter/clear", p.clearFilter)
	r.Post("/page", p.goToPage)

	r.Post("/form", p.openCreate)
	r.Post("/form/submit", p.submit)
	r.Post("/form/cancel", p.cancelForm)

	r.Post("/delete/confirm", p.confirmDelete)
	r.Post("/delete/cancel", p.cancelDelete)

	r.Get("/{id}", p.show)
	r.Post("/{id}/form", p.openEdit)
	r.Post("/{id}/delete", p.requestDelete)
}

func (p *listPage[T]) render(w http.ResponseWriter, r *http.Request, status int, errMsg string, missing []string) {
	view, err := p.screen.View(r.Context())
	if err != nil {
		slog.Error("failed to list records", "screen", p.path, "error", err)
		errMsg, status = "Gagal memuat data.", http.StatusInternalServerError
	}

	data := &listData[T]{
		PageData: p.s.pageData(r, p.title, p.path),
		View:     view,
		Form:     p.screen.Form(),
		Missing:  make(map[string]bool, len(missing)),
		Required: make(map[string]bool),
		Photos:   make(map[int64]bool),
		Statuses: p.statuses,
		Types:    p.types,
	}
	data.Error = errMsg
	if rec, ok := p.screen.PendingDelete(); ok {
		data.Pending = &rec
	}
	for _, f := range missing {
		data.Missing[f] = true
	}
	for _, f := range p.screen.Kind().Validator.Required() {
		data.Required[f] = true
	}
	if p.photos != nil {
		for _, rec := range view.Records {
			data.Photos[rec.RecordID()] = p.photos(rec.RecordID())
		}
	}
	p.s.Templates.Render(w, status, p.template, data)
}

func (p *listPage[T]) redirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, p.path, http.StatusSeeOther)
}

// fail renders the list with a message describing err.
func (p *listPage[T]) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		p.render(w, r, http.StatusUnprocessableEntity, "Lengkapi semua kolom wajib.", slices.Concat(verr.Fields, verr.Invalid))
	case errors.Is(err, screen.ErrNotFound):
		p.render(w, r, http.StatusNotFound, "Data tidak ditemukan.", nil)
	case errors.Is(err, listing.ErrPageOutOfRange):
		p.render(w, r, http.StatusBadRequest, "Halaman tidak tersedia.", nil)
	case errors.Is(err, form.ErrSessionClosed):
		p.render(w, r, http.StatusConflict, "Formulir sudah ditutup.", nil)
	case errors.Is(err, screen.ErrNoPendingDelete):
		p.render(w, r, http.StatusConflict, "Tidak ada data yang menunggu penghapusan.", nil)
	default:
		slog.Error("screen action failed", "screen", p.path, "error", err)
		p.render(w, r, http.StatusInternalServerError, "Terjadi kesalahan.", nil)
	}
}

func (p *listPage[T]) list(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusOK, "", nil)
}

// show renders one record with its edit and delete actions.
func (p *listPage[T]) show(w http.ResponseWriter, r *http.Request) {
	id, ok := p.pathID(w, r)
	if !ok {
		return
	}
	rec, err := p.screen.Get(r.Context(), id)
	if err != nil {
		p.fail(w, r, err)
		return
	}

	data := &detailData[T]{
		PageData: p.s.pageData(r, p.detailTitle, p.path),
		Record:   rec,
		Path:     p.path,
	}
	if p.photos != nil {
		data.HasPhoto = p.photos(id)
	}
	p.s.Templates.Render(w, http.StatusOK, p.detail, data)
}

func (p *listPage[T]) filter(w http.ResponseWriter, r *http.Request) {
	c, err := model.NewCriteria(
		r.FormValue("search"),
		r.FormValue("status"),
		r.FormValue("type"),
		r.FormValue("date_from"),
		r.FormValue("date_to"),
	)
	if err != nil {
		p.render(w, r, http.StatusBadRequest, "Tanggal filter tidak valid.", nil)
		return
	}
	if err := p.screen.SetCriteria(r.Context(), c); err != nil {
		p.fail(w, r, err)
		return
	}
	p.redirect(w, r)
}

func (p *listPage[T]) clearFilter(w http.ResponseWriter, r *http.Request) {
	if err := p.screen.SetCriteria(r.Context(), model.Criteria{}); err != nil {
		p.fail(w, r, err)
		return
	}
	p.redirect(w, r)
}

func (p *listPage[T]) goToPage(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.FormValue("page"))
	if err != nil {
		p.render(w, r, http.StatusBadRequest, "Halaman tidak tersedia.", nil)
		return
	}
	if err := p.screen.GoToPage(n); err != nil {
		p.fail(w, r, err)
		return
	}
	p.redirect(w, r)
}

func (p *listPage[T]) openCreate(w http.ResponseWriter, r *http.Request) {
	p.screen.OpenCreate()
	p.redirect(w, r)
}

func (p *listPage[T]) openEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := p.pathID(w, r)
	if !ok {
		return
	}
	if _, err := p.screen.OpenEdit(r.Context(), id); err != nil {
		p.fail(w, r, err)
		return
	}
	p.redirect(w, r)
}

func (p *listPage[T]) submit(w http.ResponseWriter, r *http.Request) {
	state := p.screen.Form()
	if _, err := p.screen.UpdateForm(p.parse(r, state.Fields)); err != nil {
		p.fail(w, r, err)
		return
	}
	mode, rec, err := p.screen.SubmitForm(r.Context())
	if err != nil {
		p.fail(w, r, err)
		return
	}

	verb := "updated"
	if mode == form.Creating {
		verb = "created"
	}
	slog.Info(p.screen.Kind().Name+" "+verb, "user", webUser(r.Context()), "id", rec.RecordID())
	p.redirect(w, r)
}

func (p *listPage[T]) cancelForm(w http.ResponseWriter, r *http.Request) {
	p.screen.CancelForm()
	p.redirect(w, r)
}

func (p *listPage[T]) requestDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := p.pathID(w, r)
	if !ok {
		return
	}
	if _, err := p.screen.RequestDelete(r.Context(), id); err != nil {
		p.fail(w, r, err)
		return
	}
	p.redirect(w, r)
}

func (p *listPage[T]) confirmDelete(w http.ResponseWriter, r *http.Request) {
	rec, err := p.screen.ConfirmDelete(r.Context())
	if err != nil {
		p.fail(w, r, err)
		return
	}
	slog.Info(p.screen.Kind().Name+" deleted", "user", webUser(r.Context()), "id", rec.RecordID())
	p.redirect(w, r)
}

func (p *listPage[T]) cancelDelete(w http.ResponseWriter, r *http.Request) {
	p.screen.CancelDelete()
	p.redirect(w, r)
}

func (p *listPage[T]) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
