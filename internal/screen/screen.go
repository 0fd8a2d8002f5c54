// Package screen holds the controller behind a list screen. A Screen owns
// one record store together with its filter criteria, pager, edit session
// and pending delete, and reconciles the page index after every change.
package screen

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/erazemk/cargotrack/internal/form"
	"github.com/erazemk/cargotrack/internal/listing"
	"github.com/erazemk/cargotrack/internal/model"
	"github.com/erazemk/cargotrack/internal/store"
)

var (
	// ErrNotFound is returned when an action names a record that does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrNoPendingDelete is returned when confirming without a delete request.
	ErrNoPendingDelete = errors.New("no delete pending")
)

// Kind describes one record type to a Screen.
type Kind[T model.Record[T]] struct {
	// Name is used in error messages, e.g. "item".
	Name string
	// Match is the filter predicate.
	Match listing.Predicate[T]
	// Defaults builds the fields of an empty add form.
	Defaults func() T
	// Derive fills derived fields of a new record before it is stored.
	Derive func(rec T, now time.Time) T
	// Validator checks required fields on submit.
	Validator *form.Validator
	// Removed is called after a record was deleted.
	Removed func(id int64)
}

// FormState is a snapshot of the edit session.
type FormState[T any] struct {
	Mode   form.Mode `json:"mode"`
	EditID int64     `json:"edit_id,omitempty"`
	Fields T         `json:"fields"`
}

// Screen serialises every action on a record store. All methods are safe
// for concurrent use; each runs its mutation and reconciliation under one lock.
type Screen[T model.Record[T]] struct {
	mu       sync.Mutex
	kind     Kind[T]
	repo     store.Repository[T]
	criteria model.Criteria
	pager    *listing.Pager
	proj     *listing.Projection[T]
	session  *form.Session[T]
	pending  *T
	rev      uint64
	now      func() time.Time
}

// New returns a screen over repo showing pageSize records per page.
func New[T model.Record[T]](ctx context.Context, repo store.Repository[T], kind Kind[T], pageSize int) (*Screen[T], error) {
	s := &Screen[T]{
		kind:    kind,
		repo:    repo,
		pager:   listing.NewPager(pageSize),
		proj:    listing.NewProjection(kind.Match),
		session: form.NewSession(kind.Defaults),
		now:     time.Now,
	}
	if err := s.reconcile(ctx, listing.FilterChanged); err != nil {
		return nil, err
	}
	return s, nil
}

// Kind returns the record type description.
func (s *Screen[T]) Kind() Kind[T] { return s.kind }

// reconcile recomputes the filtered count and moves the pager accordingly.
// Callers hold s.mu.
func (s *Screen[T]) reconcile(ctx context.Context, reason listing.Reason) error {
	filtered, _, err := s.filtered(ctx)
	if err != nil {
		return err
	}
	s.pager.Reconcile(len(filtered), reason)
	return nil
}

func (s *Screen[T]) filtered(ctx context.Context) ([]T, int, error) {
	return s.proj.Filtered(s.rev, s.criteria, func() ([]T, error) {
		records, err := s.repo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing %ss: %w", s.kind.Name, err)
		}
		return records, nil
	})
}

// mutated bumps the store revision and reconciles the pager.
func (s *Screen[T]) mutated(ctx context.Context, reason listing.Reason) error {
	s.rev++
	return s.reconcile(ctx, reason)
}

// View returns the current page.
func (s *Screen[T]) View(ctx context.Context) (listing.Page[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered, total, err := s.filtered(ctx)
	if err != nil {
		return listing.Page[T]{}, err
	}
	return listing.NewPage(filtered, total, s.pager, s.criteria), nil
}

// All returns every record in insertion order, ignoring the filter.
func (s *Screen[T]) All(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.List(ctx)
}

// Criteria returns the active filter criteria.
func (s *Screen[T]) Criteria() model.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

// SetCriteria replaces the filter criteria and returns to page 1.
func (s *Screen[T]) SetCriteria(ctx context.Context, c model.Criteria) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.criteria = c
	return s.reconcile(ctx, listing.FilterChanged)
}

// GoToPage moves to page n, rejecting pages outside the current range.
func (s *Screen[T]) GoToPage(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pager.GoTo(n)
}

// Get returns the record with id.
func (s *Screen[T]) Get(ctx context.Context, id int64) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(ctx, id)
}

func (s *Screen[T]) get(ctx context.Context, id int64) (T, error) {
	rec, ok, err := s.repo.Get(ctx, id)
	if err != nil {
		return rec, fmt.Errorf("getting %s: %w", s.kind.Name, err)
	}
	if !ok {
		return rec, fmt.Errorf("%s %d: %w", s.kind.Name, id, ErrNotFound)
	}
	return rec, nil
}

// Create validates fields and stores them as a new record.
func (s *Screen[T]) Create(ctx context.Context, fields T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kind.Validator.Validate(fields); err != nil {
		var zero T
		return zero, err
	}
	return s.add(ctx, fields)
}

func (s *Screen[T]) add(ctx context.Context, rec T) (T, error) {
	if s.kind.Derive != nil {
		rec = s.kind.Derive(rec, s.now())
	}
	created, err := s.repo.Add(ctx, rec)
	if err != nil {
		return created, fmt.Errorf("adding %s: %w", s.kind.Name, err)
	}
	return created, s.mutated(ctx, listing.Added)
}

// Replace validates rec and overwrites the stored record with the same ID.
func (s *Screen[T]) Replace(ctx context.Context, rec T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kind.Validator.Validate(rec); err != nil {
		return err
	}
	return s.update(ctx, rec)
}

func (s *Screen[T]) update(ctx context.Context, rec T) error {
	ok, err := s.repo.Update(ctx, rec)
	if err != nil {
		return fmt.Errorf("updating %s: %w", s.kind.Name, err)
	}
	if !ok {
		return fmt.Errorf("%s %d: %w", s.kind.Name, rec.RecordID(), ErrNotFound)
	}
	return s.mutated(ctx, listing.Edited)
}

// Form returns a snapshot of the edit session.
func (s *Screen[T]) Form() FormState[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.formState()
}

func (s *Screen[T]) formState() FormState[T] {
	return FormState[T]{Mode: s.session.Mode(), EditID: s.session.EditID(), Fields: s.session.Fields()}
}

// OpenCreate opens the dialog with default fields.
func (s *Screen[T]) OpenCreate() FormState[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.OpenCreate()
	return s.formState()
}

// OpenEdit opens the dialog on the record with id, replacing any fields of a
// dialog that was already open.
func (s *Screen[T]) OpenEdit(ctx context.Context, id int64) (FormState[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.get(ctx, id)
	if err != nil {
		return FormState[T]{}, err
	}
	s.session.OpenEdit(rec)
	return s.formState(), nil
}

// UpdateForm replaces the field values of the open dialog.
func (s *Screen[T]) UpdateForm(fields T) (FormState[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.session.Update(fields); err != nil {
		return FormState[T]{}, err
	}
	return s.formState(), nil
}

// SubmitForm stores the dialog's fields and closes it, returning the mode the
// dialog was in. A validation failure leaves the dialog open; editing a
// record that no longer exists closes the dialog and returns ErrNotFound.
func (s *Screen[T]) SubmitForm(ctx context.Context) (form.Mode, T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mode, fields, err := s.session.Submit()
	if err != nil {
		return mode, fields, err
	}
	if err := s.kind.Validator.Validate(fields); err != nil {
		return mode, fields, err
	}

	switch mode {
	case form.Creating:
		created, err := s.add(ctx, fields)
		if err != nil {
			return mode, created, err
		}
		s.session.Close()
		return mode, created, nil
	default:
		if err := s.update(ctx, fields); err != nil {
			if errors.Is(err, ErrNotFound) {
				s.session.Close()
			}
			return mode, fields, err
		}
		s.session.Close()
		return mode, fields, nil
	}
}

// CancelForm closes the dialog without storing anything.
func (s *Screen[T]) CancelForm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Close()
}

// RequestDelete marks the record with id for deletion. Nothing is removed
// until ConfirmDelete.
func (s *Screen[T]) RequestDelete(ctx context.Context, id int64) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.get(ctx, id)
	if err != nil {
		return rec, err
	}
	s.pending = &rec
	return rec, nil
}

// PendingDelete returns the record awaiting confirmation.
func (s *Screen[T]) PendingDelete() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		var zero T
		return zero, false
	}
	return *s.pending, true
}

// ConfirmDelete removes the pending record. The page is kept unless it no
// longer exists.
func (s *Screen[T]) ConfirmDelete(ctx context.Context) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		var zero T
		return zero, ErrNoPendingDelete
	}
	rec := *s.pending
	s.pending = nil

	ok, err := s.repo.Remove(ctx, rec.RecordID())
	if err != nil {
		return rec, fmt.Errorf("deleting %s: %w", s.kind.Name, err)
	}
	if !ok {
		return rec, fmt.Errorf("%s %d: %w", s.kind.Name, rec.RecordID(), ErrNotFound)
	}
	if s.kind.Removed != nil {
		s.kind.Removed(rec.RecordID())
	}
	return rec, s.mutated(ctx, listing.Deleted)
}

// CancelDelete drops the pending delete request.
func (s *Screen[T]) CancelDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
}
