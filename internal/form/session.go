// Package form models the add/edit dialog of a list screen.
package form

import (
	"errors"

	"github.com/erazemk/cargotrack/internal/model"
)

// ErrSessionClosed is returned when a closed session is updated or submitted.
var ErrSessionClosed = errors.New("form is not open")

// Mode is the state of an edit session.
type Mode string

// Session modes.
const (
	Closed   Mode = "closed"
	Creating Mode = "creating"
	Editing  Mode = "editing"
)

// Session tracks whether the dialog creates a new record or edits an
// existing one, and holds the field values being edited.
type Session[T model.Record[T]] struct {
	mode     Mode
	fields   T
	editID   int64
	defaults func() T
}

// NewSession returns a closed session. defaults builds the field values of
// an empty add form.
func NewSession[T model.Record[T]](defaults func() T) *Session[T] {
	return &Session[T]{mode: Closed, defaults: defaults}
}

// Mode returns the current state.
func (s *Session[T]) Mode() Mode { return s.mode }

// Open reports whether the dialog is shown.
func (s *Session[T]) Open() bool { return s.mode != Closed }

// EditID returns the ID of the record being edited, or 0.
func (s *Session[T]) EditID() int64 { return s.editID }

// Fields returns the current field values.
func (s *Session[T]) Fields() T { return s.fields }

// OpenCreate resets every field to its default.
func (s *Session[T]) OpenCreate() {
	s.mode = Creating
	s.editID = 0
	s.fields = s.defaults()
}

// OpenEdit loads rec into the fields. Calling it again with another record
// replaces all values, so nothing carries over from the previous record.
func (s *Session[T]) OpenEdit(rec T) {
	s.mode = Editing
	s.editID = rec.RecordID()
	s.fields = rec
}

// Update replaces the field values. The ID stays bound to the session.
func (s *Session[T]) Update(fields T) error {
	if s.mode == Closed {
		return ErrSessionClosed
	}
	s.fields = fields.WithID(s.editID)
	return nil
}

// Submit returns the mode and the fields to apply. The session is left
// open; callers close it once the record was stored.
func (s *Session[T]) Submit() (Mode, T, error) {
	if s.mode == Closed {
		var zero T
		return Closed, zero, ErrSessionClosed
	}
	return s.mode, s.fields.WithID(s.editID), nil
}

// Close discards the fields.
func (s *Session[T]) Close() {
	var zero T
	s.mode = Closed
	s.editID = 0
	s.fields = zero
}
