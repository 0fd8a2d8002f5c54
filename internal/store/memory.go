package store

import (
	"context"
	"sync"

	"github.com/erazemk/cargotrack/internal/model"
)

// Memory is a slice-backed Repository. IDs come from a monotonic sequence
// that starts after the highest seeded ID and never reuses a value.
type Memory[T model.Record[T]] struct {
	mu      sync.RWMutex
	records []T
	lastID  int64
}

// NewMemory returns a store holding a copy of seed.
func NewMemory[T model.Record[T]](seed []T) *Memory[T] {
	m := &Memory[T]{records: make([]T, 0, len(seed))}
	for _, rec := range seed {
		m.records = append(m.records, rec)
		if rec.RecordID() > m.lastID {
			m.lastID = rec.RecordID()
		}
	}
	return m
}

// List returns a copy of all records in insertion order.
func (m *Memory[T]) List(_ context.Context) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]T, len(m.records))
	copy(out, m.records)
	return out, nil
}

// Get returns the record with id.
func (m *Memory[T]) Get(_ context.Context, id int64) (T, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := m.index(id); i >= 0 {
		return m.records[i], true, nil
	}
	var zero T
	return zero, false, nil
}

// Add appends rec under the next sequence ID.
func (m *Memory[T]) Add(_ context.Context, rec T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastID++
	rec = rec.WithID(m.lastID)
	m.records = append(m.records, rec)
	return rec, nil
}

// Update replaces the record with rec's ID in place.
func (m *Memory[T]) Update(_ context.Context, rec T) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(rec.RecordID())
	if i < 0 {
		return false, nil
	}
	m.records[i] = rec
	return true, nil
}

// Remove deletes the first record with id.
func (m *Memory[T]) Remove(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(id)
	if i < 0 {
		return false, nil
	}
	m.records = append(m.records[:i], m.records[i+1:]...)
	return true, nil
}

func (m *Memory[T]) index(id int64) int {
	for i, rec := range m.records {
		if rec.RecordID() == id {
			return i
		}
	}
	return -1
}
