package store

import (
	"context"

	"github.com/erazemk/cargotrack/internal/model"
)

// Repository is an ordered collection of records.
//
// Update and Remove are no-ops for unknown IDs and report whether a record
// matched instead of returning an error.
type Repository[T model.Record[T]] interface {
	// List returns all records in insertion order.
	List(ctx context.Context) ([]T, error)
	// Get returns the record with id, or false if there is none.
	Get(ctx context.Context, id int64) (T, bool, error)
	// Add assigns a fresh ID to rec and appends it.
	Add(ctx context.Context, rec T) (T, error)
	// Update overwrites the record with rec's ID.
	Update(ctx context.Context, rec T) (bool, error)
	// Remove deletes the record with id.
	Remove(ctx context.Context, id int64) (bool, error)
}

// ItemRepository stores cargo items.
type ItemRepository = Repository[model.Item]

// CustomerRepository stores customers.
type CustomerRepository = Repository[model.Customer]
