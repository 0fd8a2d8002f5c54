package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/cargotrack/internal/model"
)

const itemColumns = `id, code, name, status, customer, date, quantity, weight, destination, description`

// SQLItems is an ItemRepository backed by SQLite.
type SQLItems struct {
	DB *sql.DB
}

// List returns all items ordered by ID, which is insertion order.
func (s *SQLItems) List(ctx context.Context) ([]model.Item, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT `+itemColumns+` FROM items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var it model.Item
		if err := rows.Scan(&it.ID, &it.Code, &it.Name, &it.Status, &it.Customer, &it.Date,
			&it.Quantity, &it.Weight, &it.Destination, &it.Description); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Get returns an item by ID.
func (s *SQLItems) Get(ctx context.Context, id int64) (model.Item, bool, error) {
	var it model.Item
	err := s.DB.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id).
		Scan(&it.ID, &it.Code, &it.Name, &it.Status, &it.Customer, &it.Date,
			&it.Quantity, &it.Weight, &it.Destination, &it.Description)
	if err == sql.ErrNoRows {
		return model.Item{}, false, nil
	}
	if err != nil {
		return model.Item{}, false, fmt.Errorf("getting item: %w", err)
	}
	return it, true, nil
}

// Add inserts an item and returns it with its new ID.
func (s *SQLItems) Add(ctx context.Context, it model.Item) (model.Item, error) {
	result, err := s.DB.ExecContext(ctx,
		`INSERT INTO items (code, name, status, customer, date, quantity, weight, destination, description)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		it.Code, it.Name, it.Status, it.Customer, it.Date, it.Quantity, it.Weight, it.Destination, it.Description,
	)
	if err != nil {
		return model.Item{}, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.Item{}, fmt.Errorf("getting item id: %w", err)
	}
	return it.WithID(id), nil
}

// Update overwrites every column of the item with it.ID.
func (s *SQLItems) Update(ctx context.Context, it model.Item) (bool, error) {
	result, err := s.DB.ExecContext(ctx,
		`UPDATE items SET code = ?, name = ?, status = ?, customer = ?, date = ?, quantity = ?,
		        weight = ?, destination = ?, description = ?
		 WHERE id = ?`,
		it.Code, it.Name, it.Status, it.Customer, it.Date, it.Quantity, it.Weight, it.Destination, it.Description, it.ID,
	)
	if err != nil {
		return false, fmt.Errorf("updating item: %w", err)
	}
	return affected(result)
}

// Remove deletes the item with id.
func (s *SQLItems) Remove(ctx context.Context, id int64) (bool, error) {
	result, err := s.DB.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting item: %w", err)
	}
	return affected(result)
}

// SeedItemsSQL inserts items keeping their IDs.
func SeedItemsSQL(ctx context.Context, db *sql.DB, items []model.Item) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, it := range items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO items (`+itemColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			it.ID, it.Code, it.Name, it.Status, it.Customer, it.Date, it.Quantity, it.Weight, it.Destination, it.Description,
		)
		if err != nil {
			return fmt.Errorf("seeding item %s: %w", it.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing item seed: %w", err)
	}
	return nil
}

func affected(result sql.Result) (bool, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("getting affected rows: %w", err)
	}
	return n > 0, nil
}
