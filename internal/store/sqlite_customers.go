package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/cargotrack/internal/model"
)

const customerColumns = `id, name, company, email, phone, address, status, type, total_orders, last_order, join_date, notes`

// SQLCustomers is a CustomerRepository backed by SQLite.
type SQLCustomers struct {
	DB *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner, c *model.Customer) error {
	return row.Scan(&c.ID, &c.Name, &c.Company, &c.Email, &c.Phone, &c.Address, &c.Status, &c.Type,
		&c.TotalOrders, &c.LastOrder, &c.JoinDate, &c.Notes)
}

// List returns all customers ordered by ID.
func (s *SQLCustomers) List(ctx context.Context) ([]model.Customer, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	var customers []model.Customer
	for rows.Next() {
		var c model.Customer
		if err := scanCustomer(rows, &c); err != nil {
			return nil, fmt.Errorf("scanning customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// Get returns a customer by ID.
func (s *SQLCustomers) Get(ctx context.Context, id int64) (model.Customer, bool, error) {
	var c model.Customer
	err := scanCustomer(s.DB.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = ?`, id), &c)
	if err == sql.ErrNoRows {
		return model.Customer{}, false, nil
	}
	if err != nil {
		return model.Customer{}, false, fmt.Errorf("getting customer: %w", err)
	}
	return c, true, nil
}

// Add inserts a customer and returns it with its new ID.
func (s *SQLCustomers) Add(ctx context.Context, c model.Customer) (model.Customer, error) {
	result, err := s.DB.ExecContext(ctx,
		`INSERT INTO customers (name, company, email, phone, address, status, type, total_orders, last_order, join_date, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.Company, c.Email, c.Phone, c.Address, c.Status, c.Type, c.TotalOrders, c.LastOrder, c.JoinDate, c.Notes,
	)
	if err != nil {
		return model.Customer{}, fmt.Errorf("creating customer: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.Customer{}, fmt.Errorf("getting customer id: %w", err)
	}
	return c.WithID(id), nil
}

// Update overwrites every column of the customer with c.ID.
func (s *SQLCustomers) Update(ctx context.Context, c model.Customer) (bool, error) {
	result, err := s.DB.ExecContext(ctx,
		`UPDATE customers SET name = ?, company = ?, email = ?, phone = ?, address = ?, status = ?, type = ?,
		        total_orders = ?, last_order = ?, join_date = ?, notes = ?
		 WHERE id = ?`,
		c.Name, c.Company, c.Email, c.Phone, c.Address, c.Status, c.Type, c.TotalOrders, c.LastOrder, c.JoinDate, c.Notes, c.ID,
	)
	if err != nil {
		return false, fmt.Errorf("updating customer: %w", err)
	}
	return affected(result)
}

// Remove deletes the customer with id.
func (s *SQLCustomers) Remove(ctx context.Context, id int64) (bool, error) {
	result, err := s.DB.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting customer: %w", err)
	}
	return affected(result)
}

// SeedCustomersSQL inserts customers keeping their IDs.
func SeedCustomersSQL(ctx context.Context, db *sql.DB, customers []model.Customer) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, c := range customers {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO customers (`+customerColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.Name, c.Company, c.Email, c.Phone, c.Address, c.Status, c.Type, c.TotalOrders, c.LastOrder, c.JoinDate, c.Notes,
		)
		if err != nil {
			return fmt.Errorf("seeding customer %s: %w", c.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing customer seed: %w", err)
	}
	return nil
}
