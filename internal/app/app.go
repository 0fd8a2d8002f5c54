// Package app wires the record stores to their screens.
package app

import (
	"cmp"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"github.com/erazemk/cargotrack/internal/db"
	"github.com/erazemk/cargotrack/internal/imaging"
	"github.com/erazemk/cargotrack/internal/model"
	"github.com/erazemk/cargotrack/internal/report"
	"github.com/erazemk/cargotrack/internal/screen"
	"github.com/erazemk/cargotrack/internal/store"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config selects the store backend and page size.
type Config struct {
	Backend  string
	PageSize int
}

// App holds the screens shared by the API and the web pages.
type App struct {
	Items     *screen.Screen[model.Item]
	Customers *screen.Screen[model.Customer]
	Photos    *store.Photos

	database *sql.DB
}

// New seeds the stores and builds their screens.
func New(ctx context.Context, cfg Config) (*App, error) {
	var (
		items     store.ItemRepository
		customers store.CustomerRepository
		database  *sql.DB
	)

	switch cfg.Backend {
	case "", BackendMemory:
		items = store.NewMemory(store.SeedItems())
		customers = store.NewMemory(store.SeedCustomers())
	case BackendSQLite:
		var err error
		database, err = openSeeded(ctx, ":memory:")
		if err != nil {
			return nil, err
		}
		items = &store.SQLItems{DB: database}
		customers = &store.SQLCustomers{DB: database}
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}

	a := &App{Photos: store.NewPhotos(), database: database}

	var err error
	a.Items, err = screen.New(ctx, items, screen.ItemKind(a.Photos.Delete), cfg.PageSize)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("building items screen: %w", err)
	}
	a.Customers, err = screen.New(ctx, customers, screen.CustomerKind(), cfg.PageSize)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("building customers screen: %w", err)
	}

	slog.Info("stores ready", "backend", cmp.Or(cfg.Backend, BackendMemory))
	return a, nil
}

func openSeeded(ctx context.Context, path string) (*sql.DB, error) {
	database, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	if err := db.EnsureSchema(database); err != nil {
		database.Close()
		return nil, err
	}
	if err := store.SeedItemsSQL(ctx, database, store.SeedItems()); err != nil {
		database.Close()
		return nil, err
	}
	if err := store.SeedCustomersSQL(ctx, database, store.SeedCustomers()); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// Report computes the dashboard figures over all records.
func (a *App) Report(ctx context.Context) (report.Summary, error) {
	items, err := a.Items.All(ctx)
	if err != nil {
		return report.Summary{}, err
	}
	customers, err := a.Customers.All(ctx)
	if err != nil {
		return report.Summary{}, err
	}
	return report.Summarize(items, customers), nil
}

// SetPhoto processes an uploaded photo and attaches it to the item with id,
// replacing any previous one.
func (a *App) SetPhoto(ctx context.Context, id int64, r io.Reader) (store.Photo, error) {
	if _, err := a.Items.Get(ctx, id); err != nil {
		return store.Photo{}, err
	}
	processed, err := imaging.Process(r)
	if err != nil {
		return store.Photo{}, err
	}
	photo := store.Photo{Data: processed.Data, MIME: processed.MIME, ETag: processed.ETag}
	a.Photos.Set(id, photo)
	return photo, nil
}

// Close releases the database of the SQLite backend.
func (a *App) Close() error {
	if a.database == nil {
		return nil
	}
	return a.database.Close()
}
