package screen

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/erazemk/cargotrack/internal/form"
	"github.com/erazemk/cargotrack/internal/listing"
	"github.com/erazemk/cargotrack/internal/model"
	"github.com/erazemk/cargotrack/internal/store"
)

var fixedNow = time.Date(2024, 1, 20, 9, 30, 0, 0, time.UTC)

func newItemScreen(t *testing.T, removed func(int64)) *Screen[model.Item] {
	t.Helper()
	s, err := New(context.Background(), store.NewMemory(store.SeedItems()), ItemKind(removed), listing.DefaultPageSize)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.now = func() time.Time { return fixedNow }
	return s
}

func newCustomerScreen(t *testing.T) *Screen[model.Customer] {
	t.Helper()
	s, err := New(context.Background(), store.NewMemory(store.SeedCustomers()), CustomerKind(), listing.DefaultPageSize)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.now = func() time.Time { return fixedNow }
	return s
}

func view[T model.Record[T]](t *testing.T, s *Screen[T]) listing.Page[T] {
	t.Helper()
	page, err := s.View(context.Background())
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	return page
}

func pageIDs[T model.Record[T]](p listing.Page[T]) []int64 {
	out := make([]int64, len(p.Records))
	for i, r := range p.Records {
		out[i] = r.RecordID()
	}
	return out
}

func sameIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func newCargo(code string) model.Item {
	return model.Item{
		Code: code, Name: "Furniture - Meja", Status: model.ItemStatusInWarehouse,
		Customer: "PT Meubel Jaya", Quantity: 10, Weight: "80 kg", Destination: "Semarang",
	}
}

func TestInitialView(t *testing.T) {
	s := newItemScreen(t, nil)
	p := view(t, s)
	if p.Page != 1 || p.TotalPages != 2 || !sameIDs(pageIDs(p), []int64{1, 2, 3, 4}) {
		t.Errorf("unexpected first page: page=%d pages=%d ids=%v", p.Page, p.TotalPages, pageIDs(p))
	}
}

func TestAddThenSearch(t *testing.T) {
	ctx := context.Background()
	s := newItemScreen(t, nil)

	s.OpenCreate()
	if _, err := s.UpdateForm(newCargo("CRG-007-2024")); err != nil {
		t.Fatal(err)
	}
	mode, created, err := s.SubmitForm(ctx)
	if err != nil {
		t.Fatalf("SubmitForm: %v", err)
	}
	if mode != form.Creating {
		t.Errorf("expected mode %s, got %s", form.Creating, mode)
	}
	if created.ID != 7 || created.Date != "20 Jan 2024" {
		t.Errorf("created item: id=%d date=%q", created.ID, created.Date)
	}
	if s.Form().Mode != form.Closed {
		t.Error("a successful submit closes the form")
	}

	if err := s.SetCriteria(ctx, model.Criteria{Search: "007"}); err != nil {
		t.Fatal(err)
	}
	p := view(t, s)
	if p.Filtered != 1 || p.Records[0].Code != "CRG-007-2024" {
		t.Errorf("search 007: filtered=%d", p.Filtered)
	}

	s.SetCriteria(ctx, model.Criteria{})
	p = view(t, s)
	if !sameIDs(pageIDs(p), []int64{1, 2, 3, 4}) || p.TotalPages != 2 {
		t.Errorf("after clearing: ids=%v pages=%d", pageIDs(p), p.TotalPages)
	}
}

func TestDeleteOnlyRecordOfLastPage(t *testing.T) {
	ctx := context.Background()
	s := newItemScreen(t, nil)

	// Five records: page 2 holds only item 5.
	s.RequestDelete(ctx, 6)
	s.ConfirmDelete(ctx)
	if err := s.GoToPage(2); err != nil {
		t.Fatal(err)
	}

	if _, err := s.RequestDelete(ctx, 5); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ConfirmDelete(ctx); err != nil {
		t.Fatalf("ConfirmDelete: %v", err)
	}
	p := view(t, s)
	if p.Page != 1 || p.TotalPages != 1 || len(p.Records) != 4 {
		t.Errorf("expected page 1 of 1 with 4 records, got page %d of %d with %d", p.Page, p.TotalPages, len(p.Records))
	}
}

func TestDeleteKeepsPage(t *testing.T) {
	ctx := context.Background()
	s := newCustomerScreen(t)
	s.Create(ctx, model.Customer{Name: "A", Company: "A", Email: "a@a", Phone: "1", Address: "Jl. A", Type: model.CustomerTypeRegular})
	s.Create(ctx, model.Customer{Name: "B", Company: "B", Email: "b@b", Phone: "2", Address: "Jl. B", Type: model.CustomerTypeRegular})
	s.Create(ctx, model.Customer{Name: "C", Company: "C", Email: "c@c", Phone: "3", Address: "Jl. C", Type: model.CustomerTypeRegular})
	if err := s.GoToPage(2); err != nil {
		t.Fatal(err)
	}

	s.RequestDelete(ctx, 1)
	s.ConfirmDelete(ctx)
	if p := view(t, s); p.Page != 2 {
		t.Errorf("deleting on another page should keep page 2, got %d", p.Page)
	}
}

func TestAddWithNonMatchingFilterResetsPage(t *testing.T) {
	ctx := context.Background()
	s := newItemScreen(t, nil)

	s.SetCriteria(ctx, model.Criteria{Status: model.ItemStatusInContainer})
	if _, err := s.Create(ctx, newCargo("CRG-008-2024")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	p := view(t, s)
	if p.Page != 1 || p.Filtered != 2 || p.Total != 7 {
		t.Errorf("page=%d filtered=%d total=%d", p.Page, p.Filtered, p.Total)
	}
	for _, it := range p.Records {
		if it.Code == "CRG-008-2024" {
			t.Error("the new item does not match the filter and must stay hidden")
		}
	}
}

func TestEditDeletedRecord(t *testing.T) {
	ctx := context.Background()
	s := newItemScreen(t, nil)

	if _, err := s.OpenEdit(ctx, 2); err != nil {
		t.Fatal(err)
	}
	// The record disappears while the dialog is open.
	s.RequestDelete(ctx, 2)
	s.ConfirmDelete(ctx)

	before, _ := s.All(ctx)
	_, _, err := s.SubmitForm(ctx)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	after, _ := s.All(ctx)
	if len(before) != len(after) {
		t.Errorf("store changed: %d -> %d records", len(before), len(after))
	}
	if s.Form().Mode != form.Closed {
		t.Error("the dialog closes when its record is gone")
	}
	if err := s.Replace(ctx, model.Item{ID: 2, Code: "x", Name: "x", Status: model.ItemStatusShipped, Customer: "x", Weight: "1 kg", Destination: "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Replace on a missing id: expected ErrNotFound, got %v", err)
	}
}

func TestEditPreservesIDAndPosition(t *testing.T) {
	ctx := context.Background()
	s := newCustomerScreen(t)
	s.GoToPage(2)

	state, err := s.OpenEdit(ctx, 5)
	if err != nil {
		t.Fatal(err)
	}
	fields := state.Fields
	fields.Status = model.CustomerStatusActive
	s.UpdateForm(fields)
	mode, _, err := s.SubmitForm(ctx)
	if err != nil {
		t.Fatalf("SubmitForm: %v", err)
	}
	if mode != form.Editing {
		t.Errorf("expected mode %s, got %s", form.Editing, mode)
	}

	all, _ := s.All(ctx)
	if all[4].ID != 5 || all[4].Status != model.CustomerStatusActive || all[4].JoinDate != "12 Sep 2023" {
		t.Errorf("unexpected record after edit: %+v", all[4])
	}
	if p := view(t, s); p.Page != 2 {
		t.Errorf("editing keeps the page, got %d", p.Page)
	}
}

func TestSubmitValidationKeepsFormOpen(t *testing.T) {
	ctx := context.Background()
	s := newCustomerScreen(t)

	s.OpenCreate()
	s.UpdateForm(model.Customer{Name: "Tanpa Perusahaan", Type: model.CustomerTypeRegular})
	_, _, err := s.SubmitForm(ctx)

	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected a ValidationError, got %v", err)
	}
	if s.Form().Mode != form.Creating {
		t.Error("the form stays open after a validation error")
	}
	if all, _ := s.All(ctx); len(all) != 6 {
		t.Errorf("nothing should be stored, got %d customers", len(all))
	}
}

func TestCustomerDerivedFields(t *testing.T) {
	ctx := context.Background()
	s := newCustomerScreen(t)

	c, err := s.Create(ctx, model.Customer{Name: "Rina", Company: "PT Baru", Email: "rina@baru.id", Phone: "0812", Address: "Jl. Asia Afrika No. 8, Bandung", Type: model.CustomerTypeEnterprise})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.JoinDate != "20 Jan 2024" || c.LastOrder != "-" || c.Status != model.CustomerStatusPending {
		t.Errorf("unexpected derived fields: %+v", c)
	}
	if c.TotalOrders < 1 || c.TotalOrders > 50 {
		t.Errorf("total orders %d outside [1, 50]", c.TotalOrders)
	}
}

func TestDeleteConfirmation(t *testing.T) {
	ctx := context.Background()
	var removed []int64
	s := newItemScreen(t, func(id int64) { removed = append(removed, id) })

	if _, err := s.ConfirmDelete(ctx); !errors.Is(err, ErrNoPendingDelete) {
		t.Errorf("confirm without request: expected ErrNoPendingDelete, got %v", err)
	}
	if _, err := s.RequestDelete(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("request on unknown id: expected ErrNotFound, got %v", err)
	}
	if _, ok := s.PendingDelete(); ok {
		t.Error("an unknown id must not leave a pending delete")
	}

	s.RequestDelete(ctx, 3)
	s.CancelDelete()
	if all, _ := s.All(ctx); len(all) != 6 {
		t.Error("cancel must not delete")
	}

	s.RequestDelete(ctx, 3)
	if rec, ok := s.PendingDelete(); !ok || rec.ID != 3 {
		t.Errorf("pending delete: ok=%v id=%d", ok, rec.ID)
	}
	if _, err := s.ConfirmDelete(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, 3); !errors.Is(err, ErrNotFound) {
		t.Error("item 3 should be gone")
	}
	if len(removed) != 1 || removed[0] != 3 {
		t.Errorf("removed hook: %v", removed)
	}
}

func TestIDsNeverReused(t *testing.T) {
	ctx := context.Background()
	s := newItemScreen(t, nil)

	s.RequestDelete(ctx, 6)
	s.ConfirmDelete(ctx)
	created, err := s.Create(ctx, newCargo("CRG-009-2024"))
	if err != nil {
		t.Fatal(err)
	}
	if created.ID != 7 {
		t.Errorf("expected id 7 after deleting 6, got %d", created.ID)
	}
}

func TestViewIsMemoized(t *testing.T) {
	ctx := context.Background()
	s := newItemScreen(t, nil)
	start := s.proj.Computes()

	view(t, s)
	view(t, s)
	if got := s.proj.Computes() - start; got != 0 {
		t.Errorf("viewing twice recomputed %d times", got)
	}

	s.Create(ctx, newCargo("CRG-010-2024"))
	view(t, s)
	if got := s.proj.Computes() - start; got != 1 {
		t.Errorf("a mutation should recompute once, got %d", got)
	}
}

func TestSubmitReportsAppliedModeUnderContention(t *testing.T) {
	ctx := context.Background()
	s := newItemScreen(t, nil)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				s.OpenCreate()
				s.UpdateForm(newCargo("CRG-100-2024"))
			} else {
				state, err := s.OpenEdit(ctx, int64(i%6+1))
				if err != nil {
					t.Errorf("OpenEdit: %v", err)
					return
				}
				s.UpdateForm(state.Fields)
			}
			mode, rec, err := s.SubmitForm(ctx)
			if err != nil {
				// Another goroutine closed the dialog first.
				return
			}
			if created := rec.ID > 6; created != (mode == form.Creating) {
				t.Errorf("mode %s returned for record %d", mode, rec.ID)
			}
		}()
	}
	wg.Wait()
}
