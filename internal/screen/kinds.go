package screen

import (
	"math/rand/v2"
	"time"

	"github.com/erazemk/cargotrack/internal/form"
	"github.com/erazemk/cargotrack/internal/listing"
	"github.com/erazemk/cargotrack/internal/model"
)

// ItemKind describes cargo items. removed may be nil.
func ItemKind(removed func(id int64)) Kind[model.Item] {
	return Kind[model.Item]{
		Name:      "item",
		Match:     listing.MatchItem,
		Defaults:  model.NewItem,
		Derive:    deriveItem,
		Validator: form.NewValidator(&model.Item{}),
		Removed:   removed,
	}
}

// CustomerKind describes customers.
func CustomerKind() Kind[model.Customer] {
	return Kind[model.Customer]{
		Name:      "customer",
		Match:     listing.MatchCustomer,
		Defaults:  model.NewCustomer,
		Derive:    deriveCustomer,
		Validator: form.NewValidator(&model.Customer{}),
	}
}

func deriveItem(it model.Item, now time.Time) model.Item {
	if it.Date == "" {
		it.Date = model.FormatDate(now)
	}
	if it.Status == "" {
		it.Status = model.ItemStatusInWarehouse
	}
	return it
}

// deriveCustomer fills the fields the add form does not ask for. A new
// customer gets a synthesized order count between 1 and 50.
func deriveCustomer(c model.Customer, now time.Time) model.Customer {
	if c.JoinDate == "" {
		c.JoinDate = model.FormatDate(now)
	}
	if c.TotalOrders == 0 {
		c.TotalOrders = rand.IntN(50) + 1
	}
	if c.LastOrder == "" {
		c.LastOrder = "-"
	}
	if c.Status == "" {
		c.Status = model.CustomerStatusPending
	}
	if c.Type == "" {
		c.Type = model.CustomerTypeRegular
	}
	return c
}
