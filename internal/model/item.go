package model

// Item represents a cargo shipment tracked by the dashboard.
type Item struct {
	ID          int64  `json:"id"`
	Code        string `json:"code" jsonschema:"required,title=Kode Barang"`
	Name        string `json:"name" jsonschema:"required,title=Nama Barang"`
	Status      string `json:"status" jsonschema:"required,enum=in_warehouse,enum=in_container,enum=delayed,enum=shipped"`
	Customer    string `json:"customer" jsonschema:"required,title=Pelanggan"`
	Date        string `json:"date" jsonschema:"title=Tanggal"`
	Quantity    int    `json:"quantity" jsonschema:"minimum=0"`
	Weight      string `json:"weight" jsonschema:"required,title=Berat"`
	Destination string `json:"destination" jsonschema:"required,title=Tujuan"`
	Description string `json:"description"`
}

// Item statuses.
const (
	ItemStatusInWarehouse = "in_warehouse"
	ItemStatusInContainer = "in_container"
	ItemStatusDelayed     = "delayed"
	ItemStatusShipped     = "shipped"
)

// ItemStatuses lists item statuses in display order.
var ItemStatuses = []string{
	ItemStatusInWarehouse,
	ItemStatusInContainer,
	ItemStatusDelayed,
	ItemStatusShipped,
}

// RecordID returns the item's ID.
func (i Item) RecordID() int64 { return i.ID }

// WithID returns a copy of the item carrying id.
func (i Item) WithID(id int64) Item {
	i.ID = id
	return i
}

// NewItem returns an item with the defaults of an empty add form.
func NewItem() Item {
	return Item{Status: ItemStatusInWarehouse}
}
