package model

// Customer represents a shipping customer.
type Customer struct {
	ID          int64  `json:"id"`
	Name        string `json:"name" jsonschema:"required,title=Nama Lengkap"`
	Company     string `json:"company" jsonschema:"required,title=Perusahaan"`
	Email       string `json:"email" jsonschema:"required,format=email,title=Email"`
	Phone       string `json:"phone" jsonschema:"required,title=Telepon"`
	Address     string `json:"address" jsonschema:"required,title=Alamat"`
	Status      string `json:"status" jsonschema:"enum=active,enum=inactive,enum=pending"`
	Type        string `json:"type" jsonschema:"required,enum=regular,enum=premium,enum=vip,enum=enterprise"`
	TotalOrders int    `json:"totalOrders" jsonschema:"minimum=0"`
	LastOrder   string `json:"lastOrder"`
	JoinDate    string `json:"joinDate"`
	Notes       string `json:"notes"`
}

// Customer statuses.
const (
	CustomerStatusActive   = "active"
	CustomerStatusInactive = "inactive"
	CustomerStatusPending  = "pending"
)

// Customer types.
const (
	CustomerTypeRegular    = "regular"
	CustomerTypePremium    = "premium"
	CustomerTypeVIP        = "vip"
	CustomerTypeEnterprise = "enterprise"
)

// CustomerStatuses lists customer statuses in display order.
var CustomerStatuses = []string{
	CustomerStatusActive,
	CustomerStatusInactive,
	CustomerStatusPending,
}

// CustomerTypes lists customer types in display order.
var CustomerTypes = []string{
	CustomerTypeRegular,
	CustomerTypePremium,
	CustomerTypeVIP,
	CustomerTypeEnterprise,
}

// RecordID returns the customer's ID.
func (c Customer) RecordID() int64 { return c.ID }

// WithID returns a copy of the customer carrying id.
func (c Customer) WithID(id int64) Customer {
	c.ID = id
	return c
}

// NewCustomer returns a customer with the defaults of an empty add form.
func NewCustomer() Customer {
	return Customer{Status: CustomerStatusPending, Type: CustomerTypeRegular}
}
