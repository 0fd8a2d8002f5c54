// Package report computes the dashboard and report figures.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/erazemk/cargotrack/internal/model"
)

// Summary holds the figures shown on the dashboard and reports screens.
type Summary struct {
	Items     ItemSummary     `json:"items"`
	Customers CustomerSummary `json:"customers"`
}

// ItemSummary aggregates cargo items.
type ItemSummary struct {
	Total           int             `json:"total"`
	ByStatus        map[string]int  `json:"by_status"`
	TotalQuantity   int             `json:"total_quantity"`
	TotalWeightKg   decimal.Decimal `json:"total_weight_kg"`
	UnparsedWeights int             `json:"unparsed_weights"`
	DeliveryRate    decimal.Decimal `json:"delivery_rate"`
	Destinations    int             `json:"destinations"`
}

// CustomerSummary aggregates customers.
type CustomerSummary struct {
	Total        int              `json:"total"`
	ByStatus     map[string]int   `json:"by_status"`
	ByType       map[string]int   `json:"by_type"`
	TotalOrders  int              `json:"total_orders"`
	TopCustomers []model.Customer `json:"top_customers"`
}

// TopCustomerCount is the length of the top customers list.
const TopCustomerCount = 5

var (
	hundred = decimal.NewFromInt(100)
	unitKg  = map[string]decimal.Decimal{
		"kg":  decimal.NewFromInt(1),
		"kgs": decimal.NewFromInt(1),
		"g":   decimal.New(1, -3),
		"t":   decimal.NewFromInt(1000),
		"ton": decimal.NewFromInt(1000),
	}
)

// Summarize computes the report figures for items and customers.
func Summarize(items []model.Item, customers []model.Customer) Summary {
	return Summary{
		Items:     summarizeItems(items),
		Customers: summarizeCustomers(customers),
	}
}

func summarizeItems(items []model.Item) ItemSummary {
	s := ItemSummary{
		Total:         len(items),
		ByStatus:      make(map[string]int, len(model.ItemStatuses)),
		TotalWeightKg: decimal.Zero,
		DeliveryRate:  decimal.Zero,
	}
	for _, st := range model.ItemStatuses {
		s.ByStatus[st] = 0
	}

	destinations := make(map[string]bool)
	for _, it := range items {
		s.ByStatus[it.Status]++
		s.TotalQuantity += it.Quantity
		if it.Destination != "" {
			destinations[strings.ToLower(it.Destination)] = true
		}

		kg, err := ParseWeightKg(it.Weight)
		if err != nil {
			s.UnparsedWeights++
			continue
		}
		s.TotalWeightKg = s.TotalWeightKg.Add(kg)
	}
	s.Destinations = len(destinations)

	if len(items) > 0 {
		shipped := decimal.NewFromInt(int64(s.ByStatus[model.ItemStatusShipped]))
		s.DeliveryRate = shipped.Mul(hundred).Div(decimal.NewFromInt(int64(len(items)))).Round(1)
	}
	return s
}

func summarizeCustomers(customers []model.Customer) CustomerSummary {
	s := CustomerSummary{
		Total:    len(customers),
		ByStatus: make(map[string]int, len(model.CustomerStatuses)),
		ByType:   make(map[string]int, len(model.CustomerTypes)),
	}
	for _, st := range model.CustomerStatuses {
		s.ByStatus[st] = 0
	}
	for _, t := range model.CustomerTypes {
		s.ByType[t] = 0
	}

	for _, c := range customers {
		s.ByStatus[c.Status]++
		s.ByType[c.Type]++
		s.TotalOrders += c.TotalOrders
	}

	top := make([]model.Customer, len(customers))
	copy(top, customers)
	sort.SliceStable(top, func(i, j int) bool { return top[i].TotalOrders > top[j].TotalOrders })
	if len(top) > TopCustomerCount {
		top = top[:TopCustomerCount]
	}
	s.TopCustomers = top
	return s
}

// ParseWeightKg parses a display weight such as "25 kg", "1.5 ton" or
// "750 g" into kilograms. A bare number is taken as kilograms.
func ParseWeightKg(weight string) (decimal.Decimal, error) {
	fields := strings.Fields(strings.ToLower(strings.ReplaceAll(weight, ",", ".")))
	if len(fields) == 0 {
		return decimal.Zero, fmt.Errorf("empty weight")
	}

	number, unit := fields[0], "kg"
	if len(fields) > 1 {
		unit = fields[1]
	} else if i := strings.IndexFunc(number, isUnitRune); i > 0 {
		number, unit = number[:i], number[i:]
	}

	factor, ok := unitKg[unit]
	if !ok || len(fields) > 2 {
		return decimal.Zero, fmt.Errorf("unknown weight unit in %q", weight)
	}
	value, err := decimal.NewFromString(number)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing weight %q: %w", weight, err)
	}
	return value.Mul(factor), nil
}

func isUnitRune(r rune) bool {
	return r >= 'a' && r <= 'z'
}
