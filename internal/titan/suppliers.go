package titan

import (
	"context"
	"fmt"
	"time"
)

// Supplier is one emitting company tracked on the dashboard.
type Supplier struct {
	Name   string
	Client string // the OEM client the supplier ships for
	CNPJ   string
}

// DefaultSuppliers is the registry behind the dashboard's selector.
var DefaultSuppliers = []Supplier{
	{Name: "Scania", Client: "Scania", CNPJ: "59104901000761"},
	{Name: "Mercedes-Benz", Client: "Mercedes", CNPJ: "31715616000504"},
	{Name: "Mobis", Client: "Mercedes", CNPJ: "08585033000314"},
	{Name: "Volkswagen", Client: "Volkswagen", CNPJ: "59104422001806"},
}

// FindSupplier looks a supplier up by name.
func FindSupplier(suppliers []Supplier, name string) (Supplier, bool) {
	for _, s := range suppliers {
		if s.Name == name {
			return s, true
		}
	}
	return Supplier{}, false
}

// FetchResult is the outcome of a fan-out fetch: the merged rows, the
// per-supplier volume totals, and the suppliers that failed. A failing
// supplier produces a warning, not a fatal error, so one offline source
// does not blank the whole dashboard.
type FetchResult struct {
	Orders           []Order
	VolumeBySupplier map[string]int
	Warnings         []string
}

// FetchAll queries every supplier in the registry for the date range,
// tagging each returned order with its supplier name.
func FetchAll(ctx context.Context, c *Client, suppliers []Supplier, from, to time.Time) FetchResult {
	result := FetchResult{VolumeBySupplier: make(map[string]int, len(suppliers))}
	for _, sup := range suppliers {
		orders, err := c.Fetch(ctx, sup.CNPJ, from, to)
		if err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("erro ao buscar dados de %s: %v", sup.Name, err))
			continue
		}
		volume := 0
		for i := range orders {
			orders[i].Supplier = sup.Name
			volume += orders[i].VolumeCount
		}
		result.Orders = append(result.Orders, orders...)
		result.VolumeBySupplier[sup.Name] = volume
	}
	return result
}
