// Package printdoc builds fully-formed print view-models for each layout and
// renders them to PDF. Builders are pure; rendering is the only side effect,
// so every surface that lists order items shares the same data and ordering.
package printdoc

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/onzacore/distri-api/internal/models"
	"github.com/onzacore/distri-api/internal/order"
)

// Line is one row of the price/quantity sheet.
type Line struct {
	Quantity     float64
	ProductName  string
	StockWarning bool
	UnitPrice    float64
	Subtotal     float64
}

// PriceSheet is the customer-facing print layout: sequenced items, unit
// prices, subtotals, total, notes and a signature block.
type PriceSheet struct {
	CompanyName   string
	OrderID       int64
	ClientName    string
	ClientAddress string
	Date          time.Time
	Lines         []Line
	Total         float64
	Notes         string
}

// AssemblyLine is one row of the warehouse checklist.
type AssemblyLine struct {
	Quantity    float64
	ProductName string
}

// AssemblySheet is the warehouse checklist layout. Its lines keep the raw
// persisted item order: warehouse staff pick in the sequence the client
// dictated, so this layout must never be run through the sequencer.
type AssemblySheet struct {
	OrderID    int64
	ClientName string
	Lines      []AssemblyLine
}

// BuildPriceSheet builds the price/quantity sheet for an order.
func BuildPriceSheet(companyName string, ord models.Order, seq *order.Sequencer) PriceSheet {
	sorted := seq.Sort(ord.Items)

	lines := make([]Line, 0, len(sorted))
	for _, item := range sorted {
		lines = append(lines, Line{
			Quantity:     order.RoundQuantity(item.Quantity),
			ProductName:  item.ProductName,
			StockWarning: item.StockWarning,
			UnitPrice:    item.FrozenUnitPrice,
			Subtotal:     order.RoundCurrency(item.Subtotal()),
		})
	}

	return PriceSheet{
		CompanyName:   companyName,
		OrderID:       ord.ID,
		ClientName:    ord.ClientName,
		ClientAddress: ord.ClientAddress,
		Date:          ord.CreatedAt,
		Lines:         lines,
		Total:         order.RoundCurrency(order.ComputeTotal(ord.Items)),
		Notes:         ord.DeliveryNotes,
	}
}

// BuildAssemblySheet builds the warehouse checklist for an order.
func BuildAssemblySheet(ord models.Order) AssemblySheet {
	lines := make([]AssemblyLine, 0, len(ord.Items))
	for _, item := range ord.Items {
		lines = append(lines, AssemblyLine{
			Quantity:    order.RoundQuantity(item.Quantity),
			ProductName: item.ProductName,
		})
	}
	return AssemblySheet{
		OrderID:    ord.ID,
		ClientName: ord.ClientName,
		Lines:      lines,
	}
}

// PriceListEntry is one product row of the bulk price list.
type PriceListEntry struct {
	SKU        string
	Name       string
	Price      string // whole units, locale-grouped
	OutOfStock bool
}

// PriceListGroup is one category section of the bulk price list.
type PriceListGroup struct {
	Category string
	Entries  []PriceListEntry
}

// PriceList is the full-catalog price list layout, grouped by category in
// the same category order the sequencer produces.
type PriceList struct {
	CompanyName string
	Date        time.Time
	Groups      []PriceListGroup
}

// BuildPriceList builds the bulk price list from the live catalog.
func BuildPriceList(companyName string, products []models.Product, seq *order.Sequencer, now time.Time) PriceList {
	grouped := make(map[string][]models.Product)
	var categories []string
	for _, p := range products {
		cat := order.DisplayCategory(p.Category)
		if _, ok := grouped[cat]; !ok {
			categories = append(categories, cat)
		}
		grouped[cat] = append(grouped[cat], p)
	}

	coll := collate.New(language.Spanish, collate.IgnoreCase)
	sort.SliceStable(categories, func(i, j int) bool {
		wI, wJ := seq.Weight(categories[i]), seq.Weight(categories[j])
		if wI != wJ {
			return wI < wJ
		}
		return coll.CompareString(categories[i], categories[j]) < 0
	})

	groups := make([]PriceListGroup, 0, len(categories))
	for _, cat := range categories {
		items := grouped[cat]
		sort.SliceStable(items, func(i, j int) bool {
			return coll.CompareString(items[i].Name, items[j].Name) < 0
		})

		entries := make([]PriceListEntry, 0, len(items))
		for _, p := range items {
			entries = append(entries, PriceListEntry{
				SKU:        p.SKU,
				Name:       p.Name,
				Price:      order.FormatListPrice(p.UnitPrice),
				OutOfStock: p.OutOfStock(),
			})
		}
		groups = append(groups, PriceListGroup{Category: cat, Entries: entries})
	}

	return PriceList{CompanyName: companyName, Date: now, Groups: groups}
}
