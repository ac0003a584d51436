package order

import (
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/onzacore/distri-api/internal/models"
)

// Editor owns the mutable working copy of an order's line items during an
// edit session, independent of the persisted order. Discarding edits with
// Reset restores the last persisted snapshot exactly.
//
// An Editor is not safe for concurrent use; one editing session maps to one
// Editor.
type Editor struct {
	items    []models.OrderItem
	snapshot []models.OrderItem
}

// NewEditor starts an edit session over the persisted line items.
func NewEditor(persisted []models.OrderItem) *Editor {
	e := &Editor{}
	e.snapshot = append([]models.OrderItem(nil), persisted...)
	e.items = append([]models.OrderItem(nil), persisted...)
	return e
}

// Items returns a copy of the current working set.
func (e *Editor) Items() []models.OrderItem {
	return append([]models.OrderItem(nil), e.items...)
}

// Reset discards all edits and restores the persisted snapshot.
func (e *Editor) Reset() {
	e.items = append([]models.OrderItem(nil), e.snapshot...)
}

// matchesID reports whether id addresses the given line item, by its line id
// or by its product id, whichever identity the caller currently knows. Every
// mutator resolves identity through this one function.
func matchesID(item models.OrderItem, id string) bool {
	if item.ID != "" && item.ID == id {
		return true
	}
	return strconv.FormatInt(item.ProductID, 10) == id
}

// SetQuantity updates the quantity of the item addressed by id. Non-numeric
// input coerces to 0, which models "about to be removed" rather than an
// error: zero-quantity lines stay visible while editing and are purged only
// at save time.
func (e *Editor) SetQuantity(id, raw string) {
	qty := ParseQuantity(raw)
	for i := range e.items {
		if matchesID(e.items[i], id) {
			e.items[i].Quantity = qty
		}
	}
}

// RemoveItem drops the item addressed by id from the working set.
func (e *Editor) RemoveItem(id string) {
	kept := e.items[:0]
	for _, item := range e.items {
		if !matchesID(item, id) {
			kept = append(kept, item)
		}
	}
	e.items = kept
}

// AddItem appends a new line for the product with quantity 1, freezing the
// product's current unit price. Idempotent per product: adding a product that
// already has a line is a no-op, so one product never yields duplicate lines.
// Returns whether a line was added.
func (e *Editor) AddItem(p models.Product) bool {
	for _, item := range e.items {
		if item.ProductID == p.ID {
			return false
		}
	}
	e.items = append(e.items, models.OrderItem{
		ID:              models.SyntheticIDPrefix + uuid.NewString(),
		ProductID:       p.ID,
		ProductName:     p.Name,
		Category:        p.Category,
		SKU:             p.SKU,
		Quantity:        1,
		FrozenUnitPrice: p.UnitPrice,
		StockWarning:    p.OutOfStock(),
	})
	return true
}

// Total computes the running total of the working set.
func (e *Editor) Total() float64 {
	return ComputeTotal(e.items)
}

// PrepareForSave maps the working set to the save payload.
func (e *Editor) PrepareForSave() []models.SaveItem {
	return PrepareForSave(e.items)
}

// ParseQuantity parses a locale-tolerant decimal: a comma decimal separator
// is normalized to a period before parsing. Never fails; anything that does
// not parse to a finite number yields 0.
func ParseQuantity(raw string) float64 {
	normalized := strings.Replace(strings.TrimSpace(raw), ",", ".", 1)
	qty, err := strconv.ParseFloat(normalized, 64)
	if err != nil || math.IsNaN(qty) || math.IsInf(qty, 0) {
		return 0
	}
	return qty
}

// ComputeTotal sums quantity times frozen unit price over the items; 0 for an
// empty list. The same semantics back the interactive total and both print
// layouts.
func ComputeTotal(items []models.OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}

// PrepareForSave maps items to {producto_id, cantidad} pairs and drops any
// item with quantity <= 0. This is the only place non-positive lines are
// purged.
func PrepareForSave(items []models.OrderItem) []models.SaveItem {
	payload := make([]models.SaveItem, 0, len(items))
	for _, item := range items {
		if item.Quantity > 0 {
			payload = append(payload, models.SaveItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}
	}
	return payload
}
