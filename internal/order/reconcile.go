package order

import (
	"fmt"

	"github.com/onzacore/distri-api/internal/models"
)

// IntegrityIssue ties a line item's captured product reference to the fact
// that no matching product exists in the live catalog. It is data, not an
// error: the order stays fully viewable and editable.
type IntegrityIssue struct {
	ProductID   int64  `json:"producto_id"`
	ProductName string `json:"nombre_producto"`
	Message     string `json:"mensaje"`
}

// FindIntegrityIssues returns one issue per line item whose product id is not
// present in the catalog, in input item order. Pure: no mutation, no I/O,
// safe to re-run on every order or catalog refresh.
//
// An empty catalog flags every item; an empty item list yields no issues.
// Duplicate product ids in the catalog are harmless (membership test only).
func FindIntegrityIssues(items []models.OrderItem, catalog []models.Product) []IntegrityIssue {
	live := make(map[int64]struct{}, len(catalog))
	for _, p := range catalog {
		live[p.ID] = struct{}{}
	}

	issues := []IntegrityIssue{}
	for _, item := range items {
		if _, ok := live[item.ProductID]; !ok {
			issues = append(issues, IntegrityIssue{
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				Message:     fmt.Sprintf("El producto %q (ID: %d) ya no existe.", item.ProductName, item.ProductID),
			})
		}
	}
	return issues
}
