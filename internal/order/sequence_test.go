package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onzacore/distri-api/internal/models"
)

func TestSequencerWeight(t *testing.T) {
	s := NewSequencer([]string{"fiambreria"})

	assert.Equal(t, 0, s.Weight("Almacen"))
	assert.Equal(t, 1, s.Weight(""))
	assert.Equal(t, 1, s.Weight("Sin Categoría"))
	assert.Equal(t, 2, s.Weight("Fiambreria"))
	assert.Equal(t, 2, s.Weight("FIAMBRERIA"))
}

func TestSortDeferredAndUncategorizedLast(t *testing.T) {
	s := NewSequencer([]string{"fiambreria"})
	items := []models.OrderItem{
		{ProductName: "Queso Cremoso", Category: "Fiambreria"},
		{ProductName: "Leche Entera", Category: "Lacteos"},
		{ProductName: "Misterioso", Category: ""},
		{ProductName: "Dulce de Leche", Category: "Lacteos"},
	}

	sorted := s.Sort(items)

	require.Len(t, sorted, 4)
	// Regular categories first, alphabetical by product name within each.
	assert.Equal(t, "Dulce de Leche", sorted[0].ProductName)
	assert.Equal(t, "Leche Entera", sorted[1].ProductName)
	// Uncategorized next-to-last, deferred category dead last.
	assert.Equal(t, "Misterioso", sorted[2].ProductName)
	assert.Equal(t, "Queso Cremoso", sorted[3].ProductName)
}

func TestSortConfigurableDeferredSet(t *testing.T) {
	s := NewSequencer([]string{"fiambreria", "congelados"})

	assert.Equal(t, 2, s.Weight("Congelados"))
	assert.Equal(t, 0, s.Weight("Lacteos"))
}

func TestSortIdempotentAndPure(t *testing.T) {
	s := NewSequencer([]string{"fiambreria"})
	items := []models.OrderItem{
		{ProductName: "B", Category: "Bebidas"},
		{ProductName: "A", Category: "Almacen"},
		{ProductName: "C", Category: ""},
	}

	once := s.Sort(items)
	twice := s.Sort(once)

	assert.Equal(t, once, twice)
	assert.Equal(t, "B", items[0].ProductName, "input order must be preserved")
}

func TestSortStableForEqualKeys(t *testing.T) {
	s := NewSequencer(nil)
	items := []models.OrderItem{
		{ID: "1", ProductName: "Harina 000", Category: "Almacen", Quantity: 1},
		{ID: "2", ProductName: "Harina 000", Category: "Almacen", Quantity: 2},
	}

	sorted := s.Sort(items)

	assert.Equal(t, "1", sorted[0].ID)
	assert.Equal(t, "2", sorted[1].ID)
}

func TestSortCaseInsensitiveCategories(t *testing.T) {
	s := NewSequencer(nil)
	items := []models.OrderItem{
		{ProductName: "Z", Category: "bebidas"},
		{ProductName: "A", Category: "Bebidas"},
	}

	sorted := s.Sort(items)

	// Same category either way; product name breaks the tie.
	assert.Equal(t, "A", sorted[0].ProductName)
}

func TestDisplayCategory(t *testing.T) {
	assert.Equal(t, UncategorizedLabel, DisplayCategory(""))
	assert.Equal(t, UncategorizedLabel, DisplayCategory("  "))
	assert.Equal(t, "Lacteos", DisplayCategory("Lacteos"))
}
