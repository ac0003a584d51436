package order

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onzacore/distri-api/internal/models"
)

func sampleItems() []models.OrderItem {
	return []models.OrderItem{
		{ID: "101", ProductID: 1, ProductName: "Harina 000", Quantity: 2, FrozenUnitPrice: 1000},
		{ID: "102", ProductID: 2, ProductName: "Yerba 1kg", Quantity: 1.5, FrozenUnitPrice: 4000},
	}
}

func TestParseQuantity(t *testing.T) {
	assert.Equal(t, 1.5, ParseQuantity("1,5"))
	assert.Equal(t, 1.5, ParseQuantity("1.5"))
	assert.Equal(t, 0.0, ParseQuantity("abc"))
	assert.Equal(t, 0.0, ParseQuantity(""))
	assert.Equal(t, 0.25, ParseQuantity(" 0,25 "))
	assert.Equal(t, -1.0, ParseQuantity("-1"))
}

func TestSetQuantityByEitherIdentity(t *testing.T) {
	e := NewEditor(sampleItems())

	e.SetQuantity("101", "3")   // line id
	e.SetQuantity("2", "0,750") // product id

	items := e.Items()
	assert.Equal(t, 3.0, items[0].Quantity)
	assert.Equal(t, 0.75, items[1].Quantity)
}

func TestSetQuantityInvalidCoercesToZero(t *testing.T) {
	e := NewEditor(sampleItems())

	e.SetQuantity("101", "abc")

	// The line stays visible at 0 so the user can undo by re-entering.
	items := e.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 0.0, items[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	e := NewEditor(sampleItems())

	e.RemoveItem("1") // by product id

	items := e.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].ProductID)
}

func TestAddItemIdempotent(t *testing.T) {
	e := NewEditor(nil)
	p := models.Product{ID: 7, Name: "Queso Cremoso", Category: "Fiambreria", SKU: "QC-01", UnitPrice: 5200, Stock: "No"}

	assert.True(t, e.AddItem(p))
	assert.False(t, e.AddItem(p))

	items := e.Items()
	require.Len(t, items, 1)
	assert.True(t, strings.HasPrefix(items[0].ID, models.SyntheticIDPrefix))
	assert.False(t, items[0].Persisted())
	assert.Equal(t, 1.0, items[0].Quantity)
	assert.Equal(t, 5200.0, items[0].FrozenUnitPrice)
	assert.True(t, items[0].StockWarning)
	assert.Equal(t, "Fiambreria", items[0].Category)
	assert.Equal(t, "QC-01", items[0].SKU)
}

func TestComputeTotal(t *testing.T) {
	assert.Equal(t, 0.0, ComputeTotal(nil))

	a := []models.OrderItem{{Quantity: 2, FrozenUnitPrice: 1000}}
	b := []models.OrderItem{{Quantity: 1.5, FrozenUnitPrice: 4000}}

	assert.Equal(t, 2000.0, ComputeTotal(a))
	assert.Equal(t, ComputeTotal(a)+ComputeTotal(b), ComputeTotal(append(append([]models.OrderItem{}, a...), b...)))
}

func TestTotalUsesFrozenPrice(t *testing.T) {
	e := NewEditor(sampleItems())
	// 2*1000 + 1.5*4000
	assert.Equal(t, 8000.0, e.Total())
}

func TestPrepareForSaveDropsNonPositive(t *testing.T) {
	items := []models.OrderItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 0},
		{ProductID: 3, Quantity: -1},
	}

	payload := PrepareForSave(items)

	require.Len(t, payload, 1)
	assert.Equal(t, models.SaveItem{ProductID: 1, Quantity: 2}, payload[0])
}

func TestResetRestoresPersistedState(t *testing.T) {
	persisted := sampleItems()
	e := NewEditor(persisted)

	e.SetQuantity("101", "9")
	e.RemoveItem("102")
	e.AddItem(models.Product{ID: 7, Name: "Queso"})

	e.Reset()

	assert.Equal(t, persisted, e.Items())
}

func TestDanglingItemRemainsEditable(t *testing.T) {
	// Order references products 10 and 11; only 11 is still in the catalog.
	items := []models.OrderItem{
		{ID: "201", ProductID: 10, ProductName: "Descontinuado", Quantity: 1, FrozenUnitPrice: 300},
		{ID: "202", ProductID: 11, ProductName: "Yerba 1kg", Quantity: 2, FrozenUnitPrice: 4000},
	}
	catalog := []models.Product{{ID: 11, Name: "Yerba 1kg"}}

	issues := FindIntegrityIssues(items, catalog)
	require.Len(t, issues, 1)
	assert.Equal(t, int64(10), issues[0].ProductID)

	e := NewEditor(items)
	e.RemoveItem("201")

	payload := e.PrepareForSave()
	require.Len(t, payload, 1)
	assert.Equal(t, int64(11), payload[0].ProductID)
}
