package printdoc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onzacore/distri-api/internal/models"
	"github.com/onzacore/distri-api/internal/order"
)

func testOrder() models.Order {
	return models.Order{
		ID:         12,
		ClientName: "Almacén Don Pepe",
		Items: []models.OrderItem{
			{ID: "1", ProductID: 1, ProductName: "Queso Cremoso", Category: "Fiambreria", Quantity: 0.5, FrozenUnitPrice: 5200},
			{ID: "2", ProductID: 2, ProductName: "Harina 000", Category: "Almacen", Quantity: 2, FrozenUnitPrice: 950},
			{ID: "3", ProductID: 3, ProductName: "Misterioso", Category: "", Quantity: 1, FrozenUnitPrice: 100},
		},
	}
}

func TestBuildPriceSheetIsSequenced(t *testing.T) {
	seq := order.NewSequencer([]string{"fiambreria"})

	sheet := BuildPriceSheet("Mayorista Comestibles", testOrder(), seq)

	require.Len(t, sheet.Lines, 3)
	assert.Equal(t, "Harina 000", sheet.Lines[0].ProductName)
	assert.Equal(t, "Misterioso", sheet.Lines[1].ProductName)
	assert.Equal(t, "Queso Cremoso", sheet.Lines[2].ProductName)
	assert.Equal(t, 0.5*5200+2*950+100, sheet.Total)
}

func TestBuildAssemblySheetKeepsRawOrder(t *testing.T) {
	// The checklist keeps the persisted order on purpose; pickers follow the
	// client's sequence. Do not sort here.
	sheet := BuildAssemblySheet(testOrder())

	require.Len(t, sheet.Lines, 3)
	assert.Equal(t, "Queso Cremoso", sheet.Lines[0].ProductName)
	assert.Equal(t, "Harina 000", sheet.Lines[1].ProductName)
	assert.Equal(t, "Misterioso", sheet.Lines[2].ProductName)
}

func TestBuildPriceListGroupsByCategory(t *testing.T) {
	seq := order.NewSequencer([]string{"fiambreria"})
	products := []models.Product{
		{ID: 1, Name: "Queso Cremoso", Category: "Fiambreria", UnitPrice: 5200},
		{ID: 2, Name: "Harina 000", Category: "Almacen", UnitPrice: 950},
		{ID: 3, Name: "Aceite 900ml", Category: "Almacen", UnitPrice: 1800, Stock: "No"},
		{ID: 4, Name: "Misterioso", Category: "", UnitPrice: 100},
	}

	list := BuildPriceList("Mayorista Comestibles", products, seq, time.Now())

	require.Len(t, list.Groups, 3)
	assert.Equal(t, "Almacen", list.Groups[0].Category)
	assert.Equal(t, order.UncategorizedLabel, list.Groups[1].Category)
	assert.Equal(t, "Fiambreria", list.Groups[2].Category)

	almacen := list.Groups[0]
	require.Len(t, almacen.Entries, 2)
	assert.Equal(t, "Aceite 900ml", almacen.Entries[0].Name)
	assert.True(t, almacen.Entries[0].OutOfStock)
}

func TestRenderersProduceNonEmptyPDFs(t *testing.T) {
	seq := order.NewSequencer([]string{"fiambreria"})
	ord := testOrder()

	priceSheet, err := RenderPriceSheet(BuildPriceSheet("Mayorista Comestibles", ord, seq))
	require.NoError(t, err)
	assert.True(t, len(priceSheet) > 0)
	assert.Equal(t, "%PDF", string(priceSheet[:4]))

	assembly, err := RenderAssemblySheet(BuildAssemblySheet(ord))
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(assembly[:4]))
}
