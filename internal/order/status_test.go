package order

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/onzacore/distri-api/internal/models"
)

func TestStatusChoicesHidesRestrictedFromNonAdmin(t *testing.T) {
	admin := StatusChoices(models.RoleAdmin)
	warehouse := StatusChoices(models.RoleWarehouse)

	assert.Contains(t, admin, models.StatusInvoiced)
	assert.Contains(t, admin, models.StatusCancelled)
	assert.NotContains(t, warehouse, models.StatusInvoiced)
	assert.NotContains(t, warehouse, models.StatusCancelled)
	assert.Contains(t, warehouse, models.StatusDelivered)
}

func TestCanSetStatus(t *testing.T) {
	assert.True(t, CanSetStatus(models.RoleAdmin, models.StatusCancelled))
	assert.False(t, CanSetStatus(models.RoleWarehouse, models.StatusCancelled))
	assert.False(t, CanSetStatus(models.RoleSeller, models.StatusInvoiced))
	assert.True(t, CanSetStatus(models.RoleSeller, models.StatusSeen))
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(models.StatusPending))
	assert.True(t, ValidStatus(models.StatusArchived))
	assert.False(t, ValidStatus("enviado"))
}

func TestCanArchive(t *testing.T) {
	assert.True(t, CanArchive(models.StatusDelivered))
	assert.False(t, CanArchive(models.StatusArchived))
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "1.5", FormatQuantity(1.5))
	assert.Equal(t, "0.333", FormatQuantity(1.0/3.0))
	assert.Equal(t, "1234.50", FormatCurrency(1234.5))
}
