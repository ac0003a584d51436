package order

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/onzacore/distri-api/internal/models"
)

func TestFindIntegrityIssues(t *testing.T) {
	catalog := []models.Product{
		{ID: 11, Name: "Yerba 1kg"},
		{ID: 12, Name: "Azúcar 1kg"},
	}
	items := []models.OrderItem{
		{ID: "1", ProductID: 10, ProductName: "Harina 000"},
		{ID: "2", ProductID: 11, ProductName: "Yerba 1kg"},
		{ID: "3", ProductID: 99, ProductName: "Aceite 900ml"},
	}

	issues := FindIntegrityIssues(items, catalog)

	assert.Len(t, issues, 2)
	assert.Equal(t, int64(10), issues[0].ProductID)
	assert.Equal(t, "Harina 000", issues[0].ProductName)
	assert.Equal(t, int64(99), issues[1].ProductID)
	assert.Contains(t, issues[0].Message, "Harina 000")
	assert.Contains(t, issues[0].Message, "ID: 10")
}

func TestFindIntegrityIssuesEmptyCatalog(t *testing.T) {
	items := []models.OrderItem{
		{ID: "1", ProductID: 1, ProductName: "A"},
		{ID: "2", ProductID: 2, ProductName: "B"},
	}

	issues := FindIntegrityIssues(items, nil)
	assert.Len(t, issues, 2)
}

func TestFindIntegrityIssuesEmptyItems(t *testing.T) {
	catalog := []models.Product{{ID: 1}}
	assert.Empty(t, FindIntegrityIssues(nil, catalog))
}

func TestFindIntegrityIssuesPure(t *testing.T) {
	catalog := []models.Product{{ID: 11}, {ID: 11}} // duplicate ids are fine
	items := []models.OrderItem{
		{ID: "1", ProductID: 10, ProductName: "Harina 000"},
		{ID: "2", ProductID: 11, ProductName: "Yerba 1kg"},
	}

	first := FindIntegrityIssues(items, catalog)
	second := FindIntegrityIssues(items, catalog)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(10), items[0].ProductID, "inputs must not be mutated")
	assert.Len(t, first, 1)
}
