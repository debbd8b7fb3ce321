package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pricePtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestItemsTotal_SumsDishAndInventoryPrices(t *testing.T) {
	order := Order{
		Dishes: []Dish{
			{ID: 1, Name: "Soup", Price: pricePtr("5.00")},
			{ID: 2, Name: "Bread", Price: pricePtr("2.00")},
		},
		Inventories: []Inventory{
			{ID: 1, Name: "Napkins", Price: pricePtr("0.50")},
		},
	}

	total, err := order.ItemsTotal()

	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("7.50")), "got %s", total)
}

func TestItemsTotal_EmptyOrderIsZero(t *testing.T) {
	order := Order{}

	total, err := order.ItemsTotal()

	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestItemsTotal_UnpricedDishFails(t *testing.T) {
	order := Order{
		Dishes: []Dish{
			{ID: 1, Name: "Soup", Price: pricePtr("5.00")},
			{ID: 2, Name: "Special", Price: nil},
		},
	}

	_, err := order.ItemsTotal()

	require.Error(t, err)
	unpriced, ok := err.(*UnpricedItemError)
	require.True(t, ok)
	assert.Equal(t, "dish", unpriced.Kind)
	assert.Equal(t, "Special", unpriced.Name)
}

func TestItemsTotal_UnpricedInventoryFails(t *testing.T) {
	order := Order{
		Inventories: []Inventory{
			{ID: 1, Name: "Tablecloth", Price: nil},
		},
	}

	_, err := order.ItemsTotal()

	require.Error(t, err)
	unpriced, ok := err.(*UnpricedItemError)
	require.True(t, ok)
	assert.Equal(t, "inventory item", unpriced.Kind)
}

func TestMenuTotal_MultipliesByPeopleCount(t *testing.T) {
	order := Order{
		PeopleCount: 4,
		Dishes: []Dish{
			{ID: 1, Name: "Soup", Price: pricePtr("5.00")},
		},
	}

	total := order.MenuTotal(decimal.RequireFromString("12.50"))

	assert.True(t, total.Equal(decimal.RequireFromString("50.00")), "got %s", total)
}

func TestMenuTotal_IgnoresItemPrices(t *testing.T) {
	order := Order{
		PeopleCount: 2,
		Dishes: []Dish{
			{ID: 1, Name: "Special", Price: nil},
		},
	}

	total := order.MenuTotal(decimal.RequireFromString("10.00"))

	assert.True(t, total.Equal(decimal.RequireFromString("20.00")))
}

func TestIsValidDocumentType(t *testing.T) {
	for _, dt := range []string{DocumentTypeNationalID, DocumentTypePassport, DocumentTypeIDCard, DocumentTypeOther} {
		assert.True(t, IsValidDocumentType(dt), dt)
	}
	assert.False(t, IsValidDocumentType(""))
	assert.False(t, IsValidDocumentType("driver_license"))
}
