package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order is a mutable, in-progress order. A live order is always pending;
// completing or cancelling it replaces the row with an ArchivedOrder.
type Order struct {
	ID              uint
	OrderDate       *time.Time
	CreatedAt       time.Time
	PeopleCount     int
	RealizationType RealizationType
	Address         *Address
	Company         *Company
	Client          *Client
	Dishes          []Dish
	Inventories     []Inventory
	Status          string
	CancelReason    *string
	TotalPrice      decimal.Decimal
}

// UnpricedItemError reports a linked catalog item without a price during
// total calculation. Pricing rejects such orders instead of treating the
// missing price as zero.
type UnpricedItemError struct {
	Kind string
	Name string
}

func (e *UnpricedItemError) Error() string {
	return fmt.Sprintf("%s %q has no price", e.Kind, e.Name)
}

// ItemsTotal sums the prices of all linked dishes and inventory items.
func (o *Order) ItemsTotal() (decimal.Decimal, error) {
	total := decimal.Zero
	for _, d := range o.Dishes {
		if d.Price == nil {
			return decimal.Zero, &UnpricedItemError{Kind: "dish", Name: d.Name}
		}
		total = total.Add(*d.Price)
	}
	for _, inv := range o.Inventories {
		if inv.Price == nil {
			return decimal.Zero, &UnpricedItemError{Kind: "inventory item", Name: inv.Name}
		}
		total = total.Add(*inv.Price)
	}
	return total, nil
}

// MenuTotal prices the order from a menu: the menu price covers one person,
// so the total is the menu price times the people count. Linked items are
// ignored entirely.
func (o *Order) MenuTotal(menuPrice decimal.Decimal) decimal.Decimal {
	return menuPrice.Mul(decimal.NewFromInt(int64(o.PeopleCount)))
}
