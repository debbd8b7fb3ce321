package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ArchivedDish is an immutable snapshot of a dish captured at archive time.
// Snapshots are deduplicated: every archived order whose dish had the same
// name and price shares one row.
type ArchivedDish struct {
	ID    uint
	Name  string
	Price decimal.Decimal
}

type ArchivedInventory struct {
	ID    uint
	Name  string
	Price decimal.Decimal
}

// ArchivedOrder is the permanent record created when an order completes or
// is cancelled. CreatedAt is copied verbatim from the order and TotalPrice
// is fixed forever.
type ArchivedOrder struct {
	ID              uint
	OrderDate       *time.Time
	CreatedAt       time.Time
	PeopleCount     int
	RealizationType RealizationType
	Address         *Address
	Company         *Company
	Client          *Client
	Dishes          []ArchivedDish
	Inventories     []ArchivedInventory
	Status          string
	CancelReason    *string
	TotalPrice      decimal.Decimal
}
