package domain

import "github.com/shopspring/decimal"

type RealizationType struct {
	ID   uint
	Name string
}

// Dish is a catalog item. Price may be nil for dishes that are only sold
// as part of a menu.
type Dish struct {
	ID    uint
	Name  string
	Price *decimal.Decimal
}

type Inventory struct {
	ID    uint
	Name  string
	Price *decimal.Decimal
}

type Category struct {
	ID     uint
	Name   string
	Dishes []Dish
}

type Menu struct {
	ID         uint
	Name       string
	Price      *decimal.Decimal
	Categories []Category
}
