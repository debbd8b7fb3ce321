package dto

import (
	"github.com/shopspring/decimal"

	"github.com/sind14/Gastronomy-Service/internal/domain"
)

type RealizationTypeRequest struct {
	Name string `json:"name"`
}

type RealizationTypeResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ItemRequest is the write shape shared by dishes and inventory items.
// Price may be null for items priced only as part of a menu.
type ItemRequest struct {
	Name  string           `json:"name"`
	Price *decimal.Decimal `json:"price"`
}

type ItemResponse struct {
	ID    uint             `json:"id"`
	Name  string           `json:"name"`
	Price *decimal.Decimal `json:"price"`
}

// CategoryRequest carries bare dish ids; the read shape embeds the dishes.
type CategoryRequest struct {
	Name    string `json:"name"`
	DishIDs []uint `json:"dishes"`
}

type CategoryResponse struct {
	ID     uint           `json:"id"`
	Name   string         `json:"name"`
	Dishes []ItemResponse `json:"dishes"`
}

type MenuRequest struct {
	Name        string           `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	CategoryIDs []uint           `json:"categories"`
}

type MenuResponse struct {
	ID         uint               `json:"id"`
	Name       string             `json:"name"`
	Price      *decimal.Decimal   `json:"price"`
	Categories []CategoryResponse `json:"categories"`
}

func NewRealizationTypeResponse(rt domain.RealizationType) RealizationTypeResponse {
	return RealizationTypeResponse{ID: rt.ID, Name: rt.Name}
}

func NewDishResponse(d domain.Dish) ItemResponse {
	return ItemResponse{ID: d.ID, Name: d.Name, Price: d.Price}
}

func NewInventoryResponse(inv domain.Inventory) ItemResponse {
	return ItemResponse{ID: inv.ID, Name: inv.Name, Price: inv.Price}
}

func NewCategoryResponse(c domain.Category) CategoryResponse {
	dishes := make([]ItemResponse, len(c.Dishes))
	for i, d := range c.Dishes {
		dishes[i] = NewDishResponse(d)
	}
	return CategoryResponse{ID: c.ID, Name: c.Name, Dishes: dishes}
}

func NewMenuResponse(m domain.Menu) MenuResponse {
	categories := make([]CategoryResponse, len(m.Categories))
	for i, c := range m.Categories {
		categories[i] = NewCategoryResponse(c)
	}
	return MenuResponse{ID: m.ID, Name: m.Name, Price: m.Price, Categories: categories}
}
