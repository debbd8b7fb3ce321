package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sind14/Gastronomy-Service/internal/domain"
)

type ArchivedItemResponse struct {
	ID    uint            `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type ArchivedOrderResponse struct {
	ID              uint                    `json:"id"`
	OrderDate       *time.Time              `json:"order_date"`
	CreatedAt       time.Time               `json:"created_at"`
	PeopleCount     int                     `json:"people_count"`
	RealizationType RealizationTypeResponse `json:"realization_type"`
	Address         *AddressResponse        `json:"address"`
	Company         *CompanyResponse        `json:"company"`
	Client          *ClientResponse         `json:"client"`
	Dishes          []ArchivedItemResponse  `json:"dishes"`
	Inventories     []ArchivedItemResponse  `json:"inventories"`
	Status          string                  `json:"status"`
	CancelReason    *string                 `json:"cancel_reason"`
	TotalPrice      decimal.Decimal         `json:"total_price"`
}

func NewArchivedDishResponse(d domain.ArchivedDish) ArchivedItemResponse {
	return ArchivedItemResponse{ID: d.ID, Name: d.Name, Price: d.Price}
}

func NewArchivedInventoryResponse(inv domain.ArchivedInventory) ArchivedItemResponse {
	return ArchivedItemResponse{ID: inv.ID, Name: inv.Name, Price: inv.Price}
}

func NewArchivedOrderResponse(o domain.ArchivedOrder) ArchivedOrderResponse {
	dishes := make([]ArchivedItemResponse, len(o.Dishes))
	for i, d := range o.Dishes {
		dishes[i] = NewArchivedDishResponse(d)
	}
	inventories := make([]ArchivedItemResponse, len(o.Inventories))
	for i, inv := range o.Inventories {
		inventories[i] = NewArchivedInventoryResponse(inv)
	}

	resp := ArchivedOrderResponse{
		ID:              o.ID,
		OrderDate:       o.OrderDate,
		CreatedAt:       o.CreatedAt,
		PeopleCount:     o.PeopleCount,
		RealizationType: NewRealizationTypeResponse(o.RealizationType),
		Dishes:          dishes,
		Inventories:     inventories,
		Status:          o.Status,
		CancelReason:    o.CancelReason,
		TotalPrice:      o.TotalPrice,
	}

	if o.Address != nil {
		addr := NewAddressResponse(*o.Address)
		resp.Address = &addr
	}
	if o.Company != nil {
		company := NewCompanyResponse(*o.Company)
		resp.Company = &company
	}
	if o.Client != nil {
		client := NewClientResponse(*o.Client)
		resp.Client = &client
	}

	return resp
}
