package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sind14/Gastronomy-Service/internal/domain"
)

// OrderRequest is the write shape: party and catalog references are bare
// ids. CreatedAt, status and total price are not writable.
type OrderRequest struct {
	OrderDate         *time.Time `json:"order_date"`
	PeopleCount       int        `json:"people_count"`
	RealizationTypeID uint       `json:"realization_type"`
	AddressID         *uint      `json:"address"`
	CompanyID         *uint      `json:"company"`
	ClientID          *uint      `json:"client"`
	DishIDs           []uint     `json:"dishes"`
	InventoryIDs      []uint     `json:"inventories"`
}

// OrderResponse is the read shape: every reference is embedded in full.
type OrderResponse struct {
	ID              uint                    `json:"id"`
	OrderDate       *time.Time              `json:"order_date"`
	CreatedAt       time.Time               `json:"created_at"`
	PeopleCount     int                     `json:"people_count"`
	RealizationType RealizationTypeResponse `json:"realization_type"`
	Address         *AddressResponse        `json:"address"`
	Company         *CompanyResponse        `json:"company"`
	Client          *ClientResponse         `json:"client"`
	Dishes          []ItemResponse          `json:"dishes"`
	Inventories     []ItemResponse          `json:"inventories"`
	Status          string                  `json:"status"`
	CancelReason    *string                 `json:"cancel_reason"`
	TotalPrice      decimal.Decimal         `json:"total_price"`
}

type SetDishesRequest struct {
	DishIDs []uint `json:"dishes"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

type TotalPriceResponse struct {
	OrderID    uint            `json:"order_id"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

func NewOrderResponse(o domain.Order) OrderResponse {
	dishes := make([]ItemResponse, len(o.Dishes))
	for i, d := range o.Dishes {
		dishes[i] = NewDishResponse(d)
	}
	inventories := make([]ItemResponse, len(o.Inventories))
	for i, inv := range o.Inventories {
		inventories[i] = NewInventoryResponse(inv)
	}

	resp := OrderResponse{
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
