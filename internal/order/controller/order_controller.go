package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sind14/Gastronomy-Service/internal/commons"
	"github.com/sind14/Gastronomy-Service/internal/domain"
	"github.com/sind14/Gastronomy-Service/internal/dto"
	apperrors "github.com/sind14/Gastronomy-Service/internal/errors"
)

type OrderService interface {
	Create(ctx context.Context, req dto.OrderRequest) (*domain.Order, error)
	Get(ctx context.Context, id uint) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	Update(ctx context.Context, id uint, req dto.OrderRequest) (*domain.Order, error)
	Delete(ctx context.Context, id uint) error
	SetSelectedDishes(ctx context.Context, orderID uint, dishIDs []uint) (*domain.Order, error)
	CalculateTotalPrice(ctx context.Context, orderID uint, menuPrice *decimal.Decimal) (decimal.Decimal, error)
	Complete(ctx context.Context, orderID uint) (*domain.ArchivedOrder, error)
	Cancel(ctx context.Context, orderID uint, reason string) (*domain.ArchivedOrder, error)
}

// OrderController serves the active-order API: CRUD, dish selection,
// pricing and the complete/cancel transitions into the archive.
type OrderController struct {
	service OrderService
	logger  *zap.Logger
}

func NewOrderController(service OrderService, logger *zap.Logger) *OrderController {
	return &OrderController{service: service, logger: logger}
}

func (c *OrderController) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		commons.WriteValidationError(c.logger, w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return false
	}
	return true
}

func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.OrderRequest
	if !c.decode(w, r, &req) {
		return
	}

	order, err := c.service.Create(r.Context(), req)
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusCreated, dto.NewOrderResponse(*order))
}

func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	orders, err := c.service.List(r.Context())
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	responses := make([]dto.OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = dto.NewOrderResponse(o)
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, responses)
}

func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	order, err := c.service.Get(r.Context(), id)
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, dto.NewOrderResponse(*order))
}

func (c *OrderController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	var req dto.OrderRequest
	if !c.decode(w, r, &req) {
		return
	}

	order, err := c.service.Update(r.Context(), id, req)
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, dto.NewOrderResponse(*order))
}

func (c *OrderController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	if err := c.service.Delete(r.Context(), id); err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetDishes replaces the order's dish selection with the dishes from the
// request body that actually exist.
func (c *OrderController) SetDishes(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	var req dto.SetDishesRequest
	if !c.decode(w, r, &req) {
		return
	}

	order, err := c.service.SetSelectedDishes(r.Context(), id, req.DishIDs)
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, dto.NewOrderResponse(*order))
}

// TotalPrice prices the order. An optional menu_price query parameter
// switches the calculation to menu pricing.
func (c *OrderController) TotalPrice(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}

	var menuPrice *decimal.Decimal
	if raw := r.URL.Query().Get("menu_price"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil || price.IsNegative() {
			commons.WriteValidationError(c.logger, w, "invalid menu_price", apperrors.ValidationDetail{
				Field:   "menu_price",
				Message: "menu_price must be a non-negative decimal",
			})
			return
		}
		menuPrice = &price
	}

	total, err := c.service.CalculateTotalPrice(r.Context(), id, menuPrice)
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, dto.TotalPriceResponse{OrderID: id, TotalPrice: total})
}

func (c *OrderController) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}

	archived, err := c.service.Complete(r.Context(), id)
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, dto.NewArchivedOrderResponse(*archived))
}

func (c *OrderController) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	var req dto.CancelOrderRequest
	if !c.decode(w, r, &req) {
		return
	}
	if req.Reason == "" {
		commons.WriteValidationError(c.logger, w, "reason is required", apperrors.ValidationDetail{
			Field:   "reason",
			Message: "reason must not be empty",
		})
		return
	}

	archived, err := c.service.Cancel(r.Context(), id, req.Reason)
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, dto.NewArchivedOrderResponse(*archived))
}
