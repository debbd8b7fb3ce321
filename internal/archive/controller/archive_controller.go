package controller

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/sind14/Gastronomy-Service/internal/commons"
	"github.com/sind14/Gastronomy-Service/internal/domain"
	"github.com/sind14/Gastronomy-Service/internal/dto"
)

type ArchivedOrderRepository interface {
	FindOrderByID(ctx context.Context, id uint) (*domain.ArchivedOrder, error)
	FindAllOrders(ctx context.Context) ([]domain.ArchivedOrder, error)
}

type ArchivedItemRepository interface {
	FindDishByID(ctx context.Context, id uint) (*domain.ArchivedDish, error)
	FindAllDishes(ctx context.Context) ([]domain.ArchivedDish, error)
	FindInventoryByID(ctx context.Context, id uint) (*domain.ArchivedInventory, error)
	FindAllInventories(ctx context.Context) ([]domain.ArchivedInventory, error)
}

// ArchiveController exposes the archive read-only. Archived records are
// immutable snapshots; there are no write endpoints.
type ArchiveController struct {
	orders ArchivedOrderRepository
	items  ArchivedItemRepository
	logger *zap.Logger
}

func NewArchiveController(orders ArchivedOrderRepository, items ArchivedItemRepository, logger *zap.Logger) *ArchiveController {
	return &ArchiveController{orders: orders, items: items, logger: logger}
}

func (c *ArchiveController) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := c.orders.FindAllOrders(r.Context())
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	responses := make([]dto.ArchivedOrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = dto.NewArchivedOrderResponse(o)
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, responses)
}

func (c *ArchiveController) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	order, err := c.orders.FindOrderByID(r.Context(), id)
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, dto.NewArchivedOrderResponse(*order))
}

func (c *ArchiveController) ListDishes(w http.ResponseWriter, r *http.Request) {
	dishes, err := c.items.FindAllDishes(r.Context())
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	responses := make([]dto.ArchivedItemResponse, len(dishes))
	for i, d := range dishes {
		responses[i] = dto.NewArchivedDishResponse(d)
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, responses)
}

func (c *ArchiveController) GetDish(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	dish, err := c.items.FindDishByID(r.Context(), id)
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, dto.NewArchivedDishResponse(*dish))
}

func (c *ArchiveController) ListInventories(w http.ResponseWriter, r *http.Request) {
	inventories, err := c.items.FindAllInventories(r.Context())
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	responses := make([]dto.ArchivedItemResponse, len(inventories))
	for i, inv := range inventories {
		responses[i] = dto.NewArchivedInventoryResponse(inv)
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, responses)
}

func (c *ArchiveController) GetInventory(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	inv, err := c.items.FindInventoryByID(r.Context(), id)
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, dto.NewArchivedInventoryResponse(*inv))
}
