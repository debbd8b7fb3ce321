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

type RealizationTypeRepository interface {
	Insert(ctx context.Context, rt domain.RealizationType) (*domain.RealizationType, error)
	FindByID(ctx context.Context, id uint) (*domain.RealizationType, error)
	FindAll(ctx context.Context) ([]domain.RealizationType, error)
	Update(ctx context.Context, rt domain.RealizationType) error
	Delete(ctx context.Context, id uint) error
}

type DishRepository interface {
	Insert(ctx context.Context, d domain.Dish) (*domain.Dish, error)
	FindByID(ctx context.Context, id uint) (*domain.Dish, error)
	FindAll(ctx context.Context) ([]domain.Dish, error)
	Update(ctx context.Context, d domain.Dish) error
	Delete(ctx context.Context, id uint) error
}

type InventoryRepository interface {
	Insert(ctx context.Context, inv domain.Inventory) (*domain.Inventory, error)
	FindByID(ctx context.Context, id uint) (*domain.Inventory, error)
	FindAll(ctx context.Context) ([]domain.Inventory, error)
	Update(ctx context.Context, inv domain.Inventory) error
	Delete(ctx context.Context, id uint) error
}

type CategoryRepository interface {
	Insert(ctx context.Context, name string, dishIDs []uint) (*domain.Category, error)
	FindByID(ctx context.Context, id uint) (*domain.Category, error)
	FindAll(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, id uint, name string, dishIDs []uint) (*domain.Category, error)
	Delete(ctx context.Context, id uint) error
}

type MenuRepository interface {
	Insert(ctx context.Context, name string, price *decimal.Decimal, categoryIDs []uint) (*domain.Menu, error)
	FindByID(ctx context.Context, id uint) (*domain.Menu, error)
	FindAll(ctx context.Context) ([]domain.Menu, error)
	Update(ctx context.Context, id uint, name string, price *decimal.Decimal, categoryIDs []uint) (*domain.Menu, error)
	Delete(ctx context.Context, id uint) error
}

// CatalogController serves CRUD over the static reference data: dishes,
// inventory items, realization types, categories and menus.
type CatalogController struct {
	realizationTypes RealizationTypeRepository
	dishes           DishRepository
	inventories      InventoryRepository
	categories       CategoryRepository
	menus            MenuRepository
	logger           *zap.Logger
}

func NewCatalogController(
	realizationTypes RealizationTypeRepository,
	dishes DishRepository,
	inventories InventoryRepository,
	categories CategoryRepository,
	menus MenuRepository,
	logger *zap.Logger,
) *CatalogController {
	return &CatalogController{
		realizationTypes: realizationTypes,
		dishes:           dishes,
		inventories:      inventories,
		categories:       categories,
		menus:            menus,
		logger:           logger,
	}
}

func (c *CatalogController) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		commons.WriteValidationError(c.logger, w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return false
	}
	return true
}

func requireName(name string) error {
	if name == "" {
		return apperrors.NewValidationError("name is required", apperrors.ValidationDetail{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	return nil
}

// Realization types

func (c *CatalogController) CreateRealizationType(w http.ResponseWriter, r *http.Request) {
	var req dto.RealizationTypeRequest
	if !c.decode(w, r, &req) {
		return
	}
	if err := requireName(req.Name); err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}

	rt, err := c.realizationTypes.Insert(r.Context(), domain.RealizationType{Name: req.Name})
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusCreated, dto.NewRealizationTypeResponse(*rt))
}

func (c *CatalogController) ListRealizationTypes(w http.ResponseWriter, r *http.Request) {
	types, err := c.realizationTypes.FindAll(r.Context())
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	responses := make([]dto.RealizationTypeResponse, len(types))
	for i, rt := range types {
		responses[i] = dto.NewRealizationTypeResponse(rt)
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, responses)
}

func (c *CatalogController) GetRealizationType(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	rt, err := c.realizationTypes.FindByID(r.Context(), id)
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, dto.NewRealizationTypeResponse(*rt))
}

func (c *CatalogController) UpdateRealizationType(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	var req dto.RealizationTypeRequest
	if !c.decode(w, r, &req) {
		return
	}
	if err := requireName(req.Name); err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}

	if err := c.realizationTypes.Update(r.Context(), domain.RealizationType{ID: id, Name: req.Name}); err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	rt, err := c.realizationTypes.FindByID(r.Context(), id)
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, dto.NewRealizationTypeResponse(*rt))
}

func (c *CatalogController) DeleteRealizationType(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	if err := c.realizationTypes.Delete(r.Context(), id); err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Dishes

func (c *CatalogController) CreateDish(w http.ResponseWriter, r *http.Request) {
	var req dto.ItemRequest
	if !c.decode(w, r, &req) {
		return
	}
	if err := requireName(req.Name); err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}

	dish, err := c.dishes.Insert(r.Context(), domain.Dish{Name: req.Name, Price: req.Price})
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusCreated, dto.NewDishResponse(*dish))
}

func (c *CatalogController) ListDishes(w http.ResponseWriter, r *http.Request) {
	dishes, err := c.dishes.FindAll(r.Context())
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	responses := make([]dto.ItemResponse, len(dishes))
	for i, d := range dishes {
		responses[i] = dto.NewDishResponse(d)
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, responses)
}

func (c *CatalogController) GetDish(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	dish, err := c.dishes.FindByID(r.Context(), id)
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, dto.NewDishResponse(*dish))
}

func (c *CatalogController) UpdateDish(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	var req dto.ItemRequest
	if !c.decode(w, r, &req) {
		return
	}
	if err := requireName(req.Name); err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}

	if err := c.dishes.Update(r.Context(), domain.Dish{ID: id, Name: req.Name, Price: req.Price}); err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	dish, err := c.dishes.FindByID(r.Context(), id)
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, dto.NewDishResponse(*dish))
}

func (c *CatalogController) DeleteDish(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	if err := c.dishes.Delete(r.Context(), id); err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Inventory items

func (c *CatalogController) CreateInventory(w http.ResponseWriter, r *http.Request) {
	var req dto.ItemRequest
	if !c.decode(w, r, &req) {
		return
	}
	if err := requireName(req.Name); err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}

	inv, err := c.inventories.Insert(r.Context(), domain.Inventory{Name: req.Name, Price: req.Price})
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusCreated, dto.NewInventoryResponse(*inv))
}

func (c *CatalogController) ListInventories(w http.ResponseWriter, r *http.Request) {
	inventories, err := c.inventories.FindAll(r.Context())
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	responses := make([]dto.ItemResponse, len(inventories))
	for i, inv := range inventories {
		responses[i] = dto.NewInventoryResponse(inv)
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, responses)
}

func (c *CatalogController) GetInventory(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	inv, err := c.inventories.FindByID(r.Context(), id)
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, dto.NewInventoryResponse(*inv))
}

func (c *CatalogController) UpdateInventory(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	var req dto.ItemRequest
	if !c.decode(w, r, &req) {
		return
	}
	if err := requireName(req.Name); err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}

	if err := c.inventories.Update(r.Context(), domain.Inventory{ID: id, Name: req.Name, Price: req.Price}); err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	inv, err := c.inventories.FindByID(r.Context(), id)
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, dto.NewInventoryResponse(*inv))
}

func (c *CatalogController) DeleteInventory(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	if err := c.inventories.Delete(r.Context(), id); err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Categories

func (c *CatalogController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CategoryRequest
	if !c.decode(w, r, &req) {
		return
	}
	if err := requireName(req.Name); err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}

	category, err := c.categories.Insert(r.Context(), req.Name, req.DishIDs)
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusCreated, dto.NewCategoryResponse(*category))
}

func (c *CatalogController) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.categories.FindAll(r.Context())
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	responses := make([]dto.CategoryResponse, len(categories))
	for i, category := range categories {
		responses[i] = dto.NewCategoryResponse(category)
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, responses)
}

func (c *CatalogController) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	category, err := c.categories.FindByID(r.Context(), id)
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, dto.NewCategoryResponse(*category))
}

func (c *CatalogController) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	var req dto.CategoryRequest
	if !c.decode(w, r, &req) {
		return
	}
	if err := requireName(req.Name); err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}

	category, err := c.categories.Update(r.Context(), id, req.Name, req.DishIDs)
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, dto.NewCategoryResponse(*category))
}

func (c *CatalogController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	if err := c.categories.Delete(r.Context(), id); err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Menus

func (c *CatalogController) CreateMenu(w http.ResponseWriter, r *http.Request) {
	var req dto.MenuRequest
	if !c.decode(w, r, &req) {
		return
	}
	if err := requireName(req.Name); err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}

	menu, err := c.menus.Insert(r.Context(), req.Name, req.Price, req.CategoryIDs)
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusCreated, dto.NewMenuResponse(*menu))
}

func (c *CatalogController) ListMenus(w http.ResponseWriter, r *http.Request) {
	menus, err := c.menus.FindAll(r.Context())
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	responses := make([]dto.MenuResponse, len(menus))
	for i, menu := range menus {
		responses[i] = dto.NewMenuResponse(menu)
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, responses)
}

func (c *CatalogController) GetMenu(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	menu, err := c.menus.FindByID(r.Context(), id)
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, dto.NewMenuResponse(*menu))
}

func (c *CatalogController) UpdateMenu(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	var req dto.MenuRequest
	if !c.decode(w, r, &req) {
		return
	}
	if err := requireName(req.Name); err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}

	menu, err := c.menus.Update(r.Context(), id, req.Name, req.Price, req.CategoryIDs)
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, dto.NewMenuResponse(*menu))
}

func (c *CatalogController) DeleteMenu(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	if err := c.menus.Delete(r.Context(), id); err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
