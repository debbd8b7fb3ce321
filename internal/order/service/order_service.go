package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sind14/Gastronomy-Service/internal/domain"
	"github.com/sind14/Gastronomy-Service/internal/dto"
	"github.com/sind14/Gastronomy-Service/internal/errors"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type OrderRepository interface {
	Insert(ctx context.Context, o domain.Order, dishIDs, inventoryIDs []uint) (*domain.Order, error)
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	Update(ctx context.Context, o domain.Order, dishIDs, inventoryIDs []uint) (*domain.Order, error)
	Delete(ctx context.Context, id uint) error
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint) (*domain.Order, error)
	DeleteTx(ctx context.Context, tx *sql.Tx, id uint) error
	ReplaceDishes(ctx context.Context, tx *sql.Tx, orderID uint, dishIDs []uint) error
}

type ArchiveRepository interface {
	InsertOrder(ctx context.Context, tx *sql.Tx, o domain.ArchivedOrder) (uint, error)
	GetOrCreateDish(ctx context.Context, tx *sql.Tx, name string, price decimal.Decimal) (uint, error)
	GetOrCreateInventory(ctx context.Context, tx *sql.Tx, name string, price decimal.Decimal) (uint, error)
	LinkDish(ctx context.Context, tx *sql.Tx, archivedOrderID, archivedDishID uint) error
	LinkInventory(ctx context.Context, tx *sql.Tx, archivedOrderID, archivedInventoryID uint) error
}

// OrderService owns the active-order lifecycle: CRUD over pending orders,
// dish selection, pricing and the terminal transition into the archive.
type OrderService struct {
	db          TransactionManager
	orderRepo   OrderRepository
	archiveRepo ArchiveRepository
	logger      *zap.Logger
	txTimeout   time.Duration
}

func NewOrderService(
	db TransactionManager,
	orderRepo OrderRepository,
	archiveRepo ArchiveRepository,
	logger *zap.Logger,
	txTimeout time.Duration,
) *OrderService {
	return &OrderService{
		db:          db,
		orderRepo:   orderRepo,
		archiveRepo: archiveRepo,
		logger:      logger,
		txTimeout:   txTimeout,
	}
}

// Create stores a new pending order. The creation timestamp is taken here,
// once, and passed down explicitly.
func (s *OrderService) Create(ctx context.Context, req dto.OrderRequest) (*domain.Order, error) {
	if err := validateOrderRequest(req); err != nil {
		return nil, err
	}

	order := orderFromRequest(req)
	order.CreatedAt = time.Now().UTC()
	order.Status = domain.OrderStatusPending
	order.TotalPrice = decimal.Zero

	created, err := s.orderRepo.Insert(ctx, order, req.DishIDs, req.InventoryIDs)
	if err != nil {
		return nil, err
	}

	s.logger.Info("order created", zap.Uint("orderId", created.ID), zap.Int("peopleCount", created.PeopleCount))
	return created, nil
}

func (s *OrderService) Get(ctx context.Context, id uint) (*domain.Order, error) {
	return s.orderRepo.FindByID(ctx, id)
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.orderRepo.FindAll(ctx)
}

func (s *OrderService) Update(ctx context.Context, id uint, req dto.OrderRequest) (*domain.Order, error) {
	if err := validateOrderRequest(req); err != nil {
		return nil, err
	}

	order := orderFromRequest(req)
	order.ID = id

	return s.orderRepo.Update(ctx, order, req.DishIDs, req.InventoryIDs)
}

func (s *OrderService) Delete(ctx context.Context, id uint) error {
	return s.orderRepo.Delete(ctx, id)
}

// SetSelectedDishes replaces the order's dish set with exactly the existing
// dishes among dishIDs. Unknown ids are filtered out silently; an empty
// list clears the selection.
func (s *OrderService) SetSelectedDishes(ctx context.Context, orderID uint, dishIDs []uint) (*domain.Order, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	if _, err := s.orderRepo.FindByIDForUpdate(txCtx, tx, orderID); err != nil {
		return nil, err
	}

	if err := s.orderRepo.ReplaceDishes(txCtx, tx, orderID, dishIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("order dishes replaced", zap.Uint("orderId", orderID), zap.Int("requestedCount", len(dishIDs)))
	return s.orderRepo.FindByID(ctx, orderID)
}

// CalculateTotalPrice prices the order. With a menu price the total is
// menuPrice times the people count; otherwise it is the sum of all linked
// item prices, and any unpriced item aborts the calculation.
func (s *OrderService) CalculateTotalPrice(ctx context.Context, orderID uint, menuPrice *decimal.Decimal) (decimal.Decimal, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return decimal.Zero, err
	}

	if menuPrice != nil {
		return order.MenuTotal(*menuPrice), nil
	}

	total, err := order.ItemsTotal()
	if err != nil {
		return decimal.Zero, errors.NewConflictError(err.Error())
	}
	return total, nil
}

// Complete archives the order with status completed and removes it.
func (s *OrderService) Complete(ctx context.Context, orderID uint) (*domain.ArchivedOrder, error) {
	return s.terminate(ctx, orderID, domain.OrderStatusCompleted, nil)
}

// Cancel archives the order with status cancelled, storing the reason.
func (s *OrderService) Cancel(ctx context.Context, orderID uint, reason string) (*domain.ArchivedOrder, error) {
	return s.terminate(ctx, orderID, domain.OrderStatusCancelled, &reason)
}

// terminate runs the whole archive workflow in one transaction: lock and
// load the order, price it, write the archived order, snapshot every item
// via atomic get-or-create, link the snapshots and delete the order. Any
// failure rolls everything back, leaving the order untouched and no
// partial archive behind. A concurrent terminate on the same order finds
// the row already gone and fails with not-found.
func (s *OrderService) terminate(ctx context.Context, orderID uint, status string, reason *string) (*domain.ArchivedOrder, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	order, err := s.orderRepo.FindByIDForUpdate(txCtx, tx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status != domain.OrderStatusPending {
		return nil, errors.NewConflictError("order is not pending")
	}

	total, err := order.ItemsTotal()
	if err != nil {
		s.logger.Warn("archive aborted, unpriced item", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, errors.NewConflictError(err.Error())
	}

	archived := domain.ArchivedOrder{
		OrderDate:       order.OrderDate,
		CreatedAt:       order.CreatedAt,
		PeopleCount:     order.PeopleCount,
		RealizationType: order.RealizationType,
		Address:         order.Address,
		Company:         order.Company,
		Client:          order.Client,
		Status:          status,
		CancelReason:    reason,
		TotalPrice:      total,
	}

	archivedID, err := s.archiveRepo.InsertOrder(txCtx, tx, archived)
	if err != nil {
		s.logger.Error("failed to insert archived order", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, err
	}
	archived.ID = archivedID

	for _, dish := range order.Dishes {
		snapshotID, err := s.archiveRepo.GetOrCreateDish(txCtx, tx, dish.Name, *dish.Price)
		if err != nil {
			return nil, err
		}
		if err := s.archiveRepo.LinkDish(txCtx, tx, archivedID, snapshotID); err != nil {
			return nil, err
		}
		archived.Dishes = append(archived.Dishes, domain.ArchivedDish{ID: snapshotID, Name: dish.Name, Price: *dish.Price})
	}

	for _, inv := range order.Inventories {
		snapshotID, err := s.archiveRepo.GetOrCreateInventory(txCtx, tx, inv.Name, *inv.Price)
		if err != nil {
			return nil, err
		}
		if err := s.archiveRepo.LinkInventory(txCtx, tx, archivedID, snapshotID); err != nil {
			return nil, err
		}
		archived.Inventories = append(archived.Inventories, domain.ArchivedInventory{ID: snapshotID, Name: inv.Name, Price: *inv.Price})
	}

	if err := s.orderRepo.DeleteTx(txCtx, tx, orderID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit archive transaction", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("order archived",
		zap.Uint("orderId", orderID),
		zap.Uint("archivedOrderId", archivedID),
		zap.String("status", status),
		zap.String("totalPrice", total.String()),
	)

	return &archived, nil
}

func validateOrderRequest(req dto.OrderRequest) error {
	var details []errors.ValidationDetail

	if req.PeopleCount < 1 {
		details = append(details, errors.ValidationDetail{
			Field:   "people_count",
			Message: "people_count must be a positive integer",
		})
	}

	if req.RealizationTypeID == 0 {
		details = append(details, errors.ValidationDetail{
			Field:   "realization_type",
			Message: "realization_type is required",
		})
	}

	if len(details) > 0 {
		return errors.NewValidationError("validation failed", details...)
	}

	return nil
}

func orderFromRequest(req dto.OrderRequest) domain.Order {
	order := domain.Order{
		OrderDate:       req.OrderDate,
		PeopleCount:     req.PeopleCount,
		RealizationType: domain.RealizationType{ID: req.RealizationTypeID},
	}

	if req.AddressID != nil {
		order.Address = &domain.Address{ID: *req.AddressID}
	}
	if req.CompanyID != nil {
		order.Company = &domain.Company{ID: *req.CompanyID}
	}
	if req.ClientID != nil {
		order.Client = &domain.Client{ID: *req.ClientID}
	}

	return order
}
