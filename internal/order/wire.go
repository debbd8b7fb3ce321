package order

import (
	"database/sql"

	"go.uber.org/zap"

	archiverepo "github.com/sind14/Gastronomy-Service/internal/archive/repository"
	"github.com/sind14/Gastronomy-Service/internal/config"
	"github.com/sind14/Gastronomy-Service/internal/order/controller"
	orderrepo "github.com/sind14/Gastronomy-Service/internal/order/repository"
	"github.com/sind14/Gastronomy-Service/internal/order/service"
)

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *controller.OrderController {
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	archiveRepo := archiverepo.NewMySQLArchiveRepository(db)

	orderSvc := service.NewOrderService(
		db,
		orderRepo,
		archiveRepo,
		logger,
		cfg.Order.ArchiveTxTimeout,
	)

	return controller.NewOrderController(orderSvc, logger)
}
