package catalog

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/sind14/Gastronomy-Service/internal/catalog/controller"
	"github.com/sind14/Gastronomy-Service/internal/catalog/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.CatalogController {
	realizationTypeRepo := repository.NewMySQLRealizationTypeRepository(db)
	dishRepo := repository.NewMySQLDishRepository(db)
	inventoryRepo := repository.NewMySQLInventoryRepository(db)
	categoryRepo := repository.NewMySQLCategoryRepository(db)
	menuRepo := repository.NewMySQLMenuRepository(db)

	return controller.NewCatalogController(
		realizationTypeRepo,
		dishRepo,
		inventoryRepo,
		categoryRepo,
		menuRepo,
		logger,
	)
}
