package archive

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/sind14/Gastronomy-Service/internal/archive/controller"
	"github.com/sind14/Gastronomy-Service/internal/archive/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.ArchiveController {
	archiveRepo := repository.NewMySQLArchiveRepository(db)
	itemRepo := repository.NewMySQLArchivedItemRepository(db)

	return controller.NewArchiveController(archiveRepo, itemRepo, logger)
}
