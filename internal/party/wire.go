package party

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/sind14/Gastronomy-Service/internal/party/controller"
	"github.com/sind14/Gastronomy-Service/internal/party/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.PartyController {
	addressRepo := repository.NewMySQLAddressRepository(db)
	companyRepo := repository.NewMySQLCompanyRepository(db)
	clientRepo := repository.NewMySQLClientRepository(db)

	return controller.NewPartyController(addressRepo, companyRepo, clientRepo, logger)
}
