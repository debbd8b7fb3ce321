package auth

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/sind14/Gastronomy-Service/internal/auth/controller"
	"github.com/sind14/Gastronomy-Service/internal/auth/repository"
	"github.com/sind14/Gastronomy-Service/internal/auth/service"
	"github.com/sind14/Gastronomy-Service/internal/auth/token"
	"github.com/sind14/Gastronomy-Service/internal/config"
)

type Module struct {
	Controller *controller.AuthController
	Middleware *Middleware
}

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *Module {
	userRepo := repository.NewMySQLUserRepository(db)
	tokenSvc := token.NewService(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	authSvc := service.NewAuthService(userRepo, tokenSvc, logger)

	return &Module{
		Controller: controller.NewAuthController(authSvc, logger),
		Middleware: NewMiddleware(tokenSvc, logger),
	}
}
