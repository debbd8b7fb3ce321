package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sind14/Gastronomy-Service/internal/archive"
	"github.com/sind14/Gastronomy-Service/internal/auth"
	"github.com/sind14/Gastronomy-Service/internal/catalog"
	"github.com/sind14/Gastronomy-Service/internal/commons"
	"github.com/sind14/Gastronomy-Service/internal/config"
	"github.com/sind14/Gastronomy-Service/internal/infrastructure/logger"
	"github.com/sind14/Gastronomy-Service/internal/infrastructure/mysql"
	"github.com/sind14/Gastronomy-Service/internal/order"
	"github.com/sind14/Gastronomy-Service/internal/party"
	"github.com/sind14/Gastronomy-Service/internal/server"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	if err := mysql.Bootstrap(db); err != nil {
		zapLogger.Fatal("bootstrapping schema", zap.Error(err))
	}

	catalogCtrl := catalog.NewModule(db, zapLogger)
	partyCtrl := party.NewModule(db, zapLogger)
	orderCtrl := order.NewModule(db, cfg, zapLogger)
	archiveCtrl := archive.NewModule(db, zapLogger)
	authModule := auth.NewModule(db, cfg, zapLogger)

	router := server.NewRouter(catalogCtrl, partyCtrl, orderCtrl, archiveCtrl, authModule, zapLogger)

	srv := server.New(cfg.Server, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}

// loadConfig prefers a yaml file when CONFIG_FILE is set and falls back
// to environment variables.
func loadConfig() (*config.Config, error) {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return commons.LoadConfig(path)
	}
	return config.Load()
}
