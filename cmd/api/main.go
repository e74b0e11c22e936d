package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appauth "github.com/bymretail/inventario-api/internal/application/auth"
	appinv "github.com/bymretail/inventario-api/internal/application/inventory"
	"github.com/bymretail/inventario-api/internal/domain/repository"
	"github.com/bymretail/inventario-api/internal/infrastructure/gsheet"
	"github.com/bymretail/inventario-api/internal/infrastructure/sqlite"
	"github.com/bymretail/inventario-api/internal/infrastructure/xlsx"
	httpiface "github.com/bymretail/inventario-api/internal/interfaces/http"
	"github.com/bymretail/inventario-api/pkg/config"
	"github.com/bymretail/inventario-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{}).Error().Err(err).Msg("Error cargando configuración")
		os.Exit(1)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})
	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Env).
		Str("backend", cfg.Storage.Backend).
		Msg("Iniciando API de inventario")

	invRepo, minRepo, movRepo, cleanup, err := buildStorage(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Error inicializando el backend de persistencia")
		os.Exit(1)
	}
	defer cleanup()

	// Casos de uso
	receiveUC := appinv.NewReceiveStockUseCase(invRepo, minRepo, movRepo, appinv.ConflictPolicy(cfg.App.MasterConflictPolicy))
	dispenseUC := appinv.NewDispenseStockUseCase(invRepo, minRepo, movRepo)
	cartUC := appinv.NewCartUseCase(invRepo, minRepo, dispenseUC)
	reportUC := appinv.NewReportUseCase(invRepo, minRepo, movRepo)
	authUC := appauth.NewAuthUseCase(appauth.Config{
		User:         cfg.Admin.User,
		PasswordHash: cfg.Admin.PasswordHash,
		JWTSecret:    cfg.JWT.Secret,
		ExpMinutes:   cfg.JWT.Expiration,
		Issuer:       cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "backend": cfg.Storage.Backend})
	})

	httpiface.SetupRoutes(app, httpiface.RouterDeps{
		Auth:      httpiface.NewAuthHandler(authUC),
		Inventory: httpiface.NewInventoryHandler(receiveUC, cartUC, reportUC),
		Reports: httpiface.NewReportHandler(reportUC, httpiface.AlertDefaults{
			CriticalDays:   cfg.Alerts.CriticalDays,
			WarningDays:    cfg.Alerts.WarningDays,
			PreventiveDays: cfg.Alerts.PreventiveDays,
		}),
		JWTSecret: cfg.JWT.Secret,
	})

	// Apagado limpio: se drena el servidor antes de cerrar el backend.
	done := make(chan struct{})
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("Apagando servidor...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(ctx); err != nil {
			log.Error().Err(err).Msg("Error durante el apagado")
		}
		close(done)
	}()

	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("Servidor HTTP escuchando")
	if err := app.Listen(cfg.HTTP.Addr()); err != nil {
		log.Error().Err(err).Msg("Error del servidor HTTP")
		os.Exit(1)
	}
	<-done
}

// buildStorage instancia el backend configurado. Los tres stores implementan
// los tres puertos; la función devuelve las tres vistas y un cierre.
func buildStorage(cfg *config.Config) (
	repository.InventoryRepository,
	repository.MinimumStockRepository,
	repository.MovementRepository,
	func(),
	error,
) {
	switch cfg.Storage.Backend {
	case config.BackendGSheet:
		store, err := gsheet.NewStore(context.Background(), cfg.Storage.SpreadsheetID, cfg.Storage.CredentialsFile)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		return store, store, store, func() {}, nil
	case config.BackendSQLite:
		store, err := sqlite.NewStore(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		return store, store, store, func() { _ = store.Close() }, nil
	default:
		store := xlsx.NewStore(cfg.Storage.XLSXDir)
		return store, store, store, func() {}, nil
	}
}
