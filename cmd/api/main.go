package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/Inventario-ledger/internal/infrastructure/remote"
	"github.com/jhoicas/Inventario-ledger/internal/infrastructure/sqlite"
	httpRouter "github.com/jhoicas/Inventario-ledger/internal/interfaces/http"
	"github.com/jhoicas/Inventario-ledger/pkg/config"
	"github.com/jhoicas/Inventario-ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db", cfg.DB.Path).
		Msg("iniciando aplicación")

	ctx := context.Background()

	store, err := sqlite.Open(cfg.DB.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento local")
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("crear esquema local")
	}

	productRepo := sqlite.NewProductRepository(store.DB())
	movementRepo := sqlite.NewMovementRepository(store.DB())
	txRunner := sqlite.NewTxRunner(store)

	var remoteClient *remote.Client
	var mirror ledger.Mirrorer
	if cfg.Remote.BaseURL != "" {
		remoteClient = remote.NewClient(cfg.Remote.BaseURL, cfg.Remote.Timeout())
		mirror = remoteClient
		log.Info().Str("remote", cfg.Remote.BaseURL).Msg("espejo remoto habilitado")
	} else {
		log.Warn().Msg("REMOTE_BASE_URL vacío: operando solo en modo local")
	}

	ledgerUC := ledger.New(txRunner, productRepo, movementRepo, mirror, log, cfg.Remote.Timeout())

	// Observador de resultados del espejo: advertencias no bloqueantes.
	go func() {
		for result := range ledgerUC.MirrorResults() {
			if result.Err != nil {
				log.Warn().
					Str("espejo_id", result.ID).
					Int64("producto_id", result.ProductID).
					Str("nombre", result.Name).
					Msg("producto pendiente de espejo remoto")
			}
		}
	}()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger: ledgerUC,
		Remote: remoteClient,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Fatal().Err(err).Msg("servidor HTTP")
		}
	}()
	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("escuchando")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando")
	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("shutdown HTTP")
	}
	if err := store.Close(); err != nil {
		log.Error().Err(err).Msg("cerrar almacenamiento local")
	}
}
