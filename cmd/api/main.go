package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jcastro/almacen-api/internal/application/inventory"
	"github.com/jcastro/almacen-api/internal/application/report"
	"github.com/jcastro/almacen-api/internal/application/usecase"
	infrapdf "github.com/jcastro/almacen-api/internal/infrastructure/pdf"
	"github.com/jcastro/almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/jcastro/almacen-api/internal/interfaces/http"
	"github.com/jcastro/almacen-api/pkg/config"
	"github.com/jcastro/almacen-api/pkg/logger"
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
		Msg("iniciando aplicación")

	if cfg.Auth.APIKey == "" {
		log.Fatal().Msg("AUTH_API_KEY es requerido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewItemRepository(pool)
	movRepo := postgres.NewMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	journalUC := inventory.NewJournalUseCase(txRunner, itemRepo, movRepo)
	itemUC := usecase.NewItemUseCase(itemRepo, journalUC, log)

	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := report.NewMonthlyReportUseCase(itemRepo, movRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:    itemUC,
		JournalUC: journalUC,
		ReportUC:  reportUC,
		Auth:      cfg.Auth,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
