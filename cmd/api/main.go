package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appinv "github.com/jhoicas/tienda-stock-api/internal/application/inventory"
	"github.com/jhoicas/tienda-stock-api/internal/application/usecase"
	"github.com/jhoicas/tienda-stock-api/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/tienda-stock-api/internal/infrastructure/pdf"
	"github.com/jhoicas/tienda-stock-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/tienda-stock-api/internal/interfaces/http"
	"github.com/jhoicas/tienda-stock-api/pkg/config"
	"github.com/jhoicas/tienda-stock-api/pkg/logger"
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	variantRepo := postgres.NewVariantRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	sizeRepo := postgres.NewSizeRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	confirmations := appinv.NewConfirmationStore(time.Duration(cfg.Inv.ConfirmTTLMinutes) * time.Minute)
	engine := appinv.NewApplyMovementUseCase(txRunner, productRepo, variantRepo, confirmations)
	replaceVariantsUC := appinv.NewReplaceVariantsUseCase(txRunner, variantRepo, sizeRepo)
	productUC := usecase.NewProductUseCase(productRepo, variantRepo, replaceVariantsUC, log)

	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := usecase.NewReportUseCase(movementRepo, productRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Tienda Stock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:       productUC,
		ReplaceVariants: replaceVariantsUC,
		Engine:          engine,
		ReportUC:        reportUC,
		SizeRepo:        sizeRepo,
		CSVDelimiter:    export.ParseDelimiter(cfg.Inv.CSVDelimiter),
		JWTSecret:       cfg.JWT.Secret,
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
