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
	"github.com/shopspring/decimal"

	"github.com/dasava11/santuario-api-sub002/internal/application/auth"
	"github.com/dasava11/santuario-api-sub002/internal/application/inventory"
	"github.com/dasava11/santuario-api-sub002/internal/application/reception"
	"github.com/dasava11/santuario-api-sub002/internal/application/reports"
	"github.com/dasava11/santuario-api-sub002/internal/application/usecase"
	infracache "github.com/dasava11/santuario-api-sub002/internal/infrastructure/cache"
	infrapdf "github.com/dasava11/santuario-api-sub002/internal/infrastructure/pdf"
	"github.com/dasava11/santuario-api-sub002/internal/infrastructure/postgres"
	httpRouter "github.com/dasava11/santuario-api-sub002/internal/interfaces/http"
	"github.com/dasava11/santuario-api-sub002/pkg/config"
	"github.com/dasava11/santuario-api-sub002/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(cfg.App.Env, cfg.App.LogLevel, cfg.App.Name)
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	receptionRepo := postgres.NewReceptionRepository(pool)
	providerRepo := postgres.NewProviderRepository(pool)
	reportsRepo := postgres.NewReportsRepository(pool)
	txRunner := postgres.NewTxRunner(pool, time.Duration(cfg.Inventory.LockTimeoutMs)*time.Millisecond)

	viewCache := infracache.NewViewCache()

	gateway := inventory.NewApplyMovementUseCase(txRunner, viewCache).
		WithMaxRetries(cfg.Inventory.MaxRetries)
	adjustUC := inventory.NewAdjustStockUseCase(gateway, productRepo, inventory.GuardrailConfig{
		MaxFactor:           decimal.NewFromInt(int64(cfg.Inventory.MaxStockFactor)),
		MinCeiling:          decimal.NewFromInt(int64(cfg.Inventory.MinStockCeiling)),
		CriticalChangePct:   decimal.NewFromInt(int64(cfg.Inventory.CriticalChangePct)),
		MinJustificationLen: cfg.Inventory.MinJustification,
	})

	voucherGenerator := infrapdf.NewMarotoVoucherGenerator()
	receptionUC := reception.NewUseCase(
		txRunner, receptionRepo, productRepo, providerRepo,
		gateway, viewCache, voucherGenerator,
	)

	reportsUC := reports.NewUseCase(reportsRepo, viewCache)
	productUC := usecase.NewProductUseCase(productRepo)
	providerUC := usecase.NewProviderUseCase(providerRepo)
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Santuario API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:    productUC,
		ProviderUC:   providerUC,
		Gateway:      gateway,
		AdjustUC:     adjustUC,
		ReceptionUC:  receptionUC,
		ReportsUC:    reportsUC,
		AuthUC:       authUC,
		MovementRepo: movementRepo,
		JWTSecret:    cfg.JWT.Secret,
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
