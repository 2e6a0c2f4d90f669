package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dasava11/santuario-api-sub002/internal/application/auth"
	"github.com/dasava11/santuario-api-sub002/internal/application/inventory"
	"github.com/dasava11/santuario-api-sub002/internal/application/reception"
	"github.com/dasava11/santuario-api-sub002/internal/application/reports"
	"github.com/dasava11/santuario-api-sub002/internal/application/usecase"
	"github.com/dasava11/santuario-api-sub002/internal/domain/entity"
	"github.com/dasava11/santuario-api-sub002/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC    *usecase.ProductUseCase
	ProviderUC   *usecase.ProviderUseCase
	Gateway      *inventory.ApplyMovementUseCase
	AdjustUC     *inventory.AdjustStockUseCase
	ReceptionUC  *reception.UseCase
	ReportsUC    *reports.UseCase
	AuthUC       *auth.UseCase
	MovementRepo repository.StockMovementRepository
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Productos (protegido, solo lectura)
	products := protected.Group("/productos")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Proveedores (protegido, solo lectura)
	providers := protected.Group("/proveedores")
	providerHandler := NewProviderHandler(deps.ProviderUC)
	providers.Get("/", providerHandler.List)
	providers.Get("/:id", providerHandler.GetByID)

	// Inventario: gateway de movimientos, ajustes y vistas (protegido)
	invGroup := protected.Group("/inventario")
	inventoryHandler := NewInventoryHandler(deps.Gateway, deps.AdjustUC, deps.MovementRepo)
	reportsHandler := NewReportsHandler(deps.ReportsUC)
	invGroup.Post("/movimientos", inventoryHandler.ApplyMovement)
	invGroup.Get("/movimientos/:productoId", inventoryHandler.ListMovements)
	// Los ajustes manuales son de personal de bodega o administración
	invGroup.Post("/ajustes", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), inventoryHandler.AdjustStock)
	invGroup.Get("/stock-bajo", reportsHandler.GetLowStock)
	invGroup.Get("/valor", reportsHandler.GetInventoryValue)
	invGroup.Get("/estadisticas", reportsHandler.GetMovementStats)

	// Recepciones (protegido)
	receptions := protected.Group("/recepciones")
	receptionHandler := NewReceptionHandler(deps.ReceptionUC)
	receptions.Post("/", receptionHandler.Create)
	receptions.Get("/", receptionHandler.List)
	receptions.Get("/:id", receptionHandler.GetByID)
	receptions.Put("/:id", receptionHandler.Update)
	receptions.Post("/:id/procesar", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), receptionHandler.Process)
	receptions.Post("/:id/cancelar", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), receptionHandler.Cancel)
	receptions.Get("/:id/pdf", receptionHandler.Voucher)
}
