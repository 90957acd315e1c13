package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/inventario-movimientos/internal/application/analytics"
	"github.com/jhoicas/inventario-movimientos/internal/application/inventory"
	"github.com/jhoicas/inventario-movimientos/internal/application/usecase"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC        *usecase.ProductUseCase
	UserUC           *usecase.UserUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	History          *inventory.HistoryUseCase
	Reconcile        *inventory.ReconcileUseCase
	Report           *inventory.ReportUseCase
	DashboardUC      *appanalytics.DashboardUseCase

	// Idempotency es opcional: nil deja el POST de movimientos sin protección de reintentos.
	Idempotency    IdempotencyStore
	IdempotencyTTL time.Duration

	JWTSecret string
	JWTIssuer string
	Logger    *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Todas las rutas /api requieren Bearer Token
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Inventory movements
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.History, deps.Reconcile)
	invGroup.Post("/movements", Idempotency(deps.Idempotency, deps.IdempotencyTTL, deps.Logger), inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.History)
	invGroup.Get("/movements/recent", inventoryHandler.Recent)
	invGroup.Get("/products/:id/reconcile", adminOnly, inventoryHandler.Reconcile)

	// Reports
	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.Report)
	reports.Get("/inventory", reportHandler.Inventory)
	reports.Get("/inventory/export", reportHandler.Export)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/summary", dashboardHandler.GetSummary)

	// Products: lectura para todos, escritura solo admin
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)
	products.Post("/:id/image", adminOnly, productHandler.UploadImage)

	// Users (admin)
	users := api.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Put("/:id/role", userHandler.UpdateRole)
}
