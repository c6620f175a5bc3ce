package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jhoicas/labstock/internal/application/auth"
	"github.com/jhoicas/labstock/internal/application/inventory"
	"github.com/jhoicas/labstock/internal/application/usecase"
	"github.com/jhoicas/labstock/internal/domain/entity"
	"github.com/jhoicas/labstock/internal/infrastructure/metrics"
	"github.com/jhoicas/labstock/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Sessions    *session.Store
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	WarehouseUC *usecase.WarehouseUseCase
	UserUC      *usecase.UserUseCase
	StockUC     *inventory.StockUseCase
	MovementUC  *inventory.MovementUseCase
	AlertsUC    *inventory.AlertsUseCase
	ReportUC    *inventory.ReportUseCase
	Metrics     *metrics.Metrics
	Log         *logger.Logger
	JWTSecret   string
	ServiceName string
}

// Router registra páginas HTML, API JSON y rutas operativas.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))

	// Páginas HTML con sesión
	web := NewWebAuthHandler(deps.Sessions, deps.AuthUC, deps.WarehouseUC, deps.Metrics, deps.Log.Component("web"))
	app.Get("/", func(c *fiber.Ctx) error { return c.Redirect(WelcomePath, fiber.StatusFound) })
	app.Get(LoginPath, web.LoginPage)
	app.Post(LoginPath, web.Login)
	app.Post(LogoutPath, web.Logout)
	app.Get(WelcomePath, RequireLogin(deps.Sessions, deps.AuthUC, deps.Log.Component("auth_gate")), web.Welcome)

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Metrics)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	catalogWrite := RequireProfile(entity.ProfileAdmin, entity.ProfileManager)
	stockWrite := RequireProfile(entity.ProfileAdmin, entity.ProfileManager, entity.ProfileOperator)
	adminOnly := RequireProfile(entity.ProfileAdmin)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", catalogWrite, productHandler.Create)
	products.Put("/:id", catalogWrite, productHandler.Update)
	products.Delete("/:id", catalogWrite, productHandler.Delete)

	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Post("/", catalogWrite, warehouseHandler.Create)
	warehouses.Put("/:id", catalogWrite, warehouseHandler.Update)
	warehouses.Delete("/:id", catalogWrite, warehouseHandler.Delete)

	stocks := protected.Group("/stocks")
	stockHandler := NewStockHandler(deps.StockUC, deps.MovementUC)
	stocks.Get("/", stockHandler.List)
	stocks.Get("/:id", stockHandler.GetByID)
	stocks.Post("/", stockWrite, stockHandler.Create)
	stocks.Put("/:id", stockWrite, stockHandler.Update)
	stocks.Delete("/:id", stockWrite, stockHandler.Delete)
	stocks.Get("/:id/movements", stockHandler.ListMovements)
	stocks.Post("/:id/movements", stockWrite, stockHandler.RecordMovement)
	protected.Get("/movements/:id", stockHandler.GetMovement)

	alertsHandler := NewAlertsHandler(deps.AlertsUC, deps.ReportUC)
	alerts := protected.Group("/alerts")
	alerts.Get("/low-stock", alertsHandler.LowStock)
	alerts.Get("/expiring", alertsHandler.Expiring)
	alerts.Get("/critical", alertsHandler.Critical)
	protected.Get("/reports/stock.pdf", alertsHandler.StockReport)

	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id/warehouses", userHandler.SetWarehouses)
}
