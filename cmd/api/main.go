package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labstock/internal/application/auth"
	"github.com/jhoicas/labstock/internal/application/inventory"
	"github.com/jhoicas/labstock/internal/application/usecase"
	"github.com/jhoicas/labstock/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/labstock/internal/infrastructure/pdf"
	"github.com/jhoicas/labstock/internal/infrastructure/postgres"
	infrasession "github.com/jhoicas/labstock/internal/infrastructure/session"
	httpRouter "github.com/jhoicas/labstock/internal/interfaces/http"
	"github.com/jhoicas/labstock/migrations"
	"github.com/jhoicas/labstock/pkg/config"
	"github.com/jhoicas/labstock/pkg/logger"

	_ "github.com/jhoicas/labstock/docs"
)

// @title           LabStock API
// @version         1.0
// @description     Inventario de laboratorio: productos, bodegas, stocks y movimientos.
// @BasePath        /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("session_storage", cfg.Session.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, migrations.FS); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(productRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	userUC := usecase.NewUserUseCase(userRepo, txRunner)
	stockUC := inventory.NewStockUseCase(txRunner, stockRepo, productRepo, warehouseRepo)
	movementUC := inventory.NewMovementUseCase(movementRepo, stockRepo)
	alertsUC := inventory.NewAlertsUseCase(stockRepo, productRepo)

	// PDF: reporte de stock por bodega
	reportUC := inventory.NewReportUseCase(stockRepo, productRepo, warehouseRepo, infrapdf.NewMarotoPDFGenerator(cfg.App.Name))

	// Sesiones del navegador: memoria del proceso o Redis (compartidas entre réplicas)
	var storage fiber.Storage
	if cfg.Session.Storage == config.SessionStorageRedis {
		rdb, err := infrasession.NewRedisClient(ctx, cfg.Session.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		redisStorage := infrasession.NewRedisStorage(rdb, cfg.Session.RedisPrefix)
		defer redisStorage.Close()
		storage = redisStorage
	}
	sessions := infrasession.NewStore(cfg.Session, storage)

	appMetrics := metrics.New("labstock", log.Component("metrics"))

	// Swagger UI en local: http://localhost:<port>/docs
	docsUI := swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "LabStock API",
	})

	app := httpRouter.NewServer(httpRouter.RouterDeps{
		Sessions:    sessions,
		AuthUC:      authUC,
		ProductUC:   productUC,
		WarehouseUC: warehouseUC,
		UserUC:      userUC,
		StockUC:     stockUC,
		MovementUC:  movementUC,
		AlertsUC:    alertsUC,
		ReportUC:    reportUC,
		Metrics:     appMetrics,
		Log:         log,
		JWTSecret:   cfg.JWT.Secret,
		ServiceName: cfg.App.Name,
	}, docsUI)

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
