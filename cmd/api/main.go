package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"

	"github.com/jhoicas/inventario-movimientos/docs"
	appanalytics "github.com/jhoicas/inventario-movimientos/internal/application/analytics"
	"github.com/jhoicas/inventario-movimientos/internal/application/inventory"
	"github.com/jhoicas/inventario-movimientos/internal/application/ports"
	"github.com/jhoicas/inventario-movimientos/internal/application/usecase"
	infraexcel "github.com/jhoicas/inventario-movimientos/internal/infrastructure/excel"
	inframetrics "github.com/jhoicas/inventario-movimientos/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/inventario-movimientos/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-movimientos/internal/infrastructure/postgres"
	infraqr "github.com/jhoicas/inventario-movimientos/internal/infrastructure/qr"
	infraredis "github.com/jhoicas/inventario-movimientos/internal/infrastructure/redis"
	infrastorage "github.com/jhoicas/inventario-movimientos/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/inventario-movimientos/internal/interfaces/http"
	"github.com/jhoicas/inventario-movimientos/pkg/config"
	"github.com/jhoicas/inventario-movimientos/pkg/logger"
	"github.com/jhoicas/inventario-movimientos/pkg/migrate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	loc := cfg.App.Location()
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("timezone", loc.String()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate && cfg.App.IsDev() {
		db := stdlib.OpenDBFromPool(pool)
		if err := migrate.Up(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		_ = db.Close()
		log.Info().Msg("migraciones aplicadas")
	}

	// Métricas
	var ledgerMetrics *inframetrics.LedgerMetrics
	registry := prometheus.NewRegistry()
	if cfg.Metrics.Enabled {
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		ledgerMetrics = inframetrics.NewLedgerMetrics(registry)
	} else {
		ledgerMetrics = inframetrics.NewLedgerMetrics(nil)
	}

	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Imágenes y QR: sin endpoint de subida los productos se crean sin QR.
	var imageStorage ports.ImageStorage
	var qrGenerator ports.QRGenerator
	if cfg.Storage.Enabled() {
		uploader, err := infrastorage.NewUploader(cfg.Storage.UploadURL, cfg.Storage.UploadPreset)
		if err != nil {
			log.Fatal().Err(err).Msg("plataforma de imágenes")
		}
		imageStorage = uploader
		qrGenerator = infraqr.NewGenerator()
	} else {
		log.Warn().Msg("STORAGE_UPLOAD_URL vacío: imágenes y QR deshabilitados")
	}

	productUC := usecase.NewProductUseCase(productRepo, imageStorage, qrGenerator, usecase.ProductConfig{
		ProductFolder: cfg.Storage.ProductFolder,
		QRFolder:      cfg.Storage.QRFolder,
	}, log)
	userUC := usecase.NewUserUseCase(userRepo)
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, productRepo, ledgerMetrics, log)
	historyUC := inventory.NewHistoryUseCase(movementRepo, productRepo, loc)
	reconcileUC := inventory.NewReconcileUseCase(productRepo, movementRepo, ledgerMetrics, log)
	reportUC := inventory.NewReportUseCase(productRepo, movementRepo, loc,
		infraexcel.NewReportExporter(),
		infrapdf.NewMarotoReportGenerator(),
	)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, loc)

	// Idempotencia: opcional. Se asigna solo si Redis responde para no pasar un nil tipado.
	var idempotency httpRouter.IdempotencyStore
	if cfg.Redis.URL != "" {
		store, err := infraredis.New(ctx, cfg.Redis)
		if err != nil {
			log.Error().Err(err).Msg("Redis no disponible: POST de movimientos sin idempotencia")
		} else {
			defer store.Close()
			idempotency = store
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    6 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    docs.SwaggerInfo.Title,
		}))
	}
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return c.SendStatus(fiber.StatusNotFound)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(doc)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	if cfg.Metrics.Enabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:        productUC,
		UserUC:           userUC,
		RegisterMovement: registerMovementUC,
		History:          historyUC,
		Reconcile:        reconcileUC,
		Report:           reportUC,
		DashboardUC:      dashboardUC,
		Idempotency:      idempotency,
		IdempotencyTTL:   cfg.Redis.IdempotencyTTL,
		JWTSecret:        cfg.JWT.Secret,
		JWTIssuer:        cfg.JWT.Issuer,
		Logger:           log,
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
