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

	appanalytics "github.com/jhoicas/pos-dashboard-api/internal/application/analytics"
	"github.com/jhoicas/pos-dashboard-api/internal/application/auth"
	"github.com/jhoicas/pos-dashboard-api/internal/infrastructure/cache"
	"github.com/jhoicas/pos-dashboard-api/internal/infrastructure/observability"
	infrapdf "github.com/jhoicas/pos-dashboard-api/internal/infrastructure/pdf"
	"github.com/jhoicas/pos-dashboard-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/pos-dashboard-api/internal/interfaces/http"
	"github.com/jhoicas/pos-dashboard-api/pkg/config"
	"github.com/jhoicas/pos-dashboard-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("timezone", cfg.App.Timezone).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, cfg.App.Name)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Snapshots del dashboard: Redis si está configurado (compartido entre réplicas), si no memoria.
	var snapshots appanalytics.SnapshotStore
	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedis(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		snapshots = cache.NewRedisSnapshotStore(rdb, cfg.Dashboard.SnapshotTTL)
		log.Info().Msg("snapshots del dashboard en Redis")
	} else {
		snapshots = cache.NewMemorySnapshotStore(cfg.Dashboard.SnapshotTTL)
		log.Warn().Msg("REDIS_URL vacío: snapshots del dashboard en memoria del proceso")
	}

	promMetrics := observability.NewMetrics()

	dashboardUC := appanalytics.NewDashboardUseCase(
		appanalytics.Repositories{
			Sales:          postgres.NewSaleRepository(pool),
			Warranties:     postgres.NewWarrantyRepository(pool),
			Credits:        postgres.NewCreditRepository(pool),
			PaymentRecords: postgres.NewPaymentRecordRepository(pool),
			Products:       postgres.NewProductRepository(pool),
			Clients:        postgres.NewClientRepository(pool),
		},
		snapshots,
		promMetrics,
		infrapdf.NewDashboardReportRenderer(),
		appanalytics.DashboardConfig{
			FetchTimeoutShort:      cfg.Dashboard.FetchTimeoutShort,
			FetchTimeoutLong:       cfg.Dashboard.FetchTimeoutLong,
			InternalClientKeywords: cfg.Dashboard.InternalClientKeywords,
			Location:               cfg.App.Location,
			StoreName:              cfg.Dashboard.StoreName,
		},
		log,
	)

	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// WriteTimeout cubre el refresco de "all" (FetchTimeoutLong) más el render del PDF.
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Dashboard.FetchTimeoutLong + 15*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.HTTP.SwaggerEnabled {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "POS Dashboard API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ServiceName:  cfg.App.Name,
		AuthUC:       authUC,
		DashboardUC:  dashboardUC,
		Metrics:      promMetrics,
		JWTSecret:    cfg.JWT.Secret,
		RateLimitMax: cfg.HTTP.RateLimitMax,
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
