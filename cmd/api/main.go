package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"go-dairy-admin/internal/config"
	"go-dairy-admin/internal/handler"
	"go-dairy-admin/internal/middleware"
	"go-dairy-admin/internal/repository"
	"go-dairy-admin/internal/repository/mongodb"
	"go-dairy-admin/internal/scheduler"
	"go-dairy-admin/internal/service"
	"go-dairy-admin/pkg/database"
	"go-dairy-admin/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	// 1. Load config
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.LogLevel))
	defer func() { _ = baseLogger.Sync() }()
	zap.ReplaceGlobals(baseLogger)

	// 2. Setup database
	db, err := database.ConnectDB(cfg, baseLogger)
	if err != nil {
		baseLogger.Fatal("failed to connect database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		baseLogger.Fatal("failed to migrate database", zap.Error(err))
	}

	// 3. Wiring layers
	clock := service.ClockIn(cfg.Location())

	productRepo := repository.NewProductRepo(db)
	stockRepo := repository.NewStockRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	purchaseRepo := repository.NewPurchaseRepo(db)
	movementRepo := repository.NewMovementRepo(db)

	catalogSvc := service.NewCatalogService(productRepo, stockRepo, db, baseLogger.Named("svc.catalog"))
	inventorySvc := service.NewInventoryService(productRepo, stockRepo, purchaseRepo, movementRepo, db, clock, baseLogger.Named("svc.inventory"))
	salesSvc := service.NewSalesService(productRepo, stockRepo, saleRepo, movementRepo, db, clock, baseLogger.Named("svc.sales"))
	dashboardSvc := service.NewDashboardService(productRepo, stockRepo, saleRepo, purchaseRepo, movementRepo, clock)

	// 4. Optional snapshot archive
	var archive mongodb.SnapshotRepository
	if cfg.MongoDB.URI != "" {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		archive = mongoRepo
	} else {
		baseLogger.Warn("MONGODB_URI not set, daily snapshots are only logged")
	}

	sched := scheduler.NewScheduler(*cfg, dashboardSvc, archive, baseLogger.Named("scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Dairy Admin v1.0",
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(middleware.RequestLogger(baseLogger.Named("http")))

	handler.SetupRoutes(app, handler.Handlers{
		Products:  handler.NewProductHandler(catalogSvc),
		Inventory: handler.NewInventoryHandler(inventorySvc),
		Sales:     handler.NewSalesHandler(salesSvc),
		Dashboard: handler.NewDashboardHandler(dashboardSvc),
	})

	// 6. Serve until a signal arrives or the listener fails
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
	if err := serve(app, ":"+cfg.Server.Port, quit, baseLogger); err != nil {
		baseLogger.Error("http server stopped", zap.Error(err))
	}
}

// serve runs the app until stop fires or Listen fails, then shuts it down.
// It returns instead of exiting so deferred cleanup in main still runs.
func serve(app *fiber.App, addr string, stop <-chan os.Signal, log *zap.Logger) error {
	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(addr)
	}()

	select {
	case err := <-listenErr:
		return err
	case sig := <-stop:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	}

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
