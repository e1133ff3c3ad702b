package main

import (
	"flag"
	_ "time/tzdata"

	"go-dairy-admin/internal/config"
	"go-dairy-admin/internal/repository"
	"go-dairy-admin/internal/service"
	"go-dairy-admin/pkg/database"
	"go-dairy-admin/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	operator := flag.String("operator", "recompute-stock", "operator recorded on corrected rows")
	flag.Parse()

	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	log := logger.Must(logger.New(cfg.LogLevel))
	defer func() { _ = log.Sync() }()

	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}

	inventorySvc := service.NewInventoryService(
		repository.NewProductRepo(db),
		repository.NewStockRepo(db),
		repository.NewPurchaseRepo(db),
		repository.NewMovementRepo(db),
		db,
		service.ClockIn(cfg.Location()),
		log.Named("svc.inventory"),
	)

	corrections, err := inventorySvc.RecomputeStock(*operator)
	if err != nil {
		log.Fatal("failed to recompute stock", zap.Error(err))
	}

	if len(corrections) == 0 {
		log.Info("all stock records already consistent")
		return
	}
	log.Info("stock records corrected", zap.Int("count", len(corrections)))
}
