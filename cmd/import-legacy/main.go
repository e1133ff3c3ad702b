package main

import (
	"context"
	"flag"
	"time"
	_ "time/tzdata"

	"go-dairy-admin/internal/config"
	"go-dairy-admin/internal/legacy"
	"go-dairy-admin/internal/service"
	client "go-dairy-admin/pkg/clients/legacy"
	"go-dairy-admin/pkg/database"
	"go-dairy-admin/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	baseURL := flag.String("url", "", "legacy json-server base URL (defaults to LEGACY_API_URL)")
	operator := flag.String("operator", "legacy-import", "operator recorded on imported rows")
	flag.Parse()

	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}
	if *baseURL != "" {
		cfg.Legacy.BaseURL = *baseURL
	}

	log := logger.Must(logger.New(cfg.LogLevel))
	defer func() { _ = log.Sync() }()

	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	importer := legacy.NewImporter(client.NewClient(cfg.Legacy), db, service.ClockIn(cfg.Location()), log.Named("import"))
	result, err := importer.Run(ctx, *operator)
	if err != nil {
		log.Fatal("legacy import failed", zap.String("url", cfg.Legacy.BaseURL), zap.Error(err))
	}

	log.Info("legacy data imported", zap.String("url", cfg.Legacy.BaseURL), zap.Any("result", result))
}
