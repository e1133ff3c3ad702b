package database

import (
	"fmt"
	"time"

	"go-dairy-admin/internal/config"
	"go-dairy-admin/internal/model"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDB opens the database described by cfg and routes gorm's
// logging through zap.
func ConnectDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Database.Driver == config.DriverSQLite {
		db, err := OpenSQLite(cfg.Database.Path, log)
		if err != nil {
			return nil, err
		}
		log.Info("database connection established", zap.String("driver", "sqlite"), zap.String("path", cfg.Database.Path))
		return db, nil
	}

	dsn := cfg.Database.DSN(cfg.Reporting.Timezone)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // works behind transaction-mode poolers
	}), &gorm.Config{
		Logger:      NewGormLogger(log, logger.Warn),
		PrepareStmt: false,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info("database connection established", zap.String("driver", "postgres"))
	return db, nil
}

// NewGormLogger adapts a zap logger to gorm's logger interface.
func NewGormLogger(log *zap.Logger, level logger.LogLevel) logger.Interface {
	if log == nil {
		log = zap.NewNop()
	}
	return logger.New(
		zap.NewStdLog(log.Named("gorm")),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// Migrate creates or updates every table the application owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Product{},
		&model.StockRecord{},
		&model.Sale{},
		&model.SaleLineItem{},
		&model.PurchaseRecord{},
		&model.StockMovement{},
	)
}
