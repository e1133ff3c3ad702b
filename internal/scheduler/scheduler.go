package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"go-dairy-admin/internal/config"
	"go-dairy-admin/internal/repository/mongodb"
	"go-dairy-admin/internal/service"
)

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron         *cron.Cron
	dashboardSvc service.DashboardService
	archive      mongodb.SnapshotRepository
	cfg          config.Config
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance. archive may be nil, in
// which case snapshots are only logged.
func NewScheduler(cfg config.Config, dashboardSvc service.DashboardService, archive mongodb.SnapshotRepository, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:         cron.New(cron.WithLocation(cfg.Location())),
		dashboardSvc: dashboardSvc,
		archive:      archive,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers the daily snapshot and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Reporting.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.Reporting.CronSchedule, s.takeDailySnapshot); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) takeDailySnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.RunDailySnapshot(ctx); err != nil {
		s.logger.Error("daily snapshot failed", zap.Error(err))
	}
}

// RunDailySnapshot computes today's snapshot, warns about every product that
// needs restocking and archives the snapshot when an archive is configured.
func (s *Scheduler) RunDailySnapshot(ctx context.Context) error {
	s.logger.Info("generating daily snapshot")

	snapshot, err := s.dashboardSvc.GetDailySnapshot()
	if err != nil {
		return err
	}

	for _, row := range snapshot.Restock {
		s.logger.Warn("product needs restock",
			zap.String("product", row.Name),
			zap.String("remaining", row.Remaining.String()),
			zap.String("status", string(row.Status)))
	}

	s.logger.Info("daily snapshot ready",
		zap.String("date", snapshot.Date),
		zap.Int("orders", snapshot.Today.Orders),
		zap.String("revenue", snapshot.Today.Revenue.String()),
		zap.Int("restock", len(snapshot.Restock)))

	if s.archive == nil {
		return nil
	}
	if err := s.archive.SaveDailySnapshot(ctx, snapshot); err != nil {
		return err
	}
	s.logger.Info("daily snapshot archived", zap.String("date", snapshot.Date))
	return nil
}
