package scheduler

import (
	"context"
	"errors"
	"testing"

	"go-dairy-admin/internal/config"
	"go-dairy-admin/internal/report"
	"go-dairy-admin/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubDashboard struct {
	service.DashboardService
	snapshot *service.DailySnapshot
	err      error
}

func (s *stubDashboard) GetDailySnapshot() (*service.DailySnapshot, error) {
	return s.snapshot, s.err
}

type recordingArchive struct {
	saved []*service.DailySnapshot
	err   error
}

func (a *recordingArchive) SaveDailySnapshot(_ context.Context, snapshot *service.DailySnapshot) error {
	if a.err != nil {
		return a.err
	}
	a.saved = append(a.saved, snapshot)
	return nil
}

func testConfig(schedule string) config.Config {
	return config.Config{
		Reporting: config.ReportingConfig{CronSchedule: schedule, Timezone: "UTC"},
	}
}

func sampleSnapshot() *service.DailySnapshot {
	return &service.DailySnapshot{
		Date: "2026-10-16",
		Restock: []report.StockRow{
			{Name: "Paneer", Remaining: decimal.RequireFromString("7.5"), Status: report.StatusLowStock},
			{Name: "Curd", Remaining: decimal.Zero, Status: report.StatusOutOfStock},
		},
	}
}

func TestRunDailySnapshot(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	archive := &recordingArchive{}
	s := NewScheduler(testConfig("0 21 * * *"), &stubDashboard{snapshot: sampleSnapshot()}, archive, zap.New(core))

	require.NoError(t, s.RunDailySnapshot(context.Background()))
	require.Len(t, archive.saved, 1)
	assert.Equal(t, "2026-10-16", archive.saved[0].Date)

	warnings := logs.FilterMessage("product needs restock").All()
	require.Len(t, warnings, 2)
	assert.Equal(t, "Paneer", warnings[0].ContextMap()["product"])
	assert.Equal(t, "Out of Stock", warnings[1].ContextMap()["status"])
	assert.Equal(t, 1, logs.FilterMessage("daily snapshot archived").Len())
}

func TestRunDailySnapshot_WithoutArchive(t *testing.T) {
	s := NewScheduler(testConfig("0 21 * * *"), &stubDashboard{snapshot: sampleSnapshot()}, nil, nil)
	assert.NoError(t, s.RunDailySnapshot(context.Background()))
}

func TestRunDailySnapshot_Errors(t *testing.T) {
	boom := errors.New("boom")

	s := NewScheduler(testConfig("0 21 * * *"), &stubDashboard{err: boom}, &recordingArchive{}, nil)
	assert.ErrorIs(t, s.RunDailySnapshot(context.Background()), boom)

	s = NewScheduler(testConfig("0 21 * * *"), &stubDashboard{snapshot: sampleSnapshot()}, &recordingArchive{err: boom}, nil)
	assert.ErrorIs(t, s.RunDailySnapshot(context.Background()), boom)
}

func TestStart(t *testing.T) {
	s := NewScheduler(testConfig("not a schedule"), &stubDashboard{}, nil, nil)
	assert.Error(t, s.Start())

	s = NewScheduler(testConfig("0 21 * * *"), &stubDashboard{}, nil, nil)
	require.NoError(t, s.Start())
	assert.Len(t, s.cron.Entries(), 1)
	s.Stop()
}
