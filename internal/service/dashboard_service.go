package service

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"go-dairy-admin/internal/report"
	"go-dairy-admin/internal/repository"
)

// DefaultMovementDays is the stock movement window when none is requested.
const DefaultMovementDays = 7

const maxMovementDays = 366

type DashboardService interface {
	GetOverview() (*DashboardOverview, error)
	GetTopSelling() ([]report.TopSellingEntry, error)
	GetSalesSeries(timeframe string) (*report.Series, error)
	GetStockMovement(days int) ([]report.MovementPoint, error)
	GetFinancialSummary(rangeKey string) (*report.FinancialSummary, error)
	GetDailySnapshot() (*DailySnapshot, error)
}

// DashboardOverview pairs the stock cards with today's takings.
type DashboardOverview struct {
	Stock report.Overview         `json:"stock"`
	Today report.FinancialSummary `json:"today"`
}

// DailySnapshot is what the end-of-day job archives.
type DailySnapshot struct {
	Date    string                  `json:"date"`
	TakenAt time.Time               `json:"taken_at"`
	Stock   report.Overview         `json:"stock"`
	Today   report.FinancialSummary `json:"today"`
	Restock []report.StockRow       `json:"restock"`
}

type dashboardService struct {
	productRepo  repository.ProductRepository
	stockRepo    repository.StockRepository
	saleRepo     repository.SaleRepository
	purchaseRepo repository.PurchaseRepository
	movementRepo repository.MovementRepository
	clock        Clock
}

func NewDashboardService(
	pRepo repository.ProductRepository,
	sRepo repository.StockRepository,
	saleRepo repository.SaleRepository,
	purRepo repository.PurchaseRepository,
	mRepo repository.MovementRepository,
	clock Clock,
) DashboardService {
	return &dashboardService{
		productRepo:  pRepo,
		stockRepo:    sRepo,
		saleRepo:     saleRepo,
		purchaseRepo: purRepo,
		movementRepo: mRepo,
		clock:        clock,
	}
}

func (s *dashboardService) stockOverview() (report.Overview, []report.StockRow, error) {
	stock, err := s.stockRepo.FindAll()
	if err != nil {
		return report.Overview{}, nil, err
	}
	products, err := s.productRepo.FindAll()
	if err != nil {
		return report.Overview{}, nil, err
	}
	return report.ComputeOverview(stock, products), report.BuildStockRows(stock, products), nil
}

func (s *dashboardService) summaryBetween(from, to time.Time) (report.FinancialSummary, error) {
	sales, err := s.saleRepo.FindAll()
	if err != nil {
		return report.FinancialSummary{}, err
	}
	purchases, err := s.purchaseRepo.FindAll()
	if err != nil {
		return report.FinancialSummary{}, err
	}
	return report.ComputeFinancialSummary(sales, purchases, from, to), nil
}

func (s *dashboardService) GetOverview() (*DashboardOverview, error) {
	overview, _, err := s.stockOverview()
	if err != nil {
		return nil, err
	}
	now := s.clock.now()
	today, err := s.summaryBetween(startOfDay(now), endOfDay(now))
	if err != nil {
		return nil, err
	}
	return &DashboardOverview{Stock: overview, Today: today}, nil
}

func (s *dashboardService) GetTopSelling() ([]report.TopSellingEntry, error) {
	sales, err := s.saleRepo.FindAll()
	if err != nil {
		return nil, err
	}
	// first-seen order follows the order sales were taken
	oldestFirst := slices.Clone(sales)
	slices.Reverse(oldestFirst)
	return report.ComputeTopSelling(oldestFirst), nil
}

func (s *dashboardService) GetSalesSeries(timeframe string) (*report.Series, error) {
	if timeframe == "" {
		timeframe = string(report.TimeframeWeekly)
	}
	tf, ok := report.ParseTimeframe(strings.ToLower(timeframe))
	if !ok {
		return nil, &ValidationError{Err: ErrInvalidInput, Details: fmt.Sprintf("unknown timeframe %q", timeframe)}
	}

	sales, err := s.saleRepo.FindAll()
	if err != nil {
		return nil, err
	}
	series := report.ComputeTimeSeries(sales, tf, s.clock.now())
	return &series, nil
}

// GetStockMovement returns daily inbound/outbound quantities for the last
// days days, today included.
func (s *dashboardService) GetStockMovement(days int) ([]report.MovementPoint, error) {
	if days <= 0 {
		days = DefaultMovementDays
	}
	if days > maxMovementDays {
		return nil, &ValidationError{Err: ErrInvalidInput, Details: fmt.Sprintf("days must be at most %d", maxMovementDays)}
	}

	movements, err := s.movementRepo.FindAll()
	if err != nil {
		return nil, err
	}

	now := s.clock.now()
	from := startOfDay(now).AddDate(0, 0, -(days - 1))
	return report.ComputeStockMovement(movements, from, endOfDay(now)), nil
}

// rangeStart resolves the report range keys 7d, 1m, 3m, 6m and 12m.
func rangeStart(key string, now time.Time) (time.Time, bool) {
	today := startOfDay(now)
	switch strings.ToLower(key) {
	case "7d":
		return today.AddDate(0, 0, -6), true
	case "1m":
		return today.AddDate(0, -1, 0), true
	case "3m":
		return today.AddDate(0, -3, 0), true
	case "6m":
		return today.AddDate(0, -6, 0), true
	case "12m":
		return today.AddDate(-1, 0, 0), true
	}
	return time.Time{}, false
}

func (s *dashboardService) GetFinancialSummary(rangeKey string) (*report.FinancialSummary, error) {
	if rangeKey == "" {
		rangeKey = "7d"
	}
	now := s.clock.now()
	from, ok := rangeStart(rangeKey, now)
	if !ok {
		return nil, &ValidationError{Err: ErrInvalidRange, Details: fmt.Sprintf("%q is not one of 7d, 1m, 3m, 6m, 12m", rangeKey)}
	}

	summary, err := s.summaryBetween(from, endOfDay(now))
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// GetDailySnapshot captures the stock cards, today's takings and the
// products that need restocking.
func (s *dashboardService) GetDailySnapshot() (*DailySnapshot, error) {
	now := s.clock.now()
	overview, rows, err := s.stockOverview()
	if err != nil {
		return nil, err
	}
	today, err := s.summaryBetween(startOfDay(now), endOfDay(now))
	if err != nil {
		return nil, err
	}
	return &DailySnapshot{
		Date:    now.Format("2006-01-02"),
		TakenAt: now,
		Stock:   overview,
		Today:   today,
		Restock: report.RestockList(rows),
	}, nil
}

