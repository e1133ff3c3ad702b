package service

import (
	"fmt"
	"slices"
	"strings"

	"go-dairy-admin/internal/model"
	"go-dairy-admin/internal/pricing"
	"go-dairy-admin/internal/report"
	"go-dairy-admin/internal/repository"
	"go-dairy-admin/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RecentSalesWindow is how many of the newest sales feed the recent orders table.
const RecentSalesWindow = 7

type SalesService interface {
	RecordSale(req *SaleRequest, operator string) (*model.Sale, error)
	GetAllSales() ([]model.Sale, error)
	GetSaleInvoice(id uuid.UUID) (*SaleInvoice, error)
	GetRecentLines() ([]report.SaleLineRow, error)
}

// SaleInvoice is the printable form of one sale.
type SaleInvoice struct {
	Number   string          `json:"number"`
	Sale     *model.Sale     `json:"sale"`
	Lines    int             `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type salesService struct {
	productRepo  repository.ProductRepository
	stockRepo    repository.StockRepository
	saleRepo     repository.SaleRepository
	movementRepo repository.MovementRepository
	db           *gorm.DB
	clock        Clock
	logger       *zap.Logger
}

func NewSalesService(
	pRepo repository.ProductRepository,
	sRepo repository.StockRepository,
	saleRepo repository.SaleRepository,
	mRepo repository.MovementRepository,
	db *gorm.DB,
	clock Clock,
	logger *zap.Logger,
) SalesService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &salesService{
		productRepo:  pRepo,
		stockRepo:    sRepo,
		saleRepo:     saleRepo,
		movementRepo: mRepo,
		db:           db,
		clock:        clock,
		logger:       logger,
	}
}

// RecordSale prices every line at the product's current sale rate, checks
// stock, then appends the sale, bumps sold counters and writes OUT movements
// in one transaction. Any bad line fails the whole sale.
func (s *salesService) RecordSale(req *SaleRequest, operator string) (*model.Sale, error) {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	if err := validationFailed(validator.ValidateStruct(req)); err != nil {
		return nil, err
	}

	date, err := parseDate(req.Date, s.clock)
	if err != nil {
		return nil, err
	}

	sale := &model.Sale{
		CustomerName: req.CustomerName,
		Date:         date,
		Items:        make([]model.SaleLineItem, 0, len(req.Items)),
	}
	sale.CreatedBy = operator
	sale.UpdatedBy = operator

	err = s.db.Transaction(func(tx *gorm.DB) error {
		products := s.productRepo.WithTx(tx)
		needed := map[uuid.UUID]decimal.Decimal{}

		for i, item := range req.Items {
			line := i + 1
			product, err := products.FindByID(item.ProductID)
			if err != nil {
				return fmt.Errorf("line %d: %w", line, notFound(err, ErrProductNotFound))
			}

			base := product.BaseUnit()
			unit := pricing.ParseUnit(item.Unit)
			if unit == "" {
				unit = base
			}

			q := pricing.Quote(product.SaleRate, item.Qty, unit, base)
			if !q.Valid() {
				return &ValidationError{
					Err:     ErrInvalidLine,
					Details: fmt.Sprintf("line %d (%s): %s", line, product.Name, q.Reason()),
				}
			}

			lineItem := model.SaleLineItem{
				Line:      line,
				ProductID: product.ID,
				Name:      product.Name,
				Qty:       q.Qty,
				Unit:      q.Unit.String(),
				BaseQty:   q.BaseQty,
				Rate:      q.Rate,
				Total:     q.Total,
			}
			lineItem.CreatedBy = operator
			lineItem.UpdatedBy = operator
			sale.Items = append(sale.Items, lineItem)

			needed[product.ID] = needed[product.ID].Add(q.BaseQty)
		}
		sale.SumTotals()

		// lock in a fixed order so concurrent sales cannot deadlock
		ids := make([]uuid.UUID, 0, len(needed))
		for id := range needed {
			ids = append(ids, id)
		}
		slices.SortFunc(ids, func(a, b uuid.UUID) int { return strings.Compare(a.String(), b.String()) })

		stocks := s.stockRepo.WithTx(tx)
		for _, id := range ids {
			stock, err := stocks.LockByProductID(id)
			if err != nil {
				return notFound(err, ErrStockNotFound)
			}
			if !stock.CanSell(needed[id]) {
				return &ValidationError{
					Err:     ErrInsufficientStock,
					Details: fmt.Sprintf("product %s needs %s, %s left", id, needed[id], stock.Total.Sub(stock.Sold)),
				}
			}
			stock.Sell(needed[id])
			if err := stocks.UpdateCounters(stock, operator); err != nil {
				return err
			}
		}

		if err := s.saleRepo.WithTx(tx).Create(sale); err != nil {
			return err
		}

		movements := s.movementRepo.WithTx(tx)
		for _, item := range sale.Items {
			movement := &model.StockMovement{
				ProductID: item.ProductID,
				Type:      model.MovementOut,
				Quantity:  item.BaseQty,
				Amount:    item.Total,
				Reference: sale.ID,
				Note:      fmt.Sprintf("sale to %s", sale.CustomerName),
			}
			movement.CreatedAt = sale.Date
			movement.CreatedBy = operator
			movement.UpdatedBy = operator
			if err := movements.Create(movement); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sale recorded",
		zap.String("sale_id", sale.ID.String()),
		zap.Int("lines", len(sale.Items)),
		zap.String("total", sale.Total.String()),
		zap.String("operator", operator))
	return sale, nil
}

// GetAllSales returns sales newest first.
func (s *salesService) GetAllSales() ([]model.Sale, error) {
	return s.saleRepo.FindAll()
}

func (s *salesService) GetSaleInvoice(id uuid.UUID) (*SaleInvoice, error) {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrSaleNotFound)
	}

	subtotal := decimal.Zero
	for _, item := range sale.Items {
		subtotal = subtotal.Add(item.Total)
	}
	return &SaleInvoice{
		Number:   invoiceNumber("INV", sale.ID),
		Sale:     sale,
		Lines:    len(sale.Items),
		Subtotal: subtotal,
	}, nil
}

// GetRecentLines flattens the newest sales into order rows.
func (s *salesService) GetRecentLines() ([]report.SaleLineRow, error) {
	sales, err := s.saleRepo.FindAll()
	if err != nil {
		return nil, err
	}
	return report.RecentSaleLines(sales, RecentSalesWindow), nil
}
