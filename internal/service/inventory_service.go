package service

import (
	"fmt"
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

type InventoryService interface {
	GetStockRows(query StockQuery) ([]report.StockRow, error)
	GetOverview() (report.Overview, error)
	RecordPurchase(req *PurchaseRequest, operator string) (*model.PurchaseRecord, error)
	GetAllPurchases() ([]model.PurchaseRecord, error)
	GetPurchaseInvoice(id uuid.UUID) (*PurchaseInvoice, error)
	RecomputeStock(operator string) ([]StockCorrection, error)
}

// PurchaseInvoice is the printable form of one purchase.
type PurchaseInvoice struct {
	Number   string                `json:"number"`
	Purchase *model.PurchaseRecord `json:"purchase"`
	Product  string                `json:"product"`
	Unit     string                `json:"unit"`
	Total    decimal.Decimal       `json:"total"`
}

// StockCorrection records a stock row whose remaining counter had drifted.
type StockCorrection struct {
	ProductID uuid.UUID       `json:"product_id"`
	Before    decimal.Decimal `json:"before"`
	After     decimal.Decimal `json:"after"`
}

type inventoryService struct {
	productRepo  repository.ProductRepository
	stockRepo    repository.StockRepository
	purchaseRepo repository.PurchaseRepository
	movementRepo repository.MovementRepository
	db           *gorm.DB
	clock        Clock
	logger       *zap.Logger
}

func NewInventoryService(
	pRepo repository.ProductRepository,
	sRepo repository.StockRepository,
	purRepo repository.PurchaseRepository,
	mRepo repository.MovementRepository,
	db *gorm.DB,
	clock Clock,
	logger *zap.Logger,
) InventoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &inventoryService{
		productRepo:  pRepo,
		stockRepo:    sRepo,
		purchaseRepo: purRepo,
		movementRepo: mRepo,
		db:           db,
		clock:        clock,
		logger:       logger,
	}
}

func (s *inventoryService) loadStock() ([]model.StockRecord, []model.Product, error) {
	stock, err := s.stockRepo.FindAll()
	if err != nil {
		return nil, nil, err
	}
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, nil, err
	}
	return stock, products, nil
}

// GetStockRows lists stock joined with products, filtered then sorted.
func (s *inventoryService) GetStockRows(query StockQuery) ([]report.StockRow, error) {
	stock, products, err := s.loadStock()
	if err != nil {
		return nil, err
	}

	rows := report.BuildStockRows(stock, products)
	rows = report.FilterStockRows(rows, query.Search)

	order := report.SortOrder(strings.ToLower(query.Order))
	if order == "" {
		order = report.OrderDefault
	}
	return report.SortStockRows(rows, report.SortKey(strings.ToLower(query.Sort)), order), nil
}

func (s *inventoryService) GetOverview() (report.Overview, error) {
	stock, products, err := s.loadStock()
	if err != nil {
		return report.Overview{}, err
	}
	return report.ComputeOverview(stock, products), nil
}

// RecordPurchase appends the purchase, adds its quantity to the product's
// stock and writes an IN movement, all in one transaction.
func (s *inventoryService) RecordPurchase(req *PurchaseRequest, operator string) (*model.PurchaseRecord, error) {
	req.SupplierName = strings.TrimSpace(req.SupplierName)
	req.Quantity = pricing.RoundQuantity(req.Quantity)
	if err := validationFailed(validator.ValidateStruct(req)); err != nil {
		return nil, err
	}

	date, err := parseDate(req.Date, s.clock)
	if err != nil {
		return nil, err
	}

	purchase := &model.PurchaseRecord{
		SupplierName: req.SupplierName,
		ProductID:    req.ProductID,
		Quantity:     req.Quantity,
		Price:        req.Price,
		Total:        req.Quantity.Mul(req.Price).Round(2),
		Date:         date,
	}
	purchase.CreatedBy = operator
	purchase.UpdatedBy = operator

	err = s.db.Transaction(func(tx *gorm.DB) error {
		product, err := s.productRepo.WithTx(tx).FindByID(req.ProductID)
		if err != nil {
			return notFound(err, ErrProductNotFound)
		}

		stocks := s.stockRepo.WithTx(tx)
		stock, err := stocks.LockByProductID(product.ID)
		if err != nil {
			return notFound(err, ErrStockNotFound)
		}

		if err := s.purchaseRepo.WithTx(tx).Create(purchase); err != nil {
			return err
		}

		stock.Receive(req.Quantity)
		if err := stocks.UpdateCounters(stock, operator); err != nil {
			return err
		}

		movement := &model.StockMovement{
			ProductID: product.ID,
			Type:      model.MovementIn,
			Quantity:  req.Quantity,
			Amount:    purchase.Total,
			Reference: purchase.ID,
			Note:      fmt.Sprintf("purchase from %s", purchase.SupplierName),
		}
		movement.CreatedAt = purchase.Date
		movement.CreatedBy = operator
		movement.UpdatedBy = operator
		if err := s.movementRepo.WithTx(tx).Create(movement); err != nil {
			return err
		}

		purchase.Product = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase recorded",
		zap.String("purchase_id", purchase.ID.String()),
		zap.String("product_id", purchase.ProductID.String()),
		zap.String("quantity", purchase.Quantity.String()),
		zap.String("operator", operator))
	return purchase, nil
}

func (s *inventoryService) GetAllPurchases() ([]model.PurchaseRecord, error) {
	return s.purchaseRepo.FindAll()
}

func (s *inventoryService) GetPurchaseInvoice(id uuid.UUID) (*PurchaseInvoice, error) {
	purchase, err := s.purchaseRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrPurchaseNotFound)
	}

	invoice := &PurchaseInvoice{
		Number:   invoiceNumber("PUR", purchase.ID),
		Purchase: purchase,
		Total:    purchase.Quantity.Mul(purchase.Price).Round(2),
	}
	if purchase.Product != nil {
		invoice.Product = purchase.Product.Name
		invoice.Unit = purchase.Product.Unit
	}
	return invoice, nil
}

// RecomputeStock rewrites remaining = total - sold on every stock row that
// has drifted and reports what changed.
func (s *inventoryService) RecomputeStock(operator string) ([]StockCorrection, error) {
	corrections := []StockCorrection{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		stocks := s.stockRepo.WithTx(tx)
		records, err := stocks.FindAll()
		if err != nil {
			return err
		}

		for i := range records {
			record := &records[i]
			before := record.Remaining
			record.Recompute()
			if before.Equal(record.Remaining) {
				continue
			}
			if err := stocks.UpdateCounters(record, operator); err != nil {
				return err
			}
			corrections = append(corrections, StockCorrection{
				ProductID: record.ProductID,
				Before:    before,
				After:     record.Remaining,
			})
			s.logger.Warn("stock remaining corrected",
				zap.String("product_id", record.ProductID.String()),
				zap.String("before", before.String()),
				zap.String("after", record.Remaining.String()))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return corrections, nil
}

func invoiceNumber(prefix string, id uuid.UUID) string {
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(id.String()[:8]))
}
