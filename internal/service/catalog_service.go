package service

import (
	"errors"
	"strings"

	"go-dairy-admin/internal/model"
	"go-dairy-admin/internal/pricing"
	"go-dairy-admin/internal/repository"
	"go-dairy-admin/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CatalogService interface {
	CreateProduct(req *model.Product, operator string) error
	UpdateProduct(id uuid.UUID, patch *ProductPatch, operator string) (*model.Product, error)
	GetAllProducts(search string) ([]model.Product, error)
	GetProductByID(id uuid.UUID) (*model.Product, error)
	AllowedUnits(id uuid.UUID) ([]pricing.Unit, error)
	Quote(req *QuoteRequest) (*QuoteResult, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
	stockRepo   repository.StockRepository
	db          *gorm.DB
	logger      *zap.Logger
}

func NewCatalogService(pRepo repository.ProductRepository, sRepo repository.StockRepository, db *gorm.DB, logger *zap.Logger) CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &catalogService{
		productRepo: pRepo,
		stockRepo:   sRepo,
		db:          db,
		logger:      logger,
	}
}

func normalizeProduct(p *model.Product) {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	p.Unit = pricing.ParseUnit(p.Unit).String()
}

// CreateProduct stores the product and its zeroed stock record together.
func (s *catalogService) CreateProduct(req *model.Product, operator string) error {
	normalizeProduct(req)
	if err := validationFailed(validator.ValidateStruct(req)); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		products := s.productRepo.WithTx(tx)

		existing, err := products.FindByName(req.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if existing != nil {
			return ErrDuplicateProduct
		}

		req.CreatedBy = operator
		req.UpdatedBy = operator
		if err := products.Create(req); err != nil {
			return err
		}

		stock := &model.StockRecord{
			ProductID: req.ID,
			Total:     decimal.Zero,
			Sold:      decimal.Zero,
			Remaining: decimal.Zero,
		}
		stock.CreatedBy = operator
		stock.UpdatedBy = operator
		if err := s.stockRepo.WithTx(tx).Create(stock); err != nil {
			return err
		}

		s.logger.Info("product created",
			zap.String("product_id", req.ID.String()),
			zap.String("name", req.Name),
			zap.String("operator", operator))
		return nil
	})
}

func (s *catalogService) UpdateProduct(id uuid.UUID, patch *ProductPatch, operator string) (*model.Product, error) {
	var updated *model.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		products := s.productRepo.WithTx(tx)

		existing, err := products.FindByID(id)
		if err != nil {
			return notFound(err, ErrProductNotFound)
		}
		oldName := existing.Name

		if patch.Name != nil {
			existing.Name = *patch.Name
		}
		if patch.Category != nil {
			existing.Category = *patch.Category
		}
		if patch.Unit != nil {
			existing.Unit = *patch.Unit
		}
		if patch.PurchaseRate != nil {
			existing.PurchaseRate = *patch.PurchaseRate
		}
		if patch.SaleRate != nil {
			existing.SaleRate = *patch.SaleRate
		}
		normalizeProduct(existing)

		if err := validationFailed(validator.ValidateStruct(existing)); err != nil {
			return err
		}

		if !strings.EqualFold(oldName, existing.Name) {
			dup, err := products.FindByName(existing.Name)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if dup != nil && dup.ID != existing.ID {
				return ErrDuplicateProduct
			}
		}

		existing.UpdatedBy = operator
		if err := products.Update(existing); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("product updated",
		zap.String("product_id", updated.ID.String()),
		zap.String("operator", operator))
	return updated, nil
}

// GetAllProducts lists the catalog, filtered case-insensitively on name or category.
func (s *catalogService) GetAllProducts(search string) ([]model.Product, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return products, nil
	}

	filtered := []model.Product{}
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (s *catalogService) GetProductByID(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrProductNotFound)
	}
	return product, nil
}

func (s *catalogService) AllowedUnits(id uuid.UUID) ([]pricing.Unit, error) {
	product, err := s.GetProductByID(id)
	if err != nil {
		return nil, err
	}
	return pricing.AllowedUnits(product.BaseUnit()), nil
}

// Quote previews a sale line at the product's current sale rate. An empty
// unit means the product's base unit.
func (s *catalogService) Quote(req *QuoteRequest) (*QuoteResult, error) {
	if err := validationFailed(validator.ValidateStruct(req)); err != nil {
		return nil, err
	}

	product, err := s.GetProductByID(req.ProductID)
	if err != nil {
		return nil, err
	}

	base := product.BaseUnit()
	unit := pricing.ParseUnit(req.Unit)
	if unit == "" {
		unit = base
	}

	q := pricing.Quote(product.SaleRate, req.Qty, unit, base)
	return &QuoteResult{
		ProductID: product.ID,
		Name:      product.Name,
		Qty:       q.Qty,
		Unit:      q.Unit,
		BaseUnit:  q.Base,
		BaseQty:   q.BaseQty,
		Rate:      q.Rate,
		Total:     q.Total,
		Valid:     q.Valid(),
		Reason:    q.Reason(),
	}, nil
}
