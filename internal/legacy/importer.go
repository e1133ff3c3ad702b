// Package legacy moves the data of the old json-server store into the
// relational database.
package legacy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-dairy-admin/internal/model"
	"go-dairy-admin/internal/pricing"
	"go-dairy-admin/internal/repository"
	"go-dairy-admin/internal/service"
	client "go-dairy-admin/pkg/clients/legacy"
	"go-dairy-admin/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotEmpty is returned when the target database already holds products.
var ErrNotEmpty = errors.New("target database already has products")

// Result counts what one import wrote.
type Result struct {
	Products  int `json:"products"`
	Stock     int `json:"stock"`
	Purchases int `json:"purchases"`
	Sales     int `json:"sales"`
	Corrected int `json:"corrected"`
	Skipped   int `json:"skipped"`
}

type Importer struct {
	client client.Client
	db     *gorm.DB
	clock  service.Clock
	logger *zap.Logger
}

func NewImporter(c client.Client, db *gorm.DB, clock service.Clock, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{client: c, db: db, clock: clock, logger: logger}
}

type snapshot struct {
	products  []client.Product
	stock     []client.Stock
	purchases []client.Purchase
	sales     []client.Sale
}

func (i *Importer) fetch(ctx context.Context) (*snapshot, error) {
	var (
		s   snapshot
		err error
	)
	if s.products, err = i.client.Products(ctx); err != nil {
		return nil, err
	}
	if s.stock, err = i.client.Stock(ctx); err != nil {
		return nil, err
	}
	if s.purchases, err = i.client.Purchases(ctx); err != nil {
		return nil, err
	}
	if s.sales, err = i.client.Sales(ctx); err != nil {
		return nil, err
	}
	return &s, nil
}

// Run fetches every legacy collection and writes it in a single
// transaction. Nothing is written when any step fails.
func (i *Importer) Run(ctx context.Context, operator string) (*Result, error) {
	src, err := i.fetch(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := repository.NewProductRepo(i.db).FindAll()
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, ErrNotEmpty
	}

	result := &Result{}
	err = i.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		run := &importRun{
			Importer:     i,
			operator:     operator,
			result:       result,
			products:     map[client.ID]*model.Product{},
			byName:       map[string]*model.Product{},
			productRepo:  repository.NewProductRepo(tx),
			stockRepo:    repository.NewStockRepo(tx),
			purchaseRepo: repository.NewPurchaseRepo(tx),
			saleRepo:     repository.NewSaleRepo(tx),
			movementRepo: repository.NewMovementRepo(tx),
		}
		if err := run.importProducts(src.products); err != nil {
			return err
		}
		if err := run.importStock(src.stock); err != nil {
			return err
		}
		if err := run.importPurchases(src.purchases); err != nil {
			return err
		}
		return run.importSales(src.sales)
	})
	if err != nil {
		return nil, fmt.Errorf("legacy import: %w", err)
	}

	i.logger.Info("legacy import finished",
		zap.Int("products", result.Products),
		zap.Int("stock", result.Stock),
		zap.Int("purchases", result.Purchases),
		zap.Int("sales", result.Sales),
		zap.Int("corrected", result.Corrected),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

type importRun struct {
	*Importer
	operator string
	result   *Result

	products map[client.ID]*model.Product
	byName   map[string]*model.Product

	productRepo  repository.ProductRepository
	stockRepo    repository.StockRepository
	purchaseRepo repository.PurchaseRepository
	saleRepo     repository.SaleRepository
	movementRepo repository.MovementRepository
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (r *importRun) skip(msg string, fields ...zap.Field) {
	r.result.Skipped++
	r.logger.Warn(msg, fields...)
}

func (r *importRun) importProducts(rows []client.Product) error {
	for _, row := range rows {
		if dup, ok := r.byName[nameKey(row.Name)]; ok {
			// Repeated names collapse onto the first product.
			r.products[row.ID] = dup
			r.logger.Warn("legacy product merged by name", zap.String("legacy_id", string(row.ID)), zap.String("name", row.Name))
			continue
		}

		purchaseRate, saleRate := row.Rates()
		product := &model.Product{
			Name:         strings.TrimSpace(row.Name),
			Category:     strings.TrimSpace(row.Category),
			Unit:         string(pricing.ParseUnit(row.Unit)),
			PurchaseRate: purchaseRate,
			SaleRate:     saleRate,
		}
		product.CreatedBy = r.operator
		product.UpdatedBy = r.operator
		if errs := validator.ValidateStruct(product); len(errs) > 0 {
			r.skip("legacy product rejected", zap.String("legacy_id", string(row.ID)), zap.String("field", errs[0].FailedField), zap.String("tag", errs[0].Tag))
			continue
		}
		if err := r.productRepo.Create(product); err != nil {
			return err
		}

		r.products[row.ID] = product
		r.byName[nameKey(product.Name)] = product
		r.result.Products++
	}
	return nil
}

func (r *importRun) importStock(rows []client.Stock) error {
	seen := map[uuid.UUID]bool{}
	for _, row := range rows {
		product, ok := r.products[row.ProductID]
		if !ok {
			r.skip("legacy stock for unknown product", zap.String("legacy_product_id", string(row.ProductID)))
			continue
		}
		if seen[product.ID] {
			r.skip("duplicate legacy stock row", zap.String("product", product.Name))
			continue
		}
		seen[product.ID] = true

		stock := &model.StockRecord{
			ProductID: product.ID,
			Total:     pricing.RoundQuantity(row.Total),
			Sold:      pricing.RoundQuantity(row.Sold),
		}
		stock.Recompute()
		if !stock.Remaining.Equal(row.Remaining) {
			r.result.Corrected++
			r.logger.Warn("legacy remaining corrected",
				zap.String("product", product.Name),
				zap.String("before", row.Remaining.String()),
				zap.String("after", stock.Remaining.String()),
			)
		}
		stock.CreatedBy = r.operator
		stock.UpdatedBy = r.operator
		if err := r.stockRepo.Create(stock); err != nil {
			return err
		}
		r.result.Stock++
	}

	// Every product needs a stock row.
	for _, product := range r.byName {
		if seen[product.ID] {
			continue
		}
		stock := &model.StockRecord{ProductID: product.ID, Total: decimal.Zero, Sold: decimal.Zero, Remaining: decimal.Zero}
		stock.CreatedBy = r.operator
		stock.UpdatedBy = r.operator
		if err := r.stockRepo.Create(stock); err != nil {
			return err
		}
		r.result.Stock++
	}
	return nil
}

// parseDate reads the ISO strings the old UI stored. Missing or malformed
// dates fall back to the import time.
func (r *importRun) parseDate(raw string) time.Time {
	now := r.clock
	if now == nil {
		now = time.Now
	}
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, now().Location()); err == nil {
		return t
	}
	if raw != "" {
		r.logger.Warn("legacy date unreadable, using import time", zap.String("date", raw))
	}
	return now()
}

func (r *importRun) importPurchases(rows []client.Purchase) error {
	for _, row := range rows {
		product, ok := r.products[row.ProductID]
		if !ok {
			r.skip("legacy purchase for unknown product", zap.String("legacy_id", string(row.ID)))
			continue
		}

		date := r.parseDate(row.Date)
		qty := pricing.RoundQuantity(row.Quantity)
		purchase := &model.PurchaseRecord{
			SupplierName: strings.TrimSpace(row.SupplierName),
			ProductID:    product.ID,
			Quantity:     qty,
			Price:        row.Price,
			Total:        qty.Mul(row.Price).Round(2),
			Date:         date,
		}
		purchase.CreatedAt = date
		purchase.CreatedBy = r.operator
		purchase.UpdatedBy = r.operator
		if err := r.purchaseRepo.Create(purchase); err != nil {
			return err
		}

		movement := &model.StockMovement{
			ProductID: product.ID,
			Type:      model.MovementIn,
			Quantity:  purchase.Quantity,
			Amount:    purchase.Total,
			Reference: purchase.ID,
			Note:      "legacy purchase from " + purchase.SupplierName,
		}
		movement.CreatedAt = date
		movement.CreatedBy = r.operator
		if err := r.movementRepo.Create(movement); err != nil {
			return err
		}
		r.result.Purchases++
	}
	return nil
}

func (r *importRun) resolveProduct(line client.SaleLine) (*model.Product, bool) {
	if line.ProductID != "" {
		if product, ok := r.products[line.ProductID]; ok {
			return product, true
		}
	}
	product, ok := r.byName[nameKey(line.Name)]
	return product, ok
}

func (r *importRun) saleLine(line client.SaleLine, product *model.Product) model.SaleLineItem {
	base := product.BaseUnit()
	unit := pricing.ParseUnit(line.Unit)
	if unit == "" {
		unit = base
	}

	rate := product.SaleRate
	if line.Rate != nil {
		rate = *line.Rate
	}

	var total decimal.Decimal
	switch {
	case line.Total != nil:
		total = *line.Total
	case line.Price != nil:
		total = *line.Price
	default:
		total = pricing.ComputeLineTotal(rate, line.Qty, unit, base)
	}

	name := strings.TrimSpace(line.Name)
	if name == "" {
		name = product.Name
	}

	return model.SaleLineItem{
		ProductID: product.ID,
		Name:      name,
		Qty:       line.Qty,
		Unit:      string(unit),
		BaseQty:   pricing.ToBaseQuantity(line.Qty, unit, base),
		Rate:      rate,
		Total:     total,
	}
}

func (r *importRun) importSales(rows []client.Sale) error {
	for _, row := range rows {
		date := r.parseDate(row.Date)
		sale := &model.Sale{CustomerName: strings.TrimSpace(row.CustomerName), Date: date}

		for _, line := range row.Lines() {
			product, ok := r.resolveProduct(line)
			if !ok {
				r.skip("legacy sale line for unknown product", zap.String("sale", string(row.ID)), zap.String("name", line.Name))
				continue
			}
			item := r.saleLine(line, product)
			item.Line = len(sale.Items) + 1
			item.CreatedAt = date
			item.CreatedBy = r.operator
			sale.Items = append(sale.Items, item)
		}
		if len(sale.Items) == 0 {
			r.skip("legacy sale without usable lines", zap.String("sale", string(row.ID)))
			continue
		}

		sale.SumTotals()
		sale.CreatedAt = date
		sale.CreatedBy = r.operator
		sale.UpdatedBy = r.operator
		if err := r.saleRepo.Create(sale); err != nil {
			return err
		}

		for _, item := range sale.Items {
			if !item.BaseQty.IsPositive() {
				continue
			}
			movement := &model.StockMovement{
				ProductID: item.ProductID,
				Type:      model.MovementOut,
				Quantity:  item.BaseQty,
				Amount:    item.Total,
				Reference: sale.ID,
				Note:      "legacy sale to " + sale.CustomerName,
			}
			movement.CreatedAt = date
			movement.CreatedBy = r.operator
			if err := r.movementRepo.Create(movement); err != nil {
				return err
			}
		}
		r.result.Sales++
	}
	return nil
}
