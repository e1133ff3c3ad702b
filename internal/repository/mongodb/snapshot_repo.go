package mongodb

import (
	"context"
	"fmt"
	"time"

	"go-dairy-admin/internal/report"
	"go-dairy-admin/internal/service"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SnapshotRepository archives end-of-day snapshots.
type SnapshotRepository interface {
	SaveDailySnapshot(ctx context.Context, snapshot *service.DailySnapshot) error
}

// MongoDBRepository implements SnapshotRepository for MongoDB.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBRepository connects and pings the server.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: "daily_snapshots",
	}, nil
}

// SaveDailySnapshot upserts the snapshot keyed by its calendar day, so a
// rerun on the same day replaces the earlier one.
func (r *MongoDBRepository) SaveDailySnapshot(ctx context.Context, snapshot *service.DailySnapshot) error {
	doc, err := NewSnapshotDocument(snapshot)
	if err != nil {
		return err
	}

	collection := r.client.Database(r.dbName).Collection(r.collName)
	_, err = collection.ReplaceOne(ctx,
		bson.M{"date": doc.Date},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to save daily snapshot: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

// SnapshotDocument is the stored shape. Decimals become Decimal128 so they
// stay exact and queryable.
type SnapshotDocument struct {
	Date            string               `bson:"date"`
	TakenAt         time.Time            `bson:"taken_at"`
	TotalProducts   int                  `bson:"total_products"`
	LowStockCount   int                  `bson:"low_stock_count"`
	OutOfStockCount int                  `bson:"out_of_stock_count"`
	StockValue      primitive.Decimal128 `bson:"stock_value"`
	Revenue         primitive.Decimal128 `bson:"revenue"`
	Expenses        primitive.Decimal128 `bson:"expenses"`
	Profit          primitive.Decimal128 `bson:"profit"`
	Orders          int                  `bson:"orders"`
	Restock         []RestockItem        `bson:"restock"`
}

type RestockItem struct {
	ProductID string               `bson:"product_id"`
	Name      string               `bson:"name"`
	Remaining primitive.Decimal128 `bson:"remaining"`
	Status    string               `bson:"status"`
}

// NewSnapshotDocument converts a snapshot into its stored shape.
func NewSnapshotDocument(s *service.DailySnapshot) (*SnapshotDocument, error) {
	var convErr error
	dec := func(d decimal.Decimal) primitive.Decimal128 {
		v, err := primitive.ParseDecimal128(d.String())
		if err != nil && convErr == nil {
			convErr = fmt.Errorf("convert %s: %w", d, err)
		}
		return v
	}

	doc := &SnapshotDocument{
		Date:            s.Date,
		TakenAt:         s.TakenAt,
		TotalProducts:   s.Stock.TotalProducts,
		LowStockCount:   s.Stock.LowStockCount,
		OutOfStockCount: s.Stock.OutOfStockCount,
		StockValue:      dec(s.Stock.TotalStockValue),
		Revenue:         dec(s.Today.Revenue),
		Expenses:        dec(s.Today.Expenses),
		Profit:          dec(s.Today.Profit),
		Orders:          s.Today.Orders,
		Restock:         make([]RestockItem, 0, len(s.Restock)),
	}
	for _, row := range s.Restock {
		doc.Restock = append(doc.Restock, restockItem(row, dec))
	}

	if convErr != nil {
		return nil, convErr
	}
	return doc, nil
}

func restockItem(row report.StockRow, dec func(decimal.Decimal) primitive.Decimal128) RestockItem {
	return RestockItem{
		ProductID: row.ProductID.String(),
		Name:      row.Name,
		Remaining: dec(row.Remaining),
		Status:    string(row.Status),
	}
}
