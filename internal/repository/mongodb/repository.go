// Package mongodb is the primary record store backend. Money fields are
// stored as strings and converted at the boundary so no amount ever passes
// through a binary float.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/herdbook/internal/domain/models"
	"github.com/mamadbah2/herdbook/internal/repository"
)

const (
	goatsCollection      = "goats"
	expensesCollection   = "expenses"
	healthCollection     = "health_events"
	caretakersCollection = "caretakers"
	businessCollection   = "business"
	reportsCollection    = "daily_reports"
)

// Repository implements repository.Store and repository.ReportSink on MongoDB.
type Repository struct {
	client *mongo.Client
	dbName string
}

// NewRepository connects to MongoDB and verifies the connection.
func NewRepository(ctx context.Context, uri string, dbName string) (*Repository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Repository{client: client, dbName: dbName}, nil
}

// Close closes the MongoDB connection.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *Repository) collection(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

type goatDoc struct {
	ID            string     `bson:"_id"`
	Tag           string     `bson:"tag,omitempty"`
	Status        string     `bson:"status"`
	PurchasePrice string     `bson:"purchase_price"`
	PurchaseDate  time.Time  `bson:"purchase_date"`
	SalePrice     *string    `bson:"sale_price,omitempty"`
	SaleDate      *time.Time `bson:"sale_date,omitempty"`
	CaretakerID   string     `bson:"caretaker_id,omitempty"`
}

type expenseDoc struct {
	ID       string    `bson:"_id"`
	Amount   string    `bson:"amount"`
	Date     time.Time `bson:"date"`
	Category string    `bson:"category,omitempty"`
	GoatID   string    `bson:"goat_id,omitempty"`
	Notes    string    `bson:"notes,omitempty"`
}

type healthEventDoc struct {
	ID        string    `bson:"_id"`
	GoatID    string    `bson:"goat_id"`
	Cost      string    `bson:"cost"`
	Date      time.Time `bson:"date"`
	Treatment string    `bson:"treatment,omitempty"`
}

type caretakerDoc struct {
	ID    string `bson:"_id"`
	Name  string `bson:"name"`
	Phone string `bson:"phone,omitempty"`
}

type paymentModelDoc struct {
	Type   string `bson:"type"`
	Amount string `bson:"amount"`
}

type dailyReportDoc struct {
	Date            time.Time `bson:"date"`
	TotalGoats      int       `bson:"total_goats"`
	ActiveGoats     int       `bson:"active_goats"`
	SoldGoats       int       `bson:"sold_goats"`
	TotalInvestment string    `bson:"total_investment"`
	TotalRevenue    string    `bson:"total_revenue"`
	TotalExpenses   string    `bson:"total_expenses"`
	NetProfit       string    `bson:"net_profit"`
	CreatedAt       time.Time `bson:"created_at"`
}

// ListGoats returns every goat in the register.
func (r *Repository) ListGoats(ctx context.Context) ([]models.Goat, error) {
	cursor, err := r.collection(goatsCollection).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list goats: %w", err)
	}

	var docs []goatDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode goats: %w", err)
	}

	goats := make([]models.Goat, 0, len(docs))
	for _, d := range docs {
		g, err := d.toModel()
		if err != nil {
			return nil, err
		}
		goats = append(goats, g)
	}
	return goats, nil
}

func (d goatDoc) toModel() (models.Goat, error) {
	price, err := decimal.NewFromString(d.PurchasePrice)
	if err != nil {
		return models.Goat{}, fmt.Errorf("goat %s: bad purchase price %q: %w", d.ID, d.PurchasePrice, err)
	}

	g := models.Goat{
		ID:            d.ID,
		Tag:           d.Tag,
		Status:        models.GoatStatus(d.Status),
		PurchasePrice: price,
		PurchaseDate:  d.PurchaseDate,
		CaretakerID:   d.CaretakerID,
	}
	if d.SalePrice != nil {
		sp, err := decimal.NewFromString(*d.SalePrice)
		if err != nil {
			return models.Goat{}, fmt.Errorf("goat %s: bad sale price %q: %w", d.ID, *d.SalePrice, err)
		}
		g.SalePrice = &sp
	}
	g.SaleDate = d.SaleDate
	return g, nil
}

// ListExpenses returns every expense entry.
func (r *Repository) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	cursor, err := r.collection(expensesCollection).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	var docs []expenseDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode expenses: %w", err)
	}

	expenses := make([]models.Expense, 0, len(docs))
	for _, d := range docs {
		amount, err := decimal.NewFromString(d.Amount)
		if err != nil {
			return nil, fmt.Errorf("expense %s: bad amount %q: %w", d.ID, d.Amount, err)
		}
		expenses = append(expenses, models.Expense{
			ID:       d.ID,
			Amount:   amount,
			Date:     d.Date,
			Category: models.ExpenseCategory(d.Category),
			GoatID:   d.GoatID,
			Notes:    d.Notes,
		})
	}
	return expenses, nil
}

// ListHealthEvents returns every health event.
func (r *Repository) ListHealthEvents(ctx context.Context) ([]models.HealthEvent, error) {
	cursor, err := r.collection(healthCollection).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list health events: %w", err)
	}

	var docs []healthEventDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode health events: %w", err)
	}

	events := make([]models.HealthEvent, 0, len(docs))
	for _, d := range docs {
		cost, err := decimal.NewFromString(d.Cost)
		if err != nil {
			return nil, fmt.Errorf("health event %s: bad cost %q: %w", d.ID, d.Cost, err)
		}
		events = append(events, models.HealthEvent{
			ID:        d.ID,
			GoatID:    d.GoatID,
			Cost:      cost,
			Date:      d.Date,
			Treatment: d.Treatment,
		})
	}
	return events, nil
}

// ListCaretakers returns every caretaker.
func (r *Repository) ListCaretakers(ctx context.Context) ([]models.Caretaker, error) {
	cursor, err := r.collection(caretakersCollection).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list caretakers: %w", err)
	}

	var docs []caretakerDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode caretakers: %w", err)
	}

	caretakers := make([]models.Caretaker, 0, len(docs))
	for _, d := range docs {
		caretakers = append(caretakers, models.Caretaker{ID: d.ID, Name: d.Name, Phone: d.Phone})
	}
	return caretakers, nil
}

// GetPaymentModel loads the single business-level payment model.
func (r *Repository) GetPaymentModel(ctx context.Context) (models.PaymentModel, error) {
	var doc paymentModelDoc
	err := r.collection(businessCollection).FindOne(ctx, bson.D{}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.PaymentModel{}, errors.New("payment model not configured")
		}
		return models.PaymentModel{}, fmt.Errorf("load payment model: %w", err)
	}

	amount, err := decimal.NewFromString(doc.Amount)
	if err != nil {
		return models.PaymentModel{}, fmt.Errorf("payment model: bad amount %q: %w", doc.Amount, err)
	}
	return models.PaymentModel{Type: models.PaymentModelType(doc.Type), Amount: amount}, nil
}

// FinalizeSale atomically transitions an active goat to sold. The status
// filter guarantees a sale is never recorded twice.
func (r *Repository) FinalizeSale(ctx context.Context, goatID string, price decimal.Decimal, date time.Time) error {
	filter := bson.D{
		{Key: "_id", Value: goatID},
		{Key: "status", Value: string(models.GoatStatusActive)},
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: string(models.GoatStatusSold)},
		{Key: "sale_price", Value: price.String()},
		{Key: "sale_date", Value: date},
	}}}

	result, err := r.collection(goatsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("finalize sale for goat %s: %w", goatID, err)
	}
	if result.MatchedCount == 0 {
		count, err := r.collection(goatsCollection).CountDocuments(ctx, bson.D{{Key: "_id", Value: goatID}})
		if err != nil {
			return fmt.Errorf("finalize sale for goat %s: %w", goatID, err)
		}
		if count == 0 {
			return repository.ErrGoatNotFound
		}
		return repository.ErrSaleAlreadyFinalized
	}
	return nil
}

// SaveDailyReport persists a derived daily report document.
func (r *Repository) SaveDailyReport(ctx context.Context, report models.DailyReport) error {
	doc := dailyReportDoc{
		Date:            report.Date,
		TotalGoats:      report.TotalGoats,
		ActiveGoats:     report.ActiveGoats,
		SoldGoats:       report.SoldGoats,
		TotalInvestment: report.TotalInvestment.String(),
		TotalRevenue:    report.TotalRevenue.String(),
		TotalExpenses:   report.TotalExpenses.String(),
		NetProfit:       report.NetProfit.String(),
		CreatedAt:       report.CreatedAt,
	}
	if _, err := r.collection(reportsCollection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert daily report: %w", err)
	}
	return nil
}
