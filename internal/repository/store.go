// Package repository defines the data-access boundary of the herd book. The
// engine consumes these collections read-only; sale finalization is the only
// write path it ever requests.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/herdbook/internal/domain/models"
)

var (
	// ErrGoatNotFound is returned when the referenced goat does not exist.
	ErrGoatNotFound = errors.New("goat not found")
	// ErrSaleAlreadyFinalized is returned when finalizing a goat that is no
	// longer active.
	ErrSaleAlreadyFinalized = errors.New("sale already finalized")
)

// Store supplies the record collections the engine computes over.
type Store interface {
	ListGoats(ctx context.Context) ([]models.Goat, error)
	ListExpenses(ctx context.Context) ([]models.Expense, error)
	ListHealthEvents(ctx context.Context) ([]models.HealthEvent, error)
	ListCaretakers(ctx context.Context) ([]models.Caretaker, error)
	GetPaymentModel(ctx context.Context) (models.PaymentModel, error)

	// FinalizeSale transitions an active goat to sold, recording the sale
	// price and date together.
	FinalizeSale(ctx context.Context, goatID string, price decimal.Decimal, date time.Time) error
}

// ReportSink persists derived daily reports for historical dashboards.
type ReportSink interface {
	SaveDailyReport(ctx context.Context, report models.DailyReport) error
}
