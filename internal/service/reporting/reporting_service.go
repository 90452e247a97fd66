// Package reporting wires the record store to the financial engine. Every
// operation takes one consistent snapshot of the collections and derives all
// of its figures from it, so no two numbers in a response disagree about the
// active-population denominator.
package reporting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdbook/internal/domain/models"
	"github.com/mamadbah2/herdbook/internal/engine"
	"github.com/mamadbah2/herdbook/internal/repository"
)

// ErrCaretakerNotFound is returned when earnings are requested for an
// unknown caretaker id.
var ErrCaretakerNotFound = errors.New("caretaker not found")

// ErrInvalidSale is returned when a sale finalization request fails
// validation before reaching the store.
var ErrInvalidSale = errors.New("invalid sale")

// GoatProfitReport is the per-goat financial breakdown served to the
// presentation layer.
type GoatProfitReport struct {
	GoatID        string            `json:"goat_id"`
	Tag           string            `json:"tag,omitempty"`
	Status        models.GoatStatus `json:"status"`
	PurchasePrice decimal.Decimal   `json:"purchase_price"`
	SalePrice     *decimal.Decimal  `json:"sale_price,omitempty"`
	AllocatedCost decimal.Decimal   `json:"allocated_cost"`
	Profit        decimal.Decimal   `json:"profit"`
}

// Service exposes the engine over the record store.
type Service struct {
	store   repository.Store
	reports repository.ReportSink
	logger  *zap.Logger
}

// NewService wires a new reporting service instance. reports may be nil when
// no report history is kept.
func NewService(store repository.Store, reports repository.ReportSink, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, reports: reports, logger: logger}
}

// Snapshot loads all collections in one pass and freezes them for
// computation. Callers needing several consistent figures should take one
// snapshot and query it directly.
func (s *Service) Snapshot(ctx context.Context) (*engine.Snapshot, error) {
	goats, err := s.store.ListGoats(ctx)
	if err != nil {
		return nil, fmt.Errorf("load goats: %w", err)
	}
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}
	healthEvents, err := s.store.ListHealthEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("load health events: %w", err)
	}
	caretakers, err := s.store.ListCaretakers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load caretakers: %w", err)
	}
	paymentModel, err := s.store.GetPaymentModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("load payment model: %w", err)
	}

	return engine.NewSnapshot(goats, expenses, healthEvents, caretakers, paymentModel), nil
}

// PortfolioSummary computes the dashboard aggregates.
func (s *Service) PortfolioSummary(ctx context.Context) (engine.Summary, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return engine.Summary{}, err
	}
	return snap.PortfolioSummary()
}

// GoatProfit computes the financial breakdown for one goat.
func (s *Service) GoatProfit(ctx context.Context, goatID string) (GoatProfitReport, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return GoatProfitReport{}, err
	}

	g, ok := snap.Goat(goatID)
	if !ok {
		return GoatProfitReport{}, repository.ErrGoatNotFound
	}

	profit, err := snap.GoatProfit(g)
	if err != nil {
		return GoatProfitReport{}, err
	}

	return GoatProfitReport{
		GoatID:        g.ID,
		Tag:           g.Tag,
		Status:        g.Status,
		PurchasePrice: g.PurchasePrice,
		SalePrice:     g.SalePrice,
		AllocatedCost: snap.AllocatedCost(g.ID),
		Profit:        profit,
	}, nil
}

// CaretakerEarnings computes derived compensation for one caretaker.
func (s *Service) CaretakerEarnings(ctx context.Context, caretakerID string) (engine.Earnings, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return engine.Earnings{}, err
	}

	known := false
	for _, c := range snap.Caretakers {
		if c.ID == caretakerID {
			known = true
			break
		}
	}
	if !known {
		return engine.Earnings{}, ErrCaretakerNotFound
	}

	return snap.CaretakerEarnings(caretakerID)
}

// AllCaretakerEarnings computes compensation for every caretaker.
func (s *Service) AllCaretakerEarnings(ctx context.Context) ([]engine.Earnings, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.AllCaretakerEarnings()
}

// MonthlySeries buckets the records into the trailing window ending at
// referenceDate's month.
func (s *Service) MonthlySeries(ctx context.Context, referenceDate time.Time, windowMonths int) ([]engine.MonthBucket, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.MonthlySeries(referenceDate, windowMonths), nil
}

// FinalizeSale validates and records a sale through the store's single write
// path.
func (s *Service) FinalizeSale(ctx context.Context, goatID string, price decimal.Decimal, date time.Time) error {
	if goatID == "" {
		return fmt.Errorf("%w: goat id required", ErrInvalidSale)
	}
	if !price.IsPositive() {
		return fmt.Errorf("%w: sale price must be positive", ErrInvalidSale)
	}
	if date.IsZero() {
		return fmt.Errorf("%w: sale date required", ErrInvalidSale)
	}

	if err := s.store.FinalizeSale(ctx, goatID, price, date); err != nil {
		return err
	}

	s.logger.Info("sale finalized",
		zap.String("goat_id", goatID),
		zap.String("price", price.String()),
		zap.Time("date", date))
	return nil
}

// GenerateDailyReport derives the day's portfolio aggregates and persists
// them when a report sink is configured.
func (s *Service) GenerateDailyReport(ctx context.Context, now time.Time) (models.DailyReport, error) {
	sum, err := s.PortfolioSummary(ctx)
	if err != nil {
		return models.DailyReport{}, err
	}

	report := models.DailyReport{
		Date:            time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		TotalGoats:      sum.TotalGoats,
		ActiveGoats:     sum.ActiveGoats,
		SoldGoats:       sum.SoldGoats,
		TotalInvestment: sum.TotalInvestment,
		TotalRevenue:    sum.TotalRevenue,
		TotalExpenses:   sum.TotalExpenses,
		NetProfit:       sum.NetProfit,
		CreatedAt:       now,
	}

	if s.reports != nil {
		if err := s.reports.SaveDailyReport(ctx, report); err != nil {
			return models.DailyReport{}, fmt.Errorf("save daily report: %w", err)
		}
	}

	return report, nil
}

// RenderReportText formats a daily report for webhook delivery.
func (s *Service) RenderReportText(report models.DailyReport) string {
	return fmt.Sprintf(
		"Herd report %s: %d goats (%d active, %d sold). Investment %s, revenue %s, expenses %s. Net profit %s.",
		report.Date.Format("2006-01-02"),
		report.TotalGoats, report.ActiveGoats, report.SoldGoats,
		report.TotalInvestment, report.TotalRevenue, report.TotalExpenses,
		report.NetProfit,
	)
}
