// Package memory is an in-memory record store used by tests and local runs.
// It enforces the same write invariants as the persistent backends.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mamadbah2/herdbook/internal/domain/models"
	"github.com/mamadbah2/herdbook/internal/repository"
)

// Store holds all collections in memory behind one mutex.
type Store struct {
	mu           sync.RWMutex
	goats        map[string]models.Goat
	expenses     []models.Expense
	healthEvents []models.HealthEvent
	caretakers   []models.Caretaker
	paymentModel models.PaymentModel
	reports      []models.DailyReport
}

// NewStore returns an empty store with the given payment model.
func NewStore(paymentModel models.PaymentModel) *Store {
	return &Store{
		goats:        make(map[string]models.Goat),
		paymentModel: paymentModel,
	}
}

// AddGoat inserts a goat, generating an id when missing, and returns it.
func (s *Store) AddGoat(g models.Goat) models.Goat {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.Status == "" {
		g.Status = models.GoatStatusActive
	}
	s.goats[g.ID] = g
	return g
}

// AddExpense appends an expense, generating an id when missing.
func (s *Store) AddExpense(e models.Expense) models.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	s.expenses = append(s.expenses, e)
	return e
}

// AddHealthEvent appends a health event, generating an id when missing.
func (s *Store) AddHealthEvent(h models.HealthEvent) models.HealthEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	s.healthEvents = append(s.healthEvents, h)
	return h
}

// AddCaretaker appends a caretaker, generating an id when missing.
func (s *Store) AddCaretaker(c models.Caretaker) models.Caretaker {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	s.caretakers = append(s.caretakers, c)
	return c
}

// SetPaymentModel replaces the business payment model.
func (s *Store) SetPaymentModel(m models.PaymentModel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paymentModel = m
}

// ListGoats returns a copy of the goat collection.
func (s *Store) ListGoats(ctx context.Context) ([]models.Goat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	goats := make([]models.Goat, 0, len(s.goats))
	for _, g := range s.goats {
		goats = append(goats, g)
	}
	return goats, nil
}

// ListExpenses returns a copy of the expense collection.
func (s *Store) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Expense(nil), s.expenses...), nil
}

// ListHealthEvents returns a copy of the health event collection.
func (s *Store) ListHealthEvents(ctx context.Context) ([]models.HealthEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.HealthEvent(nil), s.healthEvents...), nil
}

// ListCaretakers returns a copy of the caretaker collection.
func (s *Store) ListCaretakers(ctx context.Context) ([]models.Caretaker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Caretaker(nil), s.caretakers...), nil
}

// GetPaymentModel returns the business payment model.
func (s *Store) GetPaymentModel(ctx context.Context) (models.PaymentModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paymentModel, nil
}

// FinalizeSale transitions an active goat to sold, setting price and date
// together.
func (s *Store) FinalizeSale(ctx context.Context, goatID string, price decimal.Decimal, date time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.goats[goatID]
	if !ok {
		return repository.ErrGoatNotFound
	}
	if g.Status != models.GoatStatusActive {
		return repository.ErrSaleAlreadyFinalized
	}

	g.Status = models.GoatStatusSold
	g.SalePrice = &price
	g.SaleDate = &date
	s.goats[goatID] = g
	return nil
}

// SaveDailyReport appends a report to the in-memory history.
func (s *Store) SaveDailyReport(ctx context.Context, report models.DailyReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, report)
	return nil
}

// Reports returns the saved report history.
func (s *Store) Reports() []models.DailyReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.DailyReport(nil), s.reports...)
}
