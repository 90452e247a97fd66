// Package engine implements the financial computations of the herd book:
// cost allocation, per-goat and portfolio profit, caretaker compensation and
// month-bucketed history. Every operation is a pure function of a Snapshot;
// callers that need consistency across several figures take one snapshot and
// reuse it for the whole pass.
package engine

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/herdbook/internal/domain/models"
)

var (
	// ErrMissingSalePrice marks a data-integrity violation: a goat recorded
	// as sold without a sale price. Valuing such a sale at zero would
	// misstate a real financial outcome, so the engine refuses.
	ErrMissingSalePrice = errors.New("sold goat has no recorded sale price")

	// ErrUnknownPaymentModel marks a configuration error. Compensation never
	// falls back to a default policy.
	ErrUnknownPaymentModel = errors.New("unknown payment model type")
)

// Snapshot is one immutable read of the record store. The shared-expense
// share and per-goat cost sums are computed once at construction, so every
// figure derived from the same snapshot uses the same active-population
// denominator.
type Snapshot struct {
	Goats        []models.Goat
	Expenses     []models.Expense
	HealthEvents []models.HealthEvent
	Caretakers   []models.Caretaker
	PaymentModel models.PaymentModel

	goatsByID   map[string]models.Goat
	specific    map[string]decimal.Decimal
	health      map[string]decimal.Decimal
	sharedShare decimal.Decimal
	activeCount int
}

// NewSnapshot indexes the collections and freezes the shared-pool proration.
// The caller must not mutate the slices for the lifetime of the snapshot.
func NewSnapshot(
	goats []models.Goat,
	expenses []models.Expense,
	healthEvents []models.HealthEvent,
	caretakers []models.Caretaker,
	paymentModel models.PaymentModel,
) *Snapshot {
	s := &Snapshot{
		Goats:        goats,
		Expenses:     expenses,
		HealthEvents: healthEvents,
		Caretakers:   caretakers,
		PaymentModel: paymentModel,
		goatsByID:    make(map[string]models.Goat, len(goats)),
		specific:     make(map[string]decimal.Decimal),
		health:       make(map[string]decimal.Decimal),
	}

	for _, g := range goats {
		s.goatsByID[g.ID] = g
		if g.Status == models.GoatStatusActive {
			s.activeCount++
		}
	}

	sharedPool := decimal.Zero
	for _, e := range expenses {
		if e.IsShared() {
			sharedPool = sharedPool.Add(e.Amount)
			continue
		}
		s.specific[e.GoatID] = s.specific[e.GoatID].Add(e.Amount)
	}

	for _, h := range healthEvents {
		s.health[h.GoatID] = s.health[h.GoatID].Add(h.Cost)
	}

	// Floor of 1 keeps the proration defined when the active herd is empty.
	denominator := s.activeCount
	if denominator < 1 {
		denominator = 1
	}
	s.sharedShare = sharedPool.Div(decimal.NewFromInt(int64(denominator)))

	return s
}

// Goat looks up a goat by id.
func (s *Snapshot) Goat(id string) (models.Goat, bool) {
	g, ok := s.goatsByID[id]
	return g, ok
}

// ActiveCount returns the number of active goats in the snapshot.
func (s *Snapshot) ActiveCount() int {
	return s.activeCount
}

// dateOnly normalizes a timestamp to a timezone-naive calendar day so that
// records entered with different clock components compare by date value.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
