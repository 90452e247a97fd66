package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/herdbook/internal/domain/models"
)

const daysPerMonth = 30

// Earnings is the derived compensation of one caretaker under the active
// payment model.
type Earnings struct {
	CaretakerID   string `json:"caretaker_id"`
	CaretakerName string `json:"caretaker_name,omitempty"`

	// GoatsAssigned counts every goat referencing the caretaker;
	// GoatsManaged counts only the sold ones, which are the only goats that
	// generate compensation.
	GoatsAssigned int `json:"goats_assigned"`
	GoatsManaged  int `json:"goats_managed"`

	Total          decimal.Decimal `json:"total"`
	AveragePerSale decimal.Decimal `json:"average_per_sale"`
}

// CaretakerEarnings applies the business payment model to the goats the
// caretaker handled. A caretaker with no sold goats earns a defined zero.
func (s *Snapshot) CaretakerEarnings(caretakerID string) (Earnings, error) {
	earnings := Earnings{CaretakerID: caretakerID}
	for _, c := range s.Caretakers {
		if c.ID == caretakerID {
			earnings.CaretakerName = c.Name
			break
		}
	}

	total := decimal.Zero
	for _, g := range s.Goats {
		if g.CaretakerID != caretakerID {
			continue
		}
		earnings.GoatsAssigned++
		if !g.IsSold() {
			continue
		}
		earnings.GoatsManaged++

		share, err := s.saleCompensation(g)
		if err != nil {
			return Earnings{}, err
		}
		total = total.Add(share)
	}

	earnings.Total = total
	if earnings.GoatsManaged > 0 {
		earnings.AveragePerSale = total.Div(decimal.NewFromInt(int64(earnings.GoatsManaged)))
	}
	return earnings, nil
}

// AllCaretakerEarnings computes Earnings for every caretaker in the snapshot,
// in the order the record store listed them.
func (s *Snapshot) AllCaretakerEarnings() ([]Earnings, error) {
	out := make([]Earnings, 0, len(s.Caretakers))
	for _, c := range s.Caretakers {
		e, err := s.CaretakerEarnings(c.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// OwnerEarnings is the residual left to the owner after caretaker shares.
// Only percentage-model shares are deducted from net profit: fixed and
// monthly compensation is paid as a recorded operating expense and already
// reduces TotalExpenses upstream, so deducting it here would double-count.
func (s *Snapshot) OwnerEarnings(netProfit decimal.Decimal) (decimal.Decimal, error) {
	if s.PaymentModel.Type != models.PaymentPercentage {
		if err := s.validatePaymentModel(); err != nil {
			return decimal.Zero, err
		}
		return netProfit, nil
	}

	shares := decimal.Zero
	for _, c := range s.Caretakers {
		e, err := s.CaretakerEarnings(c.ID)
		if err != nil {
			return decimal.Zero, err
		}
		shares = shares.Add(e.Total)
	}
	return netProfit.Sub(shares), nil
}

// saleCompensation is the compensation one sold goat generates under the
// active payment model.
func (s *Snapshot) saleCompensation(g models.Goat) (decimal.Decimal, error) {
	switch s.PaymentModel.Type {
	case models.PaymentPercentage:
		profit, err := s.GoatProfit(g)
		if err != nil {
			return decimal.Zero, err
		}
		// A share of net profit after allocated costs, not of revenue.
		return profit.Mul(s.PaymentModel.Amount).Div(oneHundred), nil

	case models.PaymentFixedPerSale:
		// Flat per sale, independent of the profit sign or magnitude.
		return s.PaymentModel.Amount, nil

	case models.PaymentMonthlyDuration:
		if g.PurchaseDate.IsZero() || g.SaleDate == nil {
			return decimal.Zero, nil
		}
		return s.PaymentModel.Amount.Mul(decimal.NewFromInt(monthsHeld(g.PurchaseDate, *g.SaleDate))), nil

	default:
		return decimal.Zero, fmt.Errorf("%q: %w", s.PaymentModel.Type, ErrUnknownPaymentModel)
	}
}

func (s *Snapshot) validatePaymentModel() error {
	switch s.PaymentModel.Type {
	case models.PaymentPercentage, models.PaymentFixedPerSale, models.PaymentMonthlyDuration:
		return nil
	default:
		return fmt.Errorf("%q: %w", s.PaymentModel.Type, ErrUnknownPaymentModel)
	}
}

// monthsHeld counts whole 30-day months between purchase and sale, with a
// floor of one so a quick flip still pays a full month.
func monthsHeld(purchase, sale time.Time) int64 {
	days := int64(dateOnly(sale).Sub(dateOnly(purchase)) / (24 * time.Hour))
	months := days / daysPerMonth
	if months < 1 {
		return 1
	}
	return months
}
