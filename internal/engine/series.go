package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// maxWindowMonths caps the trailing window so short month labels ("Jan")
// never repeat within one series.
const maxWindowMonths = 12

// MonthBucket is one calendar month of the trailing series. Period values
// cover the month itself; cumulative values run from the start of recorded
// history through the end of the month, so the first bucket can already be
// large when history predates the window.
type MonthBucket struct {
	Label string     `json:"label"`
	Year  int        `json:"year"`
	Month time.Month `json:"month"`

	Investment decimal.Decimal `json:"investment"`
	Revenue    decimal.Decimal `json:"revenue"`
	Expenses   decimal.Decimal `json:"expenses"`
	Profit     decimal.Decimal `json:"profit"`

	CumulativeInvestment decimal.Decimal `json:"cumulative_investment"`
	CumulativeRevenue    decimal.Decimal `json:"cumulative_revenue"`
	CumulativeExpenses   decimal.Decimal `json:"cumulative_expenses"`
	CumulativeProfit     decimal.Decimal `json:"cumulative_profit"`
}

// MonthlySeries buckets purchases, sales, expenses and health costs into the
// trailing window ending at referenceDate's month, oldest first. The result
// always holds exactly windowMonths entries regardless of data sparsity, so
// chart axes never skip months. windowMonths values outside 1..12 are
// clamped; zero or negative selects the full 12-month window.
//
// The series depends only on referenceDate and the snapshot, never on the
// wall clock.
func (s *Snapshot) MonthlySeries(referenceDate time.Time, windowMonths int) []MonthBucket {
	if windowMonths <= 0 || windowMonths > maxWindowMonths {
		windowMonths = maxWindowMonths
	}

	ref := dateOnly(referenceDate)
	refMonthStart := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)

	buckets := make([]MonthBucket, 0, windowMonths)
	for i := windowMonths - 1; i >= 0; i-- {
		monthStart := refMonthStart.AddDate(0, -i, 0)
		nextStart := monthStart.AddDate(0, 1, 0)

		b := MonthBucket{
			Label: monthStart.Format("Jan"),
			Year:  monthStart.Year(),
			Month: monthStart.Month(),
		}

		b.Investment, b.CumulativeInvestment = s.sumInvestment(monthStart, nextStart)
		b.Revenue, b.CumulativeRevenue = s.sumRevenue(monthStart, nextStart)
		b.Expenses, b.CumulativeExpenses = s.sumExpenses(monthStart, nextStart)

		b.Profit = b.Revenue.Sub(b.Investment).Sub(b.Expenses)
		b.CumulativeProfit = b.CumulativeRevenue.Sub(b.CumulativeInvestment).Sub(b.CumulativeExpenses)

		buckets = append(buckets, b)
	}

	return buckets
}

func (s *Snapshot) sumInvestment(monthStart, nextStart time.Time) (period, cumulative decimal.Decimal) {
	for _, g := range s.Goats {
		if g.PurchaseDate.IsZero() {
			continue
		}
		period, cumulative = accumulate(period, cumulative, g.PurchaseDate, g.PurchasePrice, monthStart, nextStart)
	}
	return period, cumulative
}

func (s *Snapshot) sumRevenue(monthStart, nextStart time.Time) (period, cumulative decimal.Decimal) {
	for _, g := range s.Goats {
		if !g.IsSold() || g.SalePrice == nil || g.SaleDate == nil {
			continue
		}
		period, cumulative = accumulate(period, cumulative, *g.SaleDate, *g.SalePrice, monthStart, nextStart)
	}
	return period, cumulative
}

func (s *Snapshot) sumExpenses(monthStart, nextStart time.Time) (period, cumulative decimal.Decimal) {
	for _, e := range s.Expenses {
		period, cumulative = accumulate(period, cumulative, e.Date, e.Amount, monthStart, nextStart)
	}
	for _, h := range s.HealthEvents {
		period, cumulative = accumulate(period, cumulative, h.Date, h.Cost, monthStart, nextStart)
	}
	return period, cumulative
}

// accumulate adds amount to the cumulative total when the record predates the
// month's end, and to the period total when it also falls inside the month.
func accumulate(period, cumulative decimal.Decimal, date time.Time, amount decimal.Decimal, monthStart, nextStart time.Time) (decimal.Decimal, decimal.Decimal) {
	day := dateOnly(date)
	if !day.Before(nextStart) {
		return period, cumulative
	}
	cumulative = cumulative.Add(amount)
	if !day.Before(monthStart) {
		period = period.Add(amount)
	}
	return period, cumulative
}
