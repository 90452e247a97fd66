package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/herdbook/internal/domain/models"
)

var oneHundred = decimal.NewFromInt(100)

// Summary aggregates the whole portfolio. Every ratio is a defined zero when
// its denominator is zero, so the summary renders into a dashboard without
// null guards.
type Summary struct {
	TotalGoats    int `json:"total_goats"`
	ActiveGoats   int `json:"active_goats"`
	SoldGoats     int `json:"sold_goats"`
	DeceasedGoats int `json:"deceased_goats"`

	TotalInvestment decimal.Decimal `json:"total_investment"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	TotalExpenses   decimal.Decimal `json:"total_expenses"`
	NetProfit       decimal.Decimal `json:"net_profit"`

	// ProfitMargin and ROI are percentages rounded to two decimal places.
	ProfitMargin         decimal.Decimal `json:"profit_margin"`
	ROI                  decimal.Decimal `json:"roi"`
	AverageProfitPerSale decimal.Decimal `json:"average_profit_per_sale"`

	// OwnerEarnings is net profit after percentage-model caretaker shares.
	// Fixed and monthly compensation is an operating cost the bookkeeper
	// records as an expense, already inside TotalExpenses, so it is never
	// subtracted a second time here.
	OwnerEarnings decimal.Decimal `json:"owner_earnings"`
}

// GoatProfit returns the realized profit of one goat:
// sale price minus purchase price minus allocated cost.
//
// Goats that are not sold yield zero by convention, not an error. A goat
// marked sold without a sale price is a record-store integrity violation and
// returns ErrMissingSalePrice.
func (s *Snapshot) GoatProfit(g models.Goat) (decimal.Decimal, error) {
	if !g.IsSold() {
		return decimal.Zero, nil
	}
	if g.SalePrice == nil {
		return decimal.Zero, fmt.Errorf("goat %s: %w", g.ID, ErrMissingSalePrice)
	}
	return g.SalePrice.Sub(g.PurchasePrice).Sub(s.AllocatedCost(g.ID)), nil
}

// GoatProfitByID is GoatProfit keyed by id; unknown ids yield zero.
func (s *Snapshot) GoatProfitByID(goatID string) (decimal.Decimal, error) {
	g, ok := s.goatsByID[goatID]
	if !ok {
		return decimal.Zero, nil
	}
	return s.GoatProfit(g)
}

// PortfolioSummary computes the portfolio aggregates over the full snapshot.
//
// TotalExpenses is the unallocated total of all expenses and health costs; it
// is independent of the per-goat proration in AllocatedCost.
func (s *Snapshot) PortfolioSummary() (Summary, error) {
	var sum Summary
	sum.TotalGoats = len(s.Goats)

	totalInvestment := decimal.Zero
	totalRevenue := decimal.Zero
	soldProfit := decimal.Zero

	for _, g := range s.Goats {
		totalInvestment = totalInvestment.Add(g.PurchasePrice)

		switch g.Status {
		case models.GoatStatusActive:
			sum.ActiveGoats++
		case models.GoatStatusDeceased:
			sum.DeceasedGoats++
		case models.GoatStatusSold:
			sum.SoldGoats++
			profit, err := s.GoatProfit(g)
			if err != nil {
				return Summary{}, err
			}
			totalRevenue = totalRevenue.Add(*g.SalePrice)
			soldProfit = soldProfit.Add(profit)
		}
	}

	totalExpenses := decimal.Zero
	for _, e := range s.Expenses {
		totalExpenses = totalExpenses.Add(e.Amount)
	}
	for _, h := range s.HealthEvents {
		totalExpenses = totalExpenses.Add(h.Cost)
	}

	sum.TotalInvestment = totalInvestment
	sum.TotalRevenue = totalRevenue
	sum.TotalExpenses = totalExpenses
	sum.NetProfit = totalRevenue.Sub(totalInvestment).Sub(totalExpenses)

	if totalRevenue.IsPositive() {
		sum.ProfitMargin = sum.NetProfit.Div(totalRevenue).Mul(oneHundred).Round(2)
	}
	if totalInvestment.IsPositive() {
		sum.ROI = sum.NetProfit.Div(totalInvestment).Mul(oneHundred).Round(2)
	}
	if sum.SoldGoats > 0 {
		sum.AverageProfitPerSale = soldProfit.Div(decimal.NewFromInt(int64(sum.SoldGoats)))
	}

	ownerEarnings, err := s.OwnerEarnings(sum.NetProfit)
	if err != nil {
		return Summary{}, err
	}
	sum.OwnerEarnings = ownerEarnings

	return sum, nil
}
