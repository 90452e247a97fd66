package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyReport is the persisted snapshot of the portfolio aggregates, written
// once per scheduler run so historical dashboards survive record edits.
// Storage adapters own the on-disk encoding of the money fields.
type DailyReport struct {
	Date            time.Time       `json:"date"`
	TotalGoats      int             `json:"total_goats"`
	ActiveGoats     int             `json:"active_goats"`
	SoldGoats       int             `json:"sold_goats"`
	TotalInvestment decimal.Decimal `json:"total_investment"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	TotalExpenses   decimal.Decimal `json:"total_expenses"`
	NetProfit       decimal.Decimal `json:"net_profit"`
	CreatedAt       time.Time       `json:"created_at"`
}
