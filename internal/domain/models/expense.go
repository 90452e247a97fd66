package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory is an informational tag on expenses; the engine never
// branches on it.
type ExpenseCategory string

const (
	ExpenseCategoryFeed      ExpenseCategory = "feed"
	ExpenseCategoryShelter   ExpenseCategory = "shelter"
	ExpenseCategoryTransport ExpenseCategory = "transport"
	ExpenseCategoryLabor     ExpenseCategory = "labor"
	ExpenseCategoryOther     ExpenseCategory = "other"
)

// Expense captures one operating cost entry. An empty GoatID marks the
// expense as shared: it is prorated across the active herd at evaluation
// time instead of being charged to a single goat.
type Expense struct {
	ID       string          `json:"id"`
	Amount   decimal.Decimal `json:"amount"`
	Date     time.Time       `json:"date"`
	Category ExpenseCategory `json:"category"`
	GoatID   string          `json:"goat_id,omitempty"`
	Notes    string          `json:"notes,omitempty"`
}

// IsShared reports whether the expense belongs to the shared pool.
func (e Expense) IsShared() bool {
	return e.GoatID == ""
}

// HealthEvent captures a veterinary intervention. Health costs are always
// tied to one goat, never shared.
type HealthEvent struct {
	ID        string          `json:"id"`
	GoatID    string          `json:"goat_id"`
	Cost      decimal.Decimal `json:"cost"`
	Date      time.Time       `json:"date"`
	Treatment string          `json:"treatment,omitempty"`
}
