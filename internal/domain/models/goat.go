package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoatStatus enumerates the lifecycle states of a goat in the herd.
type GoatStatus string

const (
	GoatStatusActive   GoatStatus = "active"
	GoatStatusSold     GoatStatus = "sold"
	GoatStatusDeceased GoatStatus = "deceased"
)

// Goat represents one animal in the herd register.
//
// SalePrice and SaleDate are both set when the sale is finalized and both nil
// otherwise; the record store enforces that pairing on every write.
type Goat struct {
	ID            string           `json:"id"`
	Tag           string           `json:"tag"`
	Status        GoatStatus       `json:"status"`
	PurchasePrice decimal.Decimal  `json:"purchase_price"`
	PurchaseDate  time.Time        `json:"purchase_date"`
	SalePrice     *decimal.Decimal `json:"sale_price,omitempty"`
	SaleDate      *time.Time       `json:"sale_date,omitempty"`
	CaretakerID   string           `json:"caretaker_id,omitempty"`
}

// IsSold reports whether the goat has a finalized sale.
func (g Goat) IsSold() bool {
	return g.Status == GoatStatusSold
}
