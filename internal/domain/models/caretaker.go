package models

import "github.com/shopspring/decimal"

// Caretaker is a worker responsible for a subset of the herd. Compensation is
// not stored per caretaker; it is derived from the business-wide payment
// model and the goats referencing the caretaker's id.
type Caretaker struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// PaymentModelType enumerates the mutually exclusive compensation policies.
type PaymentModelType string

const (
	// PaymentPercentage pays a percentage of each managed goat's net profit.
	PaymentPercentage PaymentModelType = "percentage"
	// PaymentFixedPerSale pays a flat amount per finalized sale.
	PaymentFixedPerSale PaymentModelType = "fixed_per_sale"
	// PaymentMonthlyDuration pays a monthly rate for the time a sold goat
	// spent in the herd.
	PaymentMonthlyDuration PaymentModelType = "monthly_duration"
)

// PaymentModel is the single business-level compensation rule, applied
// uniformly to every caretaker. Amount is a percentage in [0,100] for the
// percentage type and a currency amount otherwise.
type PaymentModel struct {
	Type   PaymentModelType `json:"type"`
	Amount decimal.Decimal  `json:"amount"`
}
