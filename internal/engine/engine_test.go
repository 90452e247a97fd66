package engine_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/herdbook/internal/domain/models"
	"github.com/mamadbah2/herdbook/internal/engine"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func activeGoat(id, price string, purchased time.Time) models.Goat {
	return models.Goat{
		ID:            id,
		Status:        models.GoatStatusActive,
		PurchasePrice: dec(price),
		PurchaseDate:  purchased,
	}
}

func soldGoat(id, purchasePrice, salePrice string, purchased, sold time.Time) models.Goat {
	sp := dec(salePrice)
	return models.Goat{
		ID:            id,
		Status:        models.GoatStatusSold,
		PurchasePrice: dec(purchasePrice),
		PurchaseDate:  purchased,
		SalePrice:     &sp,
		SaleDate:      &sold,
	}
}

func percentageModel(pct string) models.PaymentModel {
	return models.PaymentModel{Type: models.PaymentPercentage, Amount: dec(pct)}
}

// scenarioSnapshot builds the reference scenario: goat A bought for 10000 and
// sold for 18000, one specific expense of 1000, one shared expense of 2000
// split across two active goats, one health event of 500 on A.
func scenarioSnapshot(model models.PaymentModel) *engine.Snapshot {
	goatA := soldGoat("goat-a", "10000", "18000", day(2026, time.January, 10), day(2026, time.June, 20))
	goatA.CaretakerID = "caretaker-1"

	goats := []models.Goat{
		goatA,
		activeGoat("goat-b", "8000", day(2026, time.February, 1)),
		activeGoat("goat-c", "7500", day(2026, time.March, 5)),
	}
	expenses := []models.Expense{
		{ID: "e1", Amount: dec("1000"), Date: day(2026, time.April, 2), Category: models.ExpenseCategoryFeed, GoatID: "goat-a"},
		{ID: "e2", Amount: dec("2000"), Date: day(2026, time.April, 15), Category: models.ExpenseCategoryShelter},
	}
	health := []models.HealthEvent{
		{ID: "h1", GoatID: "goat-a", Cost: dec("500"), Date: day(2026, time.May, 3), Treatment: "deworming"},
	}
	caretakers := []models.Caretaker{
		{ID: "caretaker-1", Name: "Aissatou"},
	}

	return engine.NewSnapshot(goats, expenses, health, caretakers, model)
}

func emptySnapshot() *engine.Snapshot {
	return engine.NewSnapshot(nil, nil, nil, nil, percentageModel("20"))
}
