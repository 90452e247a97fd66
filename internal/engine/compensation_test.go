package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/herdbook/internal/domain/models"
	"github.com/mamadbah2/herdbook/internal/engine"
)

func TestCaretakerEarningsPercentageReferenceScenario(t *testing.T) {
	s := scenarioSnapshot(percentageModel("20"))

	e, err := s.CaretakerEarnings("caretaker-1")
	require.NoError(t, err)
	require.Equal(t, 1, e.GoatsAssigned)
	require.Equal(t, 1, e.GoatsManaged)
	// 20% of the 5500 net profit, after all allocated costs.
	require.Equal(t, "1100", e.Total.String())
	require.Equal(t, "1100", e.AveragePerSale.String())
}

func TestCaretakerEarningsFixedPerSaleIgnoresPrices(t *testing.T) {
	g1 := soldGoat("g1", "10000", "18000", day(2026, time.January, 1), day(2026, time.April, 1))
	g1.CaretakerID = "c1"
	g2 := soldGoat("g2", "9000", "4000", day(2026, time.January, 1), day(2026, time.May, 1)) // sold at a loss
	g2.CaretakerID = "c1"
	g3 := activeGoat("g3", "5000", day(2026, time.February, 1))
	g3.CaretakerID = "c1"

	model := models.PaymentModel{Type: models.PaymentFixedPerSale, Amount: dec("750")}
	s := engine.NewSnapshot([]models.Goat{g1, g2, g3}, nil, nil, []models.Caretaker{{ID: "c1", Name: "Mariama"}}, model)

	e, err := s.CaretakerEarnings("c1")
	require.NoError(t, err)
	require.Equal(t, 3, e.GoatsAssigned)
	require.Equal(t, 2, e.GoatsManaged)
	// Strictly amount x managed sales, loss or profit alike.
	require.Equal(t, "1500", e.Total.String())
	require.Equal(t, "750", e.AveragePerSale.String())
}

func TestCaretakerEarningsMonthlyDuration(t *testing.T) {
	model := models.PaymentModel{Type: models.PaymentMonthlyDuration, Amount: dec("200")}

	longHold := soldGoat("g1", "100", "200", day(2026, time.January, 1), day(2026, time.April, 6)) // 95 days -> 3 months
	longHold.CaretakerID = "c1"
	quickFlip := soldGoat("g2", "100", "200", day(2026, time.March, 1), day(2026, time.March, 11)) // 10 days -> floor of 1
	quickFlip.CaretakerID = "c1"
	noPurchaseDate := soldGoat("g3", "100", "200", time.Time{}, day(2026, time.May, 1)) // contributes zero
	noPurchaseDate.CaretakerID = "c1"

	s := engine.NewSnapshot([]models.Goat{longHold, quickFlip, noPurchaseDate}, nil, nil, []models.Caretaker{{ID: "c1"}}, model)

	e, err := s.CaretakerEarnings("c1")
	require.NoError(t, err)
	require.Equal(t, 3, e.GoatsManaged)
	// 3 months + 1 month + 0.
	require.Equal(t, "800", e.Total.String())
}

func TestCaretakerEarningsZeroManagedGoats(t *testing.T) {
	s := engine.NewSnapshot(nil, nil, nil, []models.Caretaker{{ID: "c1", Name: "Oumar"}}, percentageModel("20"))

	e, err := s.CaretakerEarnings("c1")
	require.NoError(t, err)
	require.Zero(t, e.GoatsManaged)
	require.True(t, e.Total.IsZero())
	require.True(t, e.AveragePerSale.IsZero())
}

func TestCaretakerEarningsUnknownModel(t *testing.T) {
	g := soldGoat("g1", "100", "200", day(2026, time.January, 1), day(2026, time.April, 1))
	g.CaretakerID = "c1"
	model := models.PaymentModel{Type: "barter", Amount: dec("1")}
	s := engine.NewSnapshot([]models.Goat{g}, nil, nil, []models.Caretaker{{ID: "c1"}}, model)

	_, err := s.CaretakerEarnings("c1")
	require.ErrorIs(t, err, engine.ErrUnknownPaymentModel)
}

func TestOwnerEarningsDeductsOnlyPercentageShares(t *testing.T) {
	s := scenarioSnapshot(percentageModel("20"))
	sum, err := s.PortfolioSummary()
	require.NoError(t, err)

	// Net profit minus the 1100 percentage share.
	require.Equal(t, sum.NetProfit.Sub(dec("1100")).String(), sum.OwnerEarnings.String())

	for _, modelType := range []models.PaymentModelType{models.PaymentFixedPerSale, models.PaymentMonthlyDuration} {
		s := scenarioSnapshot(models.PaymentModel{Type: modelType, Amount: dec("300")})
		sum, err := s.PortfolioSummary()
		require.NoError(t, err)
		// Fixed and monthly payouts live in recorded expenses; the residual
		// equals net profit with no second deduction.
		require.Equal(t, sum.NetProfit.String(), sum.OwnerEarnings.String(), "model %s", modelType)
	}
}

func TestAllCaretakerEarningsPreservesStoreOrder(t *testing.T) {
	g := soldGoat("g1", "100", "400", day(2026, time.January, 1), day(2026, time.April, 1))
	g.CaretakerID = "c2"
	caretakers := []models.Caretaker{{ID: "c1", Name: "A"}, {ID: "c2", Name: "B"}}
	s := engine.NewSnapshot([]models.Goat{g}, nil, nil, caretakers, models.PaymentModel{Type: models.PaymentFixedPerSale, Amount: dec("50")})

	all, err := s.AllCaretakerEarnings()
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "c1", all[0].CaretakerID)
	require.True(t, all[0].Total.IsZero())
	require.Equal(t, "50", all[1].Total.String())
}
