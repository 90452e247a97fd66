package engine_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/herdbook/internal/domain/models"
	"github.com/mamadbah2/herdbook/internal/engine"
)

func TestMonthlySeriesAlwaysFullWindow(t *testing.T) {
	series := emptySnapshot().MonthlySeries(day(2026, time.August, 27), 12)
	require.Len(t, series, 12)

	for _, b := range series {
		require.True(t, b.Investment.IsZero())
		require.True(t, b.Revenue.IsZero())
		require.True(t, b.Expenses.IsZero())
		require.True(t, b.Profit.IsZero())
		require.True(t, b.CumulativeProfit.IsZero())
	}

	require.Equal(t, "Sep", series[0].Label)
	require.Equal(t, 2025, series[0].Year)
	require.Equal(t, "Aug", series[11].Label)
	require.Equal(t, 2026, series[11].Year)
}

func TestMonthlySeriesChronologicalWithoutDuplicates(t *testing.T) {
	series := scenarioSnapshot(percentageModel("20")).MonthlySeries(day(2026, time.June, 30), 12)

	seen := map[string]bool{}
	var prev time.Time
	for i, b := range series {
		monthStart := time.Date(b.Year, b.Month, 1, 0, 0, 0, 0, time.UTC)
		if i > 0 {
			require.True(t, monthStart.After(prev), "buckets must be strictly increasing")
		}
		key := monthStart.Format("2006-01")
		require.False(t, seen[key], "duplicate bucket %s", key)
		seen[key] = true
		prev = monthStart
	}
}

func TestMonthlySeriesBucketsEventsByCalendarMonth(t *testing.T) {
	s := scenarioSnapshot(percentageModel("20"))
	series := s.MonthlySeries(day(2026, time.June, 30), 6)
	require.Len(t, series, 6)

	byLabel := map[string]engine.MonthBucket{}
	for _, b := range series {
		byLabel[b.Label] = b
	}

	// January: goat-a purchased for 10000.
	require.Equal(t, "10000", byLabel["Jan"].Investment.String())
	// April: 1000 specific + 2000 shared expenses booked.
	require.Equal(t, "3000", byLabel["Apr"].Expenses.String())
	// May: the 500 health event counts as an expense.
	require.Equal(t, "500", byLabel["May"].Expenses.String())
	// June: goat-a sold for 18000.
	require.Equal(t, "18000", byLabel["Jun"].Revenue.String())
	require.Equal(t, "18000", byLabel["Jun"].Profit.String())

	// Cumulative values keep the running totals from history start.
	require.Equal(t, "25500", byLabel["Jun"].CumulativeInvestment.String())
	require.Equal(t, "3500", byLabel["Jun"].CumulativeExpenses.String())
	require.Equal(t, "18000", byLabel["Jun"].CumulativeRevenue.String())
	require.Equal(t, "-11000", byLabel["Jun"].CumulativeProfit.String())
}

func TestMonthlySeriesCumulativeIncludesPreWindowHistory(t *testing.T) {
	// A purchase two years before the window starts.
	goats := []models.Goat{activeGoat("g1", "6000", day(2024, time.March, 10))}
	s := engine.NewSnapshot(goats, nil, nil, nil, percentageModel("10"))

	series := s.MonthlySeries(day(2026, time.August, 1), 12)
	first := series[0]
	require.True(t, first.Investment.IsZero(), "period value excludes pre-window history")
	require.Equal(t, "6000", first.CumulativeInvestment.String())
}

func TestMonthlySeriesPeriodAndCumulativeAgree(t *testing.T) {
	s := scenarioSnapshot(percentageModel("20"))
	series := s.MonthlySeries(day(2026, time.August, 27), 12)

	// Summing period revenue across the window must equal the growth of the
	// cumulative series over the same window.
	periodSum := decimal.Zero
	for _, b := range series {
		periodSum = periodSum.Add(b.Revenue)
	}
	first := series[0]
	last := series[len(series)-1]
	growth := last.CumulativeRevenue.Sub(first.CumulativeRevenue.Sub(first.Revenue))
	require.True(t, periodSum.Equal(growth), "period sum %s vs cumulative growth %s", periodSum, growth)
}

func TestMonthlySeriesWindowClamping(t *testing.T) {
	s := emptySnapshot()
	require.Len(t, s.MonthlySeries(day(2026, time.August, 27), 0), 12)
	require.Len(t, s.MonthlySeries(day(2026, time.August, 27), -3), 12)
	require.Len(t, s.MonthlySeries(day(2026, time.August, 27), 24), 12)
	require.Len(t, s.MonthlySeries(day(2026, time.August, 27), 6), 6)
}

func TestMonthlySeriesDeterministic(t *testing.T) {
	s := scenarioSnapshot(percentageModel("20"))
	ref := day(2026, time.July, 15)
	require.Equal(t, s.MonthlySeries(ref, 12), s.MonthlySeries(ref, 12))
}
