package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/herdbook/internal/domain/models"
	"github.com/mamadbah2/herdbook/internal/engine"
)

func TestAllocatedCostReferenceScenario(t *testing.T) {
	s := scenarioSnapshot(percentageModel("20"))

	// 1000 specific + 2000/2 shared + 500 health.
	require.Equal(t, "2500", s.AllocatedCost("goat-a").String())
}

func TestAllocatedCostNoSharedPortionWhenAllExpensesTagged(t *testing.T) {
	goats := []models.Goat{
		activeGoat("g1", "100", day(2026, time.January, 1)),
		activeGoat("g2", "100", day(2026, time.January, 1)),
	}
	expenses := []models.Expense{
		{ID: "e1", Amount: dec("40"), Date: day(2026, time.March, 1), GoatID: "g1"},
		{ID: "e2", Amount: dec("60"), Date: day(2026, time.March, 2), GoatID: "g2"},
	}
	s := engine.NewSnapshot(goats, expenses, nil, nil, percentageModel("10"))

	require.Equal(t, "40", s.AllocatedCost("g1").String())
	require.Equal(t, "60", s.AllocatedCost("g2").String())
}

func TestAllocatedCostEmptyCollectionsYieldZero(t *testing.T) {
	s := emptySnapshot()
	require.True(t, s.AllocatedCost("anything").IsZero())
}

func TestAllocatedCostActivePopulationFloor(t *testing.T) {
	// No active goats at all: the shared pool divides by one, not by zero.
	goats := []models.Goat{
		soldGoat("g1", "100", "150", day(2026, time.January, 1), day(2026, time.April, 1)),
	}
	expenses := []models.Expense{
		{ID: "e1", Amount: dec("2000"), Date: day(2026, time.February, 1)},
	}
	s := engine.NewSnapshot(goats, expenses, nil, nil, percentageModel("10"))

	require.Equal(t, "2000", s.AllocatedCost("g1").String())
}

func TestAllocatedCostNeverDecreasesWhenRecordsAdded(t *testing.T) {
	goats := []models.Goat{
		activeGoat("g1", "100", day(2026, time.January, 1)),
		activeGoat("g2", "100", day(2026, time.January, 1)),
	}
	expenses := []models.Expense{
		{ID: "e1", Amount: dec("50"), Date: day(2026, time.February, 1), GoatID: "g1"},
	}

	base := engine.NewSnapshot(goats, expenses, nil, nil, percentageModel("10")).AllocatedCost("g1")

	additions := []models.Expense{
		{ID: "e2", Amount: dec("25"), Date: day(2026, time.February, 2), GoatID: "g1"}, // specific
		{ID: "e3", Amount: dec("30"), Date: day(2026, time.February, 3)},               // shared
	}
	for _, extra := range additions {
		grown := engine.NewSnapshot(goats, append(expenses, extra), nil, nil, percentageModel("10")).AllocatedCost("g1")
		require.True(t, grown.GreaterThanOrEqual(base), "adding %s expense must not lower cost", extra.ID)
	}

	health := []models.HealthEvent{{ID: "h1", GoatID: "g1", Cost: dec("10"), Date: day(2026, time.February, 4)}}
	withHealth := engine.NewSnapshot(goats, expenses, health, nil, percentageModel("10")).AllocatedCost("g1")
	require.True(t, withHealth.GreaterThanOrEqual(base), "adding a health event must not lower cost")
}

func TestSharedShareFrozenPerSnapshot(t *testing.T) {
	s := scenarioSnapshot(percentageModel("20"))

	// Same snapshot, same denominator: repeated calls agree exactly.
	first := s.AllocatedCost("goat-b")
	second := s.AllocatedCost("goat-b")
	require.True(t, first.Equal(second))
	require.Equal(t, "1000", first.String())
}
