package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoodComplianceRate(t *testing.T) {
	mealsByDay := map[string]int{
		"2024-01-01": 4,
		"2024-01-02": 2,
		"2024-01-03": 3,
	}
	assert.Equal(t, 67, FoodComplianceRate(mealsByDay, 3, 3))

	// days with no rows at all still count against the window
	assert.Equal(t, 29, FoodComplianceRate(mealsByDay, 3, 7))

	assert.Equal(t, 0, FoodComplianceRate(nil, 3, 0))
	assert.Equal(t, 0, FoodComplianceRate(map[string]int{}, 3, 5))
}

func TestWaterComplianceRate(t *testing.T) {
	totals := map[string]int{
		"2024-01-01": 2200,
		"2024-01-02": 2000,
		"2024-01-03": 1500,
		"2024-01-04": 900,
	}
	assert.Equal(t, 50, WaterComplianceRate(totals, 2000, 4))
	assert.Equal(t, 0, WaterComplianceRate(totals, 2000, 0))
	assert.Equal(t, 100, WaterComplianceRate(map[string]int{"2024-01-01": 500}, 500, 1))
}

func TestAverageSeverityIsWeighted(t *testing.T) {
	// two entries, one with 5x the weight of the other: the heavy
	// entry must dominate, not split the difference
	entries := []SeverityEntry{
		{Severity: 2, Weight: 5},
		{Severity: 8, Weight: 1},
	}
	assert.InDelta(t, 3.0, AverageSeverity(entries), 0.001)
	assert.NotEqual(t, 5.0, AverageSeverity(entries))

	assert.Equal(t, 0.0, AverageSeverity(nil))
	assert.Equal(t, 0.0, AverageSeverity([]SeverityEntry{{Severity: 3, Weight: 0}}))

	single := []SeverityEntry{{Severity: 2.5, Weight: 3}}
	assert.InDelta(t, 2.5, AverageSeverity(single), 0.001)
}

func TestTrendDirection(t *testing.T) {
	assert.Equal(t, TrendImproving, TrendDirection([]float64{5, 4, 2, 1}))
	assert.Equal(t, TrendStableOrWorsening, TrendDirection([]float64{1, 1, 2, 3}))
	assert.Equal(t, TrendStableOrWorsening, TrendDirection([]float64{2, 2, 2, 2}))

	// fewer than two points per half is not enough signal
	assert.Equal(t, TrendInsufficient, TrendDirection([]float64{5, 1}))
	assert.Equal(t, TrendInsufficient, TrendDirection([]float64{5, 3, 1}))
	assert.Equal(t, TrendInsufficient, TrendDirection(nil))

	// odd length: middle point goes to the second half
	assert.Equal(t, TrendImproving, TrendDirection([]float64{5, 5, 2, 2, 2}))
}
