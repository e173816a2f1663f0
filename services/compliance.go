package services

import "math"

// FoodComplianceRate is the percentage of window days on which at least
// minMealsPerDay meals were logged. Days absent from dailyMealCounts count
// as zero meals. Returns 0 for an empty window.
func FoodComplianceRate(dailyMealCounts map[string]int, minMealsPerDay, totalDaysInWindow int) int {
	if totalDaysInWindow <= 0 {
		return 0
	}
	met := 0
	for _, n := range dailyMealCounts {
		if n >= minMealsPerDay {
			met++
		}
	}
	return int(math.Round(float64(met) / float64(totalDaysInWindow) * 100))
}

// WaterComplianceRate is the percentage of window days whose total intake
// reached goalMl.
func WaterComplianceRate(dailyTotals map[string]int, goalMl, totalDaysInWindow int) int {
	if totalDaysInWindow <= 0 {
		return 0
	}
	met := 0
	for _, total := range dailyTotals {
		if total >= goalMl {
			met++
		}
	}
	return int(math.Round(float64(met) / float64(totalDaysInWindow) * 100))
}

// SeverityEntry is a severity observation with the number of underlying logs
// it represents.
type SeverityEntry struct {
	Severity float64
	Weight   float64
}

// AverageSeverity is the weight-carried mean across entries. The overall
// figure must be computed from all entries, not from per-category averages:
// averaging averages would overweight sparsely-logged categories. Returns 0
// for empty input.
func AverageSeverity(entries []SeverityEntry) float64 {
	var sum, weight float64
	for _, e := range entries {
		sum += e.Severity * e.Weight
		weight += e.Weight
	}
	if weight == 0 {
		return 0
	}
	return round2(sum / weight)
}

// Trend is the verdict on a chronological severity series.
type Trend string

const (
	TrendImproving         Trend = "improving"
	TrendStableOrWorsening Trend = "stable_or_worsening"
	TrendInsufficient      Trend = "insufficient"
)

// TrendDirection splits the chronologically ascending series into halves by
// index and compares their means. Each half needs at least two points for a
// verdict.
func TrendDirection(series []float64) Trend {
	half := len(series) / 2
	if half < 2 {
		return TrendInsufficient
	}
	if mean(series[half:]) < mean(series[:half]) {
		return TrendImproving
	}
	return TrendStableOrWorsening
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
