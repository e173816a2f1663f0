package services

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/binarybcc/aip-tracker/models"

	"gorm.io/gorm"
)

type ProgressService struct{ db *gorm.DB }

func NewProgressService(db *gorm.DB) *ProgressService { return &ProgressService{db: db} }

// minMealsForCompliance is the threshold for a day to count as compliant
// with food logging.
const minMealsForCompliance = 3

// ProgressReport is the windowed analytics view.
type ProgressReport struct {
	Range struct {
		From string `json:"from"`
		To   string `json:"to"`
	} `json:"range"`

	Phase       models.Phase `json:"phase"`
	DaysElapsed int          `json:"days_elapsed"`

	FoodComplianceRate  int `json:"food_compliance_rate"`
	WaterComplianceRate int `json:"water_compliance_rate"`

	AvgSeverity        float64            `json:"avg_severity"`
	SeverityByCategory map[string]float64 `json:"severity_by_category"`
	SymptomTrend       Trend              `json:"symptom_trend"`
	SymptomLogCount    int                `json:"symptom_log_count"`

	FoodStreak  int `json:"food_streak"`
	WaterStreak int `json:"water_streak"`

	TestsCompleted int `json:"tests_completed"`
	TestsTolerated int `json:"tests_tolerated"`
	TestsReacted   int `json:"tests_reacted"`
}

// windowLength counts inclusive calendar days between two date-only values.
// Rounding absorbs the 23- and 25-hour midnight spans around DST changes.
func windowLength(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours()/24)) + 1
}

// Report aggregates logs over the trailing window. periodDays <= 0 means the
// whole history since the protocol start date.
func (s *ProgressService) Report(ctx context.Context, userID uint, periodDays int, clock Clock) (*ProgressReport, error) {
	var profile models.ProtocolProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}

	today := DateOnly(clock.Today())
	from := DateOnly(profile.StartDate)
	if periodDays > 0 {
		if windowed := today.AddDate(0, 0, -(periodDays - 1)); windowed.After(from) {
			from = windowed
		}
	}
	windowDays := windowLength(from, today)

	out := &ProgressReport{SeverityByCategory: map[string]float64{}}
	out.Range.From = DateKey(from)
	out.Range.To = DateKey(today)
	out.Phase = profile.CurrentPhase
	if days, err := DaysElapsed(profile, today); err == nil {
		out.DaysElapsed = days
	}

	// food logging consistency
	type mealRow struct {
		LogDate time.Time
		Meals   int
	}
	var mealRows []mealRow
	err := s.db.WithContext(ctx).
		Model(&models.FoodLog{}).
		Select("log_date, COUNT(DISTINCT meal_type) AS meals").
		Where("user_id = ? AND log_date BETWEEN ? AND ?", userID, from, today).
		Group("log_date").
		Scan(&mealRows).Error
	if err != nil {
		return nil, err
	}
	mealCounts := make(map[string]int, len(mealRows))
	foodDates := make([]time.Time, 0, len(mealRows))
	for _, r := range mealRows {
		mealCounts[DateKey(r.LogDate)] = r.Meals
		foodDates = append(foodDates, r.LogDate)
	}
	out.FoodComplianceRate = FoodComplianceRate(mealCounts, minMealsForCompliance, windowDays)
	out.FoodStreak = ComputeStreak(foodDates, today)

	// water goal attainment
	type waterRow struct {
		LogDate time.Time
		Total   int
	}
	var waterRows []waterRow
	err = s.db.WithContext(ctx).
		Model(&models.WaterLog{}).
		Select("log_date, SUM(amount_ml) AS total").
		Where("user_id = ? AND log_date BETWEEN ? AND ?", userID, from, today).
		Group("log_date").
		Scan(&waterRows).Error
	if err != nil {
		return nil, err
	}
	waterTotals := make(map[string]int, len(waterRows))
	waterDates := make([]time.Time, 0, len(waterRows))
	for _, r := range waterRows {
		waterTotals[DateKey(r.LogDate)] = r.Total
		waterDates = append(waterDates, r.LogDate)
	}
	out.WaterComplianceRate = WaterComplianceRate(waterTotals, profile.WaterGoalMl, windowDays)
	out.WaterStreak = ComputeStreak(waterDates, today)

	// symptom severity, grouped per (day, category) with log counts as
	// weights so sparse categories don't skew the overall mean
	type sevRow struct {
		LogDate  time.Time
		Category string
		AvgSev   float64
		Count    int
	}
	var sevRows []sevRow
	err = s.db.WithContext(ctx).
		Model(&models.SymptomLog{}).
		Select("log_date, category, AVG(severity) AS avg_sev, COUNT(*) AS count").
		Where("user_id = ? AND log_date BETWEEN ? AND ?", userID, from, today).
		Group("log_date, category").
		Order("log_date ASC").
		Scan(&sevRows).Error
	if err != nil {
		return nil, err
	}

	all := make([]SeverityEntry, 0, len(sevRows))
	byCategory := map[string][]SeverityEntry{}
	type dayAcc struct{ sum, weight float64 }
	dayIndex := map[string]*dayAcc{}
	var dayKeys []string
	for _, r := range sevRows {
		entry := SeverityEntry{Severity: r.AvgSev, Weight: float64(r.Count)}
		all = append(all, entry)
		byCategory[r.Category] = append(byCategory[r.Category], entry)
		out.SymptomLogCount += r.Count

		key := DateKey(r.LogDate)
		if dayIndex[key] == nil {
			dayIndex[key] = &dayAcc{}
			dayKeys = append(dayKeys, key)
		}
		dayIndex[key].sum += r.AvgSev * float64(r.Count)
		dayIndex[key].weight += float64(r.Count)
	}
	out.AvgSeverity = AverageSeverity(all)
	for cat, entries := range byCategory {
		out.SeverityByCategory[cat] = AverageSeverity(entries)
	}

	sort.Strings(dayKeys)
	series := make([]float64, 0, len(dayKeys))
	for _, key := range dayKeys {
		acc := dayIndex[key]
		series = append(series, acc.sum/acc.weight)
	}
	out.SymptomTrend = TrendDirection(series)

	// reintroduction outcomes (whole history, not windowed)
	var tests []models.ReintroductionTest
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.TestCompleted).
		Find(&tests).Error
	if err != nil {
		return nil, err
	}
	out.TestsCompleted = len(tests)
	for _, t := range tests {
		if t.FinalResult == nil {
			continue
		}
		switch *t.FinalResult {
		case models.ResultTolerated:
			out.TestsTolerated++
		case models.ResultNotTolerated:
			out.TestsReacted++
		}
	}

	return out, nil
}
