package services

import (
	"errors"
	"math"

	"github.com/binarybcc/aip-tracker/config"
	"github.com/binarybcc/aip-tracker/models"
)

// WaterSummary is the state of today's intake after a log entry.
type WaterSummary struct {
	TotalMl     int  `json:"total_ml"`
	GoalMl      int  `json:"goal_ml"`
	Percent     int  `json:"percent"`
	GoalReached bool `json:"goal_reached"`
}

// LogWater records one intake entry and evaluates the daily-goal
// achievement, which fires only on the entry that first crosses the goal.
func LogWater(userID uint, amountMl int, clock Clock) (*WaterSummary, []models.Achievement, error) {
	if amountMl <= 0 || amountMl > 1000 {
		return nil, nil, errors.New("amount_ml must be between 1 and 1000")
	}

	profile, err := GetProfile(userID)
	if err != nil {
		return nil, nil, errors.New("complete setup before logging")
	}

	now := clock.Today()
	today := DateOnly(now)

	before, err := waterTotal(userID, today)
	if err != nil {
		return nil, nil, err
	}

	entry := &models.WaterLog{
		UserID:   userID,
		LogDate:  today,
		LogTime:  now.Format("15:04:05"),
		AmountMl: amountMl,
	}
	if err := config.DB.Create(entry).Error; err != nil {
		return nil, nil, err
	}

	total := before + amountMl
	goal := profile.WaterGoalMl

	evt := Event{Type: EventWaterLogged, Date: today}
	granted, err := GrantAll(userID, EvaluateAchievements(evt, Aggregates{
		WaterTotalMlToday:  total,
		WaterGoalMl:        goal,
		WaterGoalMetBefore: before >= goal,
	}))
	if err != nil {
		return nil, granted, err
	}

	percent := 0
	if goal > 0 {
		percent = int(math.Min(100, math.Round(float64(total)/float64(goal)*100)))
	}
	return &WaterSummary{
		TotalMl:     total,
		GoalMl:      goal,
		Percent:     percent,
		GoalReached: total >= goal,
	}, granted, nil
}

// WaterToday reports the running total without logging.
func WaterToday(userID uint, clock Clock) (*WaterSummary, error) {
	profile, err := GetProfile(userID)
	if err != nil {
		return nil, err
	}
	today := DateOnly(clock.Today())
	total, err := waterTotal(userID, today)
	if err != nil {
		return nil, err
	}
	percent := 0
	if profile.WaterGoalMl > 0 {
		percent = int(math.Min(100, math.Round(float64(total)/float64(profile.WaterGoalMl)*100)))
	}
	return &WaterSummary{
		TotalMl:     total,
		GoalMl:      profile.WaterGoalMl,
		Percent:     percent,
		GoalReached: total >= profile.WaterGoalMl,
	}, nil
}

func waterTotal(userID uint, day any) (int, error) {
	var total int64
	err := config.DB.
		Model(&models.WaterLog{}).
		Where("user_id = ? AND log_date = ?", userID, day).
		Select("COALESCE(SUM(amount_ml), 0)").
		Scan(&total).Error
	return int(total), err
}
