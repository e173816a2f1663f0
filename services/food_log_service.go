package services

import (
	"errors"
	"strings"
	"time"

	"github.com/binarybcc/aip-tracker/config"
	"github.com/binarybcc/aip-tracker/models"
	"github.com/binarybcc/aip-tracker/utils"
)

var mealTypes = map[string]bool{
	"breakfast": true,
	"lunch":     true,
	"dinner":    true,
	"snack":     true,
}

type FoodLogInput struct {
	FoodID      uint   `json:"food_id"`
	MealType    string `json:"meal_type"`
	PortionSize string `json:"portion_size"`
	LogDate     string `json:"log_date"` // YYYY-MM-DD, defaults to today
	Notes       string `json:"notes"`
}

// LogFood records a food entry, flags protocol violations for the user's
// current phase, and evaluates the complete-day achievement.
func LogFood(userID uint, in FoodLogInput, clock Clock) (*models.FoodLog, []models.Achievement, []utils.Warning, error) {
	if !mealTypes[in.MealType] {
		return nil, nil, nil, errors.New("meal_type must be breakfast, lunch, dinner or snack")
	}

	var food models.FoodItem
	if err := config.DB.First(&food, in.FoodID).Error; err != nil {
		return nil, nil, nil, errors.New("unknown food")
	}

	profile, err := GetProfile(userID)
	if err != nil {
		return nil, nil, nil, errors.New("complete setup before logging")
	}

	now := clock.Today()
	logDate := DateOnly(now)
	if in.LogDate != "" {
		d, err := time.Parse("2006-01-02", in.LogDate)
		if err != nil {
			return nil, nil, nil, errors.New("invalid log_date, expected YYYY-MM-DD")
		}
		logDate = DateOnly(d)
	}

	tolerated, err := toleratedFoodIDs(userID)
	if err != nil {
		return nil, nil, nil, err
	}
	warnings := utils.AssessFoodForPhase(food, profile.CurrentPhase, tolerated)

	msgs := make([]string, 0, len(warnings))
	for _, w := range warnings {
		msgs = append(msgs, w.Message)
	}

	entry := &models.FoodLog{
		UserID:      userID,
		FoodID:      in.FoodID,
		MealType:    in.MealType,
		PortionSize: in.PortionSize,
		LogDate:     logDate,
		LogTime:     now.Format("15:04:05"),
		Notes:       in.Notes,
		Warnings:    strings.Join(msgs, "; "),
	}
	if err := config.DB.Create(entry).Error; err != nil {
		return nil, nil, nil, err
	}

	var mealCount int64
	err = config.DB.
		Model(&models.FoodLog{}).
		Where("user_id = ? AND log_date = ?", userID, logDate).
		Distinct("meal_type").
		Count(&mealCount).Error
	if err != nil {
		return entry, nil, warnings, err
	}

	evt := Event{Type: EventFoodLogged, Date: logDate}
	granted, err := GrantAll(userID, EvaluateAchievements(evt, Aggregates{
		MealTypesLoggedToday: int(mealCount),
	}))
	return entry, granted, warnings, err
}

// ListFoodLogs returns a day's entries, newest first.
func ListFoodLogs(userID uint, date time.Time) ([]models.FoodLog, error) {
	var logs []models.FoodLog
	err := config.DB.
		Where("user_id = ? AND log_date = ?", userID, DateOnly(date)).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}

// toleratedFoodIDs collects foods cleared by a completed tolerated test.
func toleratedFoodIDs(userID uint) (map[uint]bool, error) {
	var ids []uint
	err := config.DB.
		Model(&models.ReintroductionTest{}).
		Where("user_id = ? AND status = ? AND final_result = ?",
			userID, models.TestCompleted, models.ResultTolerated).
		Pluck("food_id", &ids).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}
