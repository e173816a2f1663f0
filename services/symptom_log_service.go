package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/binarybcc/aip-tracker/config"
	"github.com/binarybcc/aip-tracker/models"
	"github.com/binarybcc/aip-tracker/utils"

	"gorm.io/gorm"
)

type SymptomEntry struct {
	Category      string  `json:"category"`
	Symptom       string  `json:"symptom"`
	Severity      int     `json:"severity"`
	DurationHours float64 `json:"duration_hours"`
	Notes         string  `json:"notes"`
	Triggers      string  `json:"triggers"`
}

// LogSymptoms stores a batch of observations for today and evaluates the
// weekly-tracking achievement against the consecutive-day symptom streak.
func LogSymptoms(userID uint, entries []SymptomEntry, generalNotes string, clock Clock) (int, []models.Achievement, error) {
	if len(entries) == 0 && generalNotes == "" {
		return 0, nil, errors.New("nothing to log")
	}
	for _, e := range entries {
		if !utils.IsValidSymptomCategory(e.Category) {
			return 0, nil, fmt.Errorf("unknown symptom category %q", e.Category)
		}
		if !utils.IsValidSeverity(e.Severity) {
			return 0, nil, fmt.Errorf("severity must be 0-4, got %d", e.Severity)
		}
		if e.Symptom == "" {
			return 0, nil, errors.New("symptom name required")
		}
	}

	now := clock.Today()
	today := DateOnly(now)
	logTime := now.Format("15:04:05")

	logged := 0
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		for _, e := range entries {
			row := models.SymptomLog{
				UserID:        userID,
				LogDate:       today,
				LogTime:       logTime,
				Category:      e.Category,
				Symptom:       e.Symptom,
				Severity:      e.Severity,
				DurationHours: e.DurationHours,
				Notes:         e.Notes,
				Triggers:      e.Triggers,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			logged++
		}
		if generalNotes != "" {
			row := models.SymptomLog{
				UserID:   userID,
				LogDate:  today,
				LogTime:  logTime,
				Category: "other",
				Symptom:  "Daily Notes",
				Severity: 1,
				Notes:    generalNotes,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}

	dates, err := distinctLogDates(config.DB, &models.SymptomLog{}, userID)
	if err != nil {
		return logged, nil, err
	}

	evt := Event{Type: EventSymptomLogged, Date: today}
	granted, err := GrantAll(userID, EvaluateAchievements(evt, Aggregates{
		SymptomStreakDays: ComputeStreak(dates, today),
	}))
	return logged, granted, err
}

// ListSymptomLogs returns a day's observations, newest first.
func ListSymptomLogs(userID uint, date time.Time) ([]models.SymptomLog, error) {
	var logs []models.SymptomLog
	err := config.DB.
		Where("user_id = ? AND log_date = ?", userID, DateOnly(date)).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}
