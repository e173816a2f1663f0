package services

import (
	"encoding/json"
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/binarybcc/aip-tracker/config"
	"github.com/binarybcc/aip-tracker/models"

	"gorm.io/gorm"
)

type SetupInput struct {
	StartDate             string              `json:"start_date"` // YYYY-MM-DD
	TargetEliminationDays int                 `json:"target_elimination_days"`
	WaterGoalMl           int                 `json:"water_goal_ml"`
	HealthGoals           string              `json:"health_goals"`
	MotivationStyle       string              `json:"motivation_style"`
	BaselineSymptoms      map[string][]string `json:"baseline_symptoms"`
	ReminderPreferences   map[string]any      `json:"reminder_preferences"`
}

// CompleteSetup creates the user's protocol profile and moves them straight
// into the elimination phase, the one transition triggered by finishing
// onboarding. Setup is one-shot: re-running it would reset the phase, so an
// existing profile fails with ErrProfileExists. Earns the setup achievement.
func CompleteSetup(userID uint, in SetupInput, clock Clock) (*models.ProtocolProfile, []models.Achievement, error) {
	profile, err := buildProfile(userID, in, clock.Today())
	if err != nil {
		return nil, nil, err
	}

	var existing models.ProtocolProfile
	err = config.DB.Where("user_id = ?", userID).First(&existing).Error
	if err == nil {
		return nil, nil, ErrProfileExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	if err := config.DB.Create(&profile).Error; err != nil {
		// the user_id unique index backstops concurrent setup requests
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, ErrProfileExists
		}
		return nil, nil, err
	}

	evt := Event{Type: EventSetupCompleted, Date: clock.Today()}
	granted, err := GrantAll(userID, EvaluateAchievements(evt, Aggregates{}))
	if err != nil {
		return &profile, granted, err
	}
	return &profile, granted, nil
}

// buildProfile validates the setup input and assembles the profile row.
// Future start dates are rejected so every stored profile evaluates cleanly
// from day zero.
func buildProfile(userID uint, in SetupInput, today time.Time) (models.ProtocolProfile, error) {
	start, err := time.Parse("2006-01-02", in.StartDate)
	if err != nil {
		return models.ProtocolProfile{}, errors.New("invalid start_date, expected YYYY-MM-DD")
	}
	if DateKey(start) > DateKey(today) {
		return models.ProtocolProfile{}, errors.New("start_date cannot be in the future")
	}
	if in.TargetEliminationDays <= 0 {
		return models.ProtocolProfile{}, errors.New("target_elimination_days must be positive")
	}
	if in.WaterGoalMl <= 0 {
		return models.ProtocolProfile{}, errors.New("water_goal_ml must be positive")
	}

	baseline, err := json.Marshal(in.BaselineSymptoms)
	if err != nil {
		return models.ProtocolProfile{}, err
	}
	reminders, err := json.Marshal(in.ReminderPreferences)
	if err != nil {
		return models.ProtocolProfile{}, err
	}

	return models.ProtocolProfile{
		UserID:                userID,
		CurrentPhase:          models.PhaseElimination,
		StartDate:             start,
		TargetEliminationDays: in.TargetEliminationDays,
		WaterGoalMl:           in.WaterGoalMl,
		HealthGoals:           in.HealthGoals,
		MotivationStyle:       in.MotivationStyle,
		BaselineSymptoms:      baseline,
		ReminderPreferences:   reminders,
	}, nil
}

// GetProfile loads the user's protocol profile; gorm.ErrRecordNotFound when
// setup has not completed.
func GetProfile(userID uint) (*models.ProtocolProfile, error) {
	var profile models.ProtocolProfile
	err := config.DB.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Dashboard is the landing summary: phase position, streaks, recent grants.
type Dashboard struct {
	Phase               PhaseState           `json:"phase"`
	ProgressPercent     int                  `json:"progress_percent"`
	FoodStreak          int                  `json:"food_streak"`
	WaterStreak         int                  `json:"water_streak"`
	TotalPoints         int                  `json:"total_points"`
	RecentAchievements  []models.Achievement `json:"recent_achievements"`
	MotivationalMessage string               `json:"motivational_message"`
}

func GetDashboard(userID uint, clock Clock) (*Dashboard, error) {
	profile, err := GetProfile(userID)
	if err != nil {
		return nil, err
	}
	today := clock.Today()

	state, err := EvaluatePhase(*profile, today)
	if err != nil {
		return nil, err
	}

	foodDates, err := distinctLogDates(config.DB, &models.FoodLog{}, userID)
	if err != nil {
		return nil, err
	}
	waterDates, err := distinctLogDates(config.DB, &models.WaterLog{}, userID)
	if err != nil {
		return nil, err
	}

	recent, err := RecentAchievements(userID, 5)
	if err != nil {
		return nil, err
	}
	points, err := TotalPoints(userID)
	if err != nil {
		return nil, err
	}

	progress := 0
	if profile.TargetEliminationDays > 0 {
		progress = int(math.Min(100, math.Round(float64(state.DaysElapsed)/float64(profile.TargetEliminationDays)*100)))
	}

	return &Dashboard{
		Phase:               state,
		ProgressPercent:     progress,
		FoodStreak:          ComputeStreak(foodDates, today),
		WaterStreak:         ComputeStreak(waterDates, today),
		TotalPoints:         points,
		RecentAchievements:  recent,
		MotivationalMessage: motivationalMessage(profile.CurrentPhase),
	}, nil
}

// distinctLogDates pulls the distinct log dates for a log model, bounded to
// the streak window so the dashboard query stays small.
func distinctLogDates(db *gorm.DB, model any, userID uint) ([]time.Time, error) {
	var dates []time.Time
	err := db.
		Model(model).
		Distinct("log_date").
		Where("user_id = ?", userID).
		Order("log_date DESC").
		Limit(streakWindowDays).
		Pluck("log_date", &dates).Error
	return dates, err
}

var motivationalMessages = map[models.Phase][]string{
	models.PhaseSetup: {
		"Welcome to your AIP journey!",
		"Every step forward is progress.",
		"You've got this!",
	},
	models.PhaseElimination: {
		"Stay strong during elimination!",
		"Your body is healing with every meal choice.",
		"Progress, not perfection.",
		"Each compliant day brings you closer to feeling better.",
	},
	models.PhaseReintroduction: {
		"Discovery phase - you're learning so much!",
		"Every test teaches you about your body.",
		"You're building your personalized healing plan.",
	},
	models.PhaseMaintenance: {
		"You've found your balance!",
		"Consistency is your superpower.",
		"You've transformed your health!",
	},
}

func motivationalMessage(phase models.Phase) string {
	msgs, ok := motivationalMessages[phase]
	if !ok {
		msgs = motivationalMessages[models.PhaseSetup]
	}
	return msgs[rand.Intn(len(msgs))]
}
