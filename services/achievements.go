package services

import (
	"time"

	"github.com/binarybcc/aip-tracker/models"
)

// EventType of a user action that can earn achievements.
type EventType string

const (
	EventFoodLogged        EventType = "food_logged"
	EventWaterLogged       EventType = "water_logged"
	EventSymptomLogged     EventType = "symptom_logged"
	EventTestCompleted     EventType = "test_completed"
	EventPhaseTransitioned EventType = "phase_transitioned"
	EventSetupCompleted    EventType = "setup_completed"
)

// Event is a qualifying action at a point in time.
type Event struct {
	Type EventType
	Date time.Time
}

// Aggregates carries the precomputed facts rule predicates read. Callers
// populate only the fields relevant to the event type.
type Aggregates struct {
	MealTypesLoggedToday int
	SymptomStreakDays    int
	WaterTotalMlToday    int
	WaterGoalMl          int
	WaterGoalMetBefore   bool // goal already reached before this entry
	NewPhase             models.Phase
	TestResult           models.TestResult
}

// Candidate is a proposed achievement grant. The engine is a stateless
// producer: it can re-emit the same candidate on repeated evaluation, and the
// (user, name, date) unique index at the persistence layer absorbs the
// duplicates. Keeping the engine memoryless means it can never desynchronize
// from the log of record.
type Candidate struct {
	Type   string    `json:"type"`
	Name   string    `json:"name"`
	Date   time.Time `json:"date"`
	Points int       `json:"points"`
}

type achievementRule struct {
	trigger EventType
	name    string
	points  int
	match   func(Aggregates) bool
}

var achievementRules = []achievementRule{
	{EventFoodLogged, "Complete Day Logged", 50, func(a Aggregates) bool {
		return a.MealTypesLoggedToday >= 4
	}},
	{EventSymptomLogged, "Weekly Symptom Tracking", 75, func(a Aggregates) bool {
		return a.SymptomStreakDays >= 7
	}},
	{EventWaterLogged, "Daily Water Goal", 25, func(a Aggregates) bool {
		return a.WaterGoalMl > 0 && a.WaterTotalMlToday >= a.WaterGoalMl && !a.WaterGoalMetBefore
	}},
	{EventSetupCompleted, "Setup Complete", 100, func(Aggregates) bool {
		return true
	}},
	{EventPhaseTransitioned, "Reintroduction Phase Started", 200, func(a Aggregates) bool {
		return a.NewPhase == models.PhaseReintroduction
	}},
}

// EvaluateAchievements runs every rule whose trigger matches the event and
// returns the grants that apply, dated to the event date.
func EvaluateAchievements(evt Event, agg Aggregates) []Candidate {
	var out []Candidate
	for _, r := range achievementRules {
		if r.trigger != evt.Type || !r.match(agg) {
			continue
		}
		out = append(out, Candidate{
			Type:   "milestone",
			Name:   r.name,
			Date:   DateOnly(evt.Date),
			Points: r.points,
		})
	}
	return out
}
