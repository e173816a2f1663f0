package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Phase is the user's position in the AIP protocol. Phases only move
// forward: setup → elimination → reintroduction → maintenance.
type Phase string

const (
	PhaseSetup          Phase = "setup"
	PhaseElimination    Phase = "elimination"
	PhaseReintroduction Phase = "reintroduction"
	PhaseMaintenance    Phase = "maintenance"
)

var phaseRank = map[Phase]int{
	PhaseSetup:          0,
	PhaseElimination:    1,
	PhaseReintroduction: 2,
	PhaseMaintenance:    3,
}

func (p Phase) Valid() bool {
	_, ok := phaseRank[p]
	return ok
}

// Rank orders phases for forward-only comparisons. Unknown phases rank -1.
func (p Phase) Rank() int {
	r, ok := phaseRank[p]
	if !ok {
		return -1
	}
	return r
}

// ProtocolProfile holds one user's protocol settings, created when the
// setup interview completes. Mutated only by the phase transition logic.
type ProtocolProfile struct {
	gorm.Model
	UserID                uint      `gorm:"uniqueIndex;not null"`
	CurrentPhase          Phase     `gorm:"size:20;not null;default:setup"`
	StartDate             time.Time `gorm:"not null"`
	TargetEliminationDays int       `gorm:"not null"`
	WaterGoalMl           int       `gorm:"not null"`
	HealthGoals           string    `gorm:"type:text"`
	MotivationStyle       string    `gorm:"size:32"`
	BaselineSymptoms      datatypes.JSON // category → list of symptom keys
	ReminderPreferences   datatypes.JSON
}
