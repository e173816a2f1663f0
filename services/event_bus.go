package services

import (
	"fmt"
	"time"

	"github.com/binarybcc/aip-tracker/models"

	"gorm.io/gorm"
)

type eventDeps struct {
	db  *gorm.DB
	hub *RealtimeHub
}

var _events eventDeps

func InitEventBus(db *gorm.DB, hub *RealtimeHub) {
	_events = eventDeps{db: db, hub: hub}
}

// EmitAchievement records an alert row and pushes the grant to the user's
// live connections. Safe to call before InitEventBus (no-op).
func EmitAchievement(userID uint, a models.Achievement) {
	if _events.db == nil {
		return
	}
	alert := &models.Alert{
		UserID:    userID,
		Type:      "achievement",
		Message:   fmt.Sprintf("Achievement earned: %s (+%d points)", a.Name, a.Points),
		CreatedAt: time.Now(),
	}
	_ = _events.db.Create(alert).Error

	if _events.hub != nil {
		_events.hub.Broadcast(userID, map[string]any{
			"kind":        "achievement.granted",
			"achievement": a,
		})
	}
}

// EmitPhaseChange announces a phase transition.
func EmitPhaseChange(userID uint, phase models.Phase) {
	if _events.db == nil {
		return
	}
	alert := &models.Alert{
		UserID:    userID,
		Type:      "phase",
		Message:   fmt.Sprintf("Protocol phase changed to %s", phase),
		CreatedAt: time.Now(),
	}
	_ = _events.db.Create(alert).Error

	if _events.hub != nil {
		_events.hub.Broadcast(userID, map[string]any{
			"kind":  "phase.changed",
			"phase": phase,
		})
	}
}
