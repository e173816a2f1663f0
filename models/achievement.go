package models

import (
	"time"

	"gorm.io/gorm"
)

// Achievement is an immutable milestone grant. The composite unique index on
// (user_id, name, earned_date) makes grants idempotent: the rule engine may
// propose the same grant repeatedly and the insert ignores duplicates.
type Achievement struct {
	gorm.Model
	UserID     uint      `gorm:"index;index:idx_achievement_grant,unique;not null"`
	Type       string    `gorm:"size:20"` // "milestone"
	Name       string    `gorm:"size:64;index:idx_achievement_grant,unique;not null"`
	EarnedDate time.Time `gorm:"index:idx_achievement_grant,unique;not null"`
	Points     int
}

func (Achievement) TableName() string {
	return "user_achievements"
}
