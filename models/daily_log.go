package models

import (
	"time"

	"gorm.io/gorm"
)

// FoodLog is one food entry for a meal slot on a day.
type FoodLog struct {
	gorm.Model
	UserID      uint      `gorm:"index;not null"`
	FoodID      uint      `gorm:"index;not null"`
	MealType    string    `gorm:"size:20;not null"` // breakfast|lunch|dinner|snack
	PortionSize string    `gorm:"size:32"`
	LogDate     time.Time `gorm:"index;not null"` // truncate to YYYY-MM-DD
	LogTime     string    `gorm:"size:8"`
	Notes       string    `gorm:"type:text"`
	Warnings    string    `gorm:"type:text"` // protocol warnings at log time, semicolon-joined
}

// WaterLog is one intake entry; a day's total is the sum of its entries.
type WaterLog struct {
	gorm.Model
	UserID   uint      `gorm:"index;not null"`
	LogDate  time.Time `gorm:"index;not null"`
	LogTime  string    `gorm:"size:8"`
	AmountMl int       `gorm:"not null"`
}

// SymptomLog is one symptom observation with a 0–4 severity.
type SymptomLog struct {
	gorm.Model
	UserID        uint      `gorm:"index;not null"`
	LogDate       time.Time `gorm:"index;not null"`
	LogTime       string    `gorm:"size:8"`
	Category      string    `gorm:"size:20;not null"`
	Symptom       string    `gorm:"size:64;not null"`
	Severity      int       `gorm:"not null"`
	DurationHours float64
	Notes         string `gorm:"type:text"`
	Triggers      string `gorm:"type:text"`
}
