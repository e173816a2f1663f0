package models

import (
	"time"

	"gorm.io/gorm"
)

// TestStatus for a reintroduction test. Only planned and completed are
// stored; active is derived from the start date at read time so the status
// column can never drift from the date fields.
type TestStatus string

const (
	TestPlanned   TestStatus = "planned"
	TestActive    TestStatus = "active"
	TestCompleted TestStatus = "completed"
)

type TestResult string

const (
	ResultTolerated    TestResult = "tolerated"
	ResultNotTolerated TestResult = "not_tolerated"
	ResultInconclusive TestResult = "inconclusive"
)

func (r TestResult) Valid() bool {
	switch r {
	case ResultTolerated, ResultNotTolerated, ResultInconclusive:
		return true
	}
	return false
}

// ReintroductionTest is one food trial. Tests are append-only history:
// completing is a one-way step and re-testing a food means a new row. The
// partial unique index holds the one-open-test-per-food invariant at the
// database, closing the race where two schedules for an untested food both
// see zero existing rows.
type ReintroductionTest struct {
	gorm.Model
	UserID      uint       `gorm:"index;not null;index:idx_open_food_test,unique,where:status = 'planned'"`
	FoodID      uint       `gorm:"index;not null;index:idx_open_food_test,unique,where:status = 'planned'"`
	StageOrder  int        // reintroduction stage of the food, advisory grouping
	Status      TestStatus `gorm:"size:16;not null;default:planned"`
	StartDate   time.Time  `gorm:"not null"`
	EndDate     *time.Time
	FinalResult *TestResult `gorm:"size:16"`
	Notes       string      `gorm:"type:text"`
}
