package models

import "gorm.io/gorm"

// Elimination status of a catalog food.
const (
	EliminationAllowed = 1  // fine during the elimination phase
	ReintroductionOnly = 0  // must be reintroduced via a test
	NeverAllowed       = -1 // never part of the protocol
)

// FoodItem is a catalog entry. Identity and category metadata only;
// nutrient data lives outside this system.
type FoodItem struct {
	gorm.Model
	Name                string `gorm:"not null"`
	Category            string `gorm:"size:32"`
	Subcategory         string `gorm:"size:32"`
	EliminationStatus   int    `gorm:"not null;default:1"`
	ReintroductionOrder int    `gorm:"index"` // stage number, 0 = unstaged
}
