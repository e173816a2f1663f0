package utils

import (
	"fmt"

	"github.com/binarybcc/aip-tracker/models"
)

// WarningSeverity categorizes how serious a protocol finding is.
type WarningSeverity string

const (
	Info    WarningSeverity = "info"
	Caution WarningSeverity = "caution"
	High    WarningSeverity = "high"
)

// Warning is a structured protocol finding shown in the API / UI.
type Warning struct {
	Code     string          `json:"code"`
	Severity WarningSeverity `json:"severity"`
	Message  string          `json:"message"`
}

// Food categories tracked by the protocol.
var Categories = map[string]string{
	"protein":       "Protein Sources",
	"vegetables":    "Vegetables",
	"fats":          "Healthy Fats",
	"carbohydrates": "Carbohydrates",
	"fruits":        "Fruits",
	"herbs":         "Herbs & Seasonings",
	"beverages":     "Beverages",
}

// Food groups excluded during the elimination phase.
var EliminationAvoid = map[string]string{
	"grains":          "All grains (wheat, rice, oats, etc.)",
	"legumes":         "Beans, lentils, peas, peanuts",
	"dairy":           "All dairy products",
	"eggs":            "Chicken eggs and egg products",
	"nuts_seeds":      "All nuts and seeds",
	"nightshades":     "Tomatoes, peppers, potatoes, eggplant",
	"refined_sugars":  "Processed sugars and sweeteners",
	"processed_foods": "Packaged and processed foods",
	"alcohol":         "All alcoholic beverages",
}

// ReintroductionStages maps stage order to display name, ascending from the
// least inflammatory group. Stage membership lives on the food catalog rows.
var ReintroductionStages = map[int]string{
	1: "Stage 1: Egg Yolks & Seed Oils",
	2: "Stage 2: Herbs & Spices",
	3: "Stage 3: Nuts & Seeds",
	4: "Stage 4: Nightshade Spices",
	5: "Stage 5: Whole Eggs",
	6: "Stage 6: Nightshade Vegetables",
}

// SymptomCategories tracked by the protocol.
var SymptomCategories = map[string]string{
	"digestive": "Digestive Issues",
	"systemic":  "Systemic Inflammation",
	"skin":      "Skin Problems",
	"mood":      "Mood & Mental Health",
	"sleep":     "Sleep Quality",
	"energy":    "Energy Levels",
	"joint":     "Joint Pain",
	"other":     "Other Symptoms",
}

// SeverityLevels maps the 0–4 severity scale to labels.
var SeverityLevels = map[int]string{
	0: "None",
	1: "Mild",
	2: "Moderate",
	3: "Severe",
	4: "Very Severe",
}

func IsValidSymptomCategory(category string) bool {
	_, ok := SymptomCategories[category]
	return ok
}

func IsValidSeverity(level int) bool {
	_, ok := SeverityLevels[level]
	return ok
}

func SeverityText(level int) string {
	if s, ok := SeverityLevels[level]; ok {
		return s
	}
	return "Unknown"
}

func StageName(order int) string {
	if s, ok := ReintroductionStages[order]; ok {
		return s
	}
	return fmt.Sprintf("Stage %d", order)
}

// AssessFoodForPhase flags a logged food against the user's current phase.
// toleratedFoodIDs are foods already cleared by a completed, tolerated
// reintroduction test.
func AssessFoodForPhase(food models.FoodItem, phase models.Phase, toleratedFoodIDs map[uint]bool) []Warning {
	warnings := []Warning{}

	if food.EliminationStatus == models.NeverAllowed {
		warnings = append(warnings, Warning{
			Code:     "never_allowed",
			Severity: High,
			Message:  fmt.Sprintf("%s is never part of the AIP protocol", food.Name),
		})
		return warnings
	}

	if food.EliminationStatus != models.ReintroductionOnly {
		return warnings
	}

	switch phase {
	case models.PhaseElimination, models.PhaseSetup:
		warnings = append(warnings, Warning{
			Code:     "elimination_violation",
			Severity: High,
			Message:  fmt.Sprintf("%s is not allowed during the elimination phase", food.Name),
		})
	case models.PhaseReintroduction, models.PhaseMaintenance:
		if !toleratedFoodIDs[food.ID] {
			warnings = append(warnings, Warning{
				Code:     "untested_reintroduction",
				Severity: Caution,
				Message:  fmt.Sprintf("%s has not passed a reintroduction test yet; log it only as part of an active test", food.Name),
			})
		}
	}
	return warnings
}
