package utils

import (
	"testing"

	"github.com/binarybcc/aip-tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func catalogFood(id uint, name string, status int) models.FoodItem {
	return models.FoodItem{
		Model:             gorm.Model{ID: id},
		Name:              name,
		EliminationStatus: status,
	}
}

func TestAssessFoodForPhase(t *testing.T) {
	tolerated := map[uint]bool{7: true}

	t.Run("allowed food is clean in every phase", func(t *testing.T) {
		food := catalogFood(1, "Salmon", models.EliminationAllowed)
		for _, phase := range []models.Phase{
			models.PhaseSetup, models.PhaseElimination,
			models.PhaseReintroduction, models.PhaseMaintenance,
		} {
			assert.Empty(t, AssessFoodForPhase(food, phase, tolerated))
		}
	})

	t.Run("never allowed", func(t *testing.T) {
		food := catalogFood(2, "Wheat Bread", models.NeverAllowed)
		warnings := AssessFoodForPhase(food, models.PhaseMaintenance, tolerated)
		require.Len(t, warnings, 1)
		assert.Equal(t, "never_allowed", warnings[0].Code)
		assert.Equal(t, High, warnings[0].Severity)
	})

	t.Run("reintroduction food during elimination", func(t *testing.T) {
		food := catalogFood(3, "Egg Yolks", models.ReintroductionOnly)
		for _, phase := range []models.Phase{models.PhaseSetup, models.PhaseElimination} {
			warnings := AssessFoodForPhase(food, phase, tolerated)
			require.Len(t, warnings, 1)
			assert.Equal(t, "elimination_violation", warnings[0].Code)
			assert.Equal(t, High, warnings[0].Severity)
		}
	})

	t.Run("untested reintroduction food", func(t *testing.T) {
		food := catalogFood(4, "Almonds", models.ReintroductionOnly)
		warnings := AssessFoodForPhase(food, models.PhaseReintroduction, tolerated)
		require.Len(t, warnings, 1)
		assert.Equal(t, "untested_reintroduction", warnings[0].Code)
		assert.Equal(t, Caution, warnings[0].Severity)
	})

	t.Run("tolerated food passes", func(t *testing.T) {
		food := catalogFood(7, "Egg Yolks", models.ReintroductionOnly)
		assert.Empty(t, AssessFoodForPhase(food, models.PhaseReintroduction, tolerated))
		assert.Empty(t, AssessFoodForPhase(food, models.PhaseMaintenance, tolerated))
	})
}

func TestSymptomValidators(t *testing.T) {
	assert.True(t, IsValidSymptomCategory("digestive"))
	assert.True(t, IsValidSymptomCategory("joint"))
	assert.False(t, IsValidSymptomCategory("imaginary"))
	assert.False(t, IsValidSymptomCategory(""))

	for level := 0; level <= 4; level++ {
		assert.True(t, IsValidSeverity(level))
	}
	assert.False(t, IsValidSeverity(-1))
	assert.False(t, IsValidSeverity(5))

	assert.Equal(t, "Moderate", SeverityText(2))
	assert.Equal(t, "Unknown", SeverityText(9))
}

func TestStageName(t *testing.T) {
	assert.Equal(t, "Stage 2: Herbs & Spices", StageName(2))
	assert.Equal(t, "Stage 9", StageName(9))
}
