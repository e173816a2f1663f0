package services

import (
	"testing"
	"time"

	"github.com/binarybcc/aip-tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedTest(foodID uint, end time.Time, result models.TestResult) models.ReintroductionTest {
	return models.ReintroductionTest{
		UserID:      1,
		FoodID:      foodID,
		Status:      models.TestCompleted,
		StartDate:   end.AddDate(0, 0, -7),
		EndDate:     &end,
		FinalResult: &result,
	}
}

func readyState() PhaseState {
	return PhaseState{Phase: models.PhaseReintroduction, DaysElapsed: 50, EliminationReady: true}
}

func TestSuggestedTestDate(t *testing.T) {
	today := day(2024, 3, 10)

	assert.Equal(t, today, SuggestedTestDate(nil, today))

	tests := []models.ReintroductionTest{
		completedTest(1, day(2024, 3, 1), models.ResultTolerated),
		completedTest(2, day(2024, 2, 20), models.ResultNotTolerated),
	}
	assert.Equal(t, day(2024, 3, 8), SuggestedTestDate(tests, today))
}

func TestEffectiveStatusDerivedFromDates(t *testing.T) {
	test := models.ReintroductionTest{Status: models.TestPlanned, StartDate: day(2024, 3, 5)}

	assert.Equal(t, models.TestPlanned, EffectiveStatus(test, day(2024, 3, 4)))
	assert.Equal(t, models.TestActive, EffectiveStatus(test, day(2024, 3, 5)))
	assert.Equal(t, models.TestActive, EffectiveStatus(test, day(2024, 3, 9)))

	end := day(2024, 3, 12)
	test.Status = models.TestCompleted
	test.EndDate = &end
	assert.Equal(t, models.TestCompleted, EffectiveStatus(test, day(2024, 3, 9)))
}

func TestScheduleTest(t *testing.T) {
	today := day(2024, 3, 10)

	t.Run("phase not ready", func(t *testing.T) {
		state := PhaseState{Phase: models.PhaseElimination, DaysElapsed: 20, EliminationReady: false}
		_, err := ScheduleTest(nil, 1, 1, today, state)
		assert.ErrorIs(t, err, ErrPhaseNotReady)
	})

	t.Run("elimination complete but phase not yet switched", func(t *testing.T) {
		state := PhaseState{Phase: models.PhaseElimination, DaysElapsed: 42, EliminationReady: true}
		test, err := ScheduleTest(nil, 1, 1, today, state)
		require.NoError(t, err)
		assert.Equal(t, models.TestPlanned, test.Status)
	})

	t.Run("already scheduled", func(t *testing.T) {
		open := []models.ReintroductionTest{
			{FoodID: 1, Status: models.TestPlanned, StartDate: today.AddDate(0, 0, 3)},
		}
		_, err := ScheduleTest(open, 1, 1, today, readyState())
		assert.ErrorIs(t, err, ErrAlreadyScheduled)

		// a different food is fine
		test, err := ScheduleTest(open, 2, 2, today, readyState())
		require.NoError(t, err)
		assert.Equal(t, uint(2), test.FoodID)
		assert.Equal(t, 2, test.StageOrder)
	})

	t.Run("retest after completion allowed", func(t *testing.T) {
		history := []models.ReintroductionTest{
			completedTest(1, day(2024, 2, 1), models.ResultInconclusive),
		}
		test, err := ScheduleTest(history, 1, 1, today, readyState())
		require.NoError(t, err)
		assert.Equal(t, today, test.StartDate)
	})
}

func TestCompleteTest(t *testing.T) {
	today := day(2024, 3, 15)
	planned := models.ReintroductionTest{FoodID: 1, Status: models.TestPlanned, StartDate: day(2024, 3, 10)}

	t.Run("invalid result", func(t *testing.T) {
		_, err := CompleteTest(planned, models.TestResult("maybe"), today, "")
		assert.ErrorIs(t, err, ErrInvalidResult)
	})

	t.Run("completes active test", func(t *testing.T) {
		done, err := CompleteTest(planned, models.ResultTolerated, today, "no reaction")
		require.NoError(t, err)
		assert.Equal(t, models.TestCompleted, done.Status)
		require.NotNil(t, done.EndDate)
		assert.Equal(t, today, *done.EndDate)
		require.NotNil(t, done.FinalResult)
		assert.Equal(t, models.ResultTolerated, *done.FinalResult)
		assert.Equal(t, "no reaction", done.Notes)
	})

	t.Run("early completion before start date", func(t *testing.T) {
		future := models.ReintroductionTest{FoodID: 1, Status: models.TestPlanned, StartDate: day(2024, 3, 20)}
		done, err := CompleteTest(future, models.ResultNotTolerated, today, "reaction on day 1")
		require.NoError(t, err)
		assert.Equal(t, models.TestCompleted, done.Status)
	})

	t.Run("cannot re-complete", func(t *testing.T) {
		done, err := CompleteTest(planned, models.ResultTolerated, today, "")
		require.NoError(t, err)

		for _, result := range []models.TestResult{
			models.ResultTolerated, models.ResultNotTolerated, models.ResultInconclusive,
		} {
			_, err := CompleteTest(done, result, today.AddDate(0, 0, 1), "again")
			assert.ErrorIs(t, err, ErrAlreadyCompleted)
		}
	})
}

func TestTestFilters(t *testing.T) {
	today := day(2024, 3, 10)
	tests := []models.ReintroductionTest{
		{FoodID: 1, Status: models.TestPlanned, StartDate: day(2024, 3, 8)},  // active
		{FoodID: 2, Status: models.TestPlanned, StartDate: day(2024, 3, 12)}, // planned
		completedTest(3, day(2024, 3, 1), models.ResultTolerated),
	}

	active := ActiveTests(tests, today)
	require.Len(t, active, 1)
	assert.Equal(t, uint(1), active[0].FoodID)

	planned := PlannedTests(tests, today)
	require.Len(t, planned, 1)
	assert.Equal(t, uint(2), planned[0].FoodID)

	completed := CompletedTests(tests)
	require.Len(t, completed, 1)
	assert.Equal(t, uint(3), completed[0].FoodID)

	pending := PendingTestFor(tests, 2)
	require.NotNil(t, pending)
	assert.Equal(t, uint(2), pending.FoodID)
	assert.Nil(t, PendingTestFor(tests, 3))
	assert.Nil(t, PendingTestFor(tests, 99))
}
