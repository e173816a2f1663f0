package services

import (
	"testing"
	"time"

	"github.com/binarybcc/aip-tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func eliminationProfile(start time.Time, targetDays int) models.ProtocolProfile {
	return models.ProtocolProfile{
		UserID:                1,
		CurrentPhase:          models.PhaseElimination,
		StartDate:             start,
		TargetEliminationDays: targetDays,
		WaterGoalMl:           2000,
	}
}

func TestDaysElapsed(t *testing.T) {
	p := eliminationProfile(day(2024, 1, 1), 42)

	d, err := DaysElapsed(p, day(2024, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, 0, d)

	d, err = DaysElapsed(p, day(2024, 2, 12))
	require.NoError(t, err)
	assert.Equal(t, 42, d)

	// time-of-day is irrelevant, only the calendar date counts
	d, err = DaysElapsed(p, time.Date(2024, 1, 2, 23, 59, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, d)

	_, err = DaysElapsed(p, day(2023, 12, 31))
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestDaysElapsedMonotonic(t *testing.T) {
	p := eliminationProfile(day(2024, 1, 1), 42)
	prev := -1
	for i := 0; i < 60; i++ {
		d, err := DaysElapsed(p, day(2024, 1, 1).AddDate(0, 0, i))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, d, prev)
		assert.GreaterOrEqual(t, d, 0)
		prev = d
	}
}

func TestEliminationReadyBoundary(t *testing.T) {
	p := eliminationProfile(day(2024, 1, 1), 42)

	ready, err := EliminationReady(p, day(2024, 1, 1).AddDate(0, 0, 41))
	require.NoError(t, err)
	assert.False(t, ready)

	// exactly the target counts as ready
	ready, err = EliminationReady(p, day(2024, 1, 1).AddDate(0, 0, 42))
	require.NoError(t, err)
	assert.True(t, ready)
}

func TestEvaluatePhase(t *testing.T) {
	p := eliminationProfile(day(2024, 1, 1), 42)

	state, err := EvaluatePhase(p, day(2024, 1, 11))
	require.NoError(t, err)
	assert.Equal(t, models.PhaseElimination, state.Phase)
	assert.Equal(t, 10, state.DaysElapsed)
	assert.Equal(t, 32, state.DaysRemaining)
	assert.False(t, state.EliminationReady)

	state, err = EvaluatePhase(p, day(2024, 3, 1))
	require.NoError(t, err)
	assert.True(t, state.EliminationReady)
	assert.Equal(t, 0, state.DaysRemaining)
}

func TestRequestTransition(t *testing.T) {
	start := day(2024, 1, 1)

	t.Run("blocked before target", func(t *testing.T) {
		p := eliminationProfile(start, 42)
		_, err := RequestTransition(p, models.PhaseReintroduction, start.AddDate(0, 0, 41))
		assert.ErrorIs(t, err, ErrIllegalTransition)
	})

	t.Run("allowed at target", func(t *testing.T) {
		p := eliminationProfile(start, 42)
		updated, err := RequestTransition(p, models.PhaseReintroduction, start.AddDate(0, 0, 42))
		require.NoError(t, err)
		assert.Equal(t, models.PhaseReintroduction, updated.CurrentPhase)
		// input profile is untouched
		assert.Equal(t, models.PhaseElimination, p.CurrentPhase)
	})

	t.Run("idempotent once reintroduction", func(t *testing.T) {
		p := eliminationProfile(start, 42)
		first, err := RequestTransition(p, models.PhaseReintroduction, start.AddDate(0, 0, 42))
		require.NoError(t, err)
		second, err := RequestTransition(first, models.PhaseReintroduction, start.AddDate(0, 0, 43))
		require.NoError(t, err)
		assert.Equal(t, first.CurrentPhase, second.CurrentPhase)
	})

	t.Run("no other transitions", func(t *testing.T) {
		p := eliminationProfile(start, 42)
		today := start.AddDate(0, 0, 100)

		_, err := RequestTransition(p, models.PhaseMaintenance, today)
		assert.ErrorIs(t, err, ErrIllegalTransition)

		_, err = RequestTransition(p, models.PhaseSetup, today)
		assert.ErrorIs(t, err, ErrIllegalTransition)

		_, err = RequestTransition(p, models.Phase("bogus"), today)
		assert.ErrorIs(t, err, ErrIllegalTransition)

		p.CurrentPhase = models.PhaseSetup
		_, err = RequestTransition(p, models.PhaseReintroduction, today)
		assert.ErrorIs(t, err, ErrIllegalTransition)
	})
}

// Full elimination-to-reintroduction walkthrough at the boundary.
func TestEliminationBoundaryScenario(t *testing.T) {
	start := day(2024, 1, 1)
	p := eliminationProfile(start, 42)

	day41 := start.AddDate(0, 0, 41)
	ready, err := EliminationReady(p, day41)
	require.NoError(t, err)
	assert.False(t, ready)
	_, err = RequestTransition(p, models.PhaseReintroduction, day41)
	assert.ErrorIs(t, err, ErrIllegalTransition)

	day42 := start.AddDate(0, 0, 42)
	ready, err = EliminationReady(p, day42)
	require.NoError(t, err)
	assert.True(t, ready)
	updated, err := RequestTransition(p, models.PhaseReintroduction, day42)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseReintroduction, updated.CurrentPhase)
}
