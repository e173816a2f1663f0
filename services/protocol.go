package services

import (
	"math"
	"time"

	"github.com/binarybcc/aip-tracker/models"
)

// PhaseState is the evaluated view of a profile's protocol position on a
// given day.
type PhaseState struct {
	Phase            models.Phase `json:"phase"`
	DaysElapsed      int          `json:"days_elapsed"`
	EliminationReady bool         `json:"elimination_ready"`
	DaysRemaining    int          `json:"days_remaining"`
}

// DaysElapsed returns whole days between the protocol start date and today,
// floored. Fails with ErrInvalidState when today precedes the start date.
func DaysElapsed(profile models.ProtocolProfile, today time.Time) (int, error) {
	start := DateOnly(profile.StartDate)
	day := DateOnly(today)
	if day.Before(start) {
		return 0, ErrInvalidState
	}
	// Round instead of truncating: midnight-to-midnight spans straddling a
	// DST change are 23 or 25 hours.
	return int(math.Round(day.Sub(start).Hours() / 24)), nil
}

// EliminationReady reports whether the elimination phase has run its target
// length. The boundary day counts as ready.
func EliminationReady(profile models.ProtocolProfile, today time.Time) (bool, error) {
	days, err := DaysElapsed(profile, today)
	if err != nil {
		return false, err
	}
	return days >= profile.TargetEliminationDays, nil
}

// EvaluatePhase bundles the day count and readiness check for callers.
func EvaluatePhase(profile models.ProtocolProfile, today time.Time) (PhaseState, error) {
	days, err := DaysElapsed(profile, today)
	if err != nil {
		return PhaseState{}, err
	}
	remaining := profile.TargetEliminationDays - days
	if remaining < 0 {
		remaining = 0
	}
	return PhaseState{
		Phase:            profile.CurrentPhase,
		DaysElapsed:      days,
		EliminationReady: days >= profile.TargetEliminationDays,
		DaysRemaining:    remaining,
	}, nil
}

// RequestTransition applies the one externally requestable transition,
// elimination → reintroduction, once the elimination target is met.
// Requesting reintroduction when the profile is already at or past it is an
// idempotent no-op. Everything else fails with ErrIllegalTransition; in
// particular there is no defined entry into maintenance. The updated profile
// is returned for the caller to persist.
func RequestTransition(profile models.ProtocolProfile, target models.Phase, today time.Time) (models.ProtocolProfile, error) {
	if target != models.PhaseReintroduction {
		return profile, ErrIllegalTransition
	}
	if profile.CurrentPhase.Rank() >= models.PhaseReintroduction.Rank() {
		return profile, nil
	}
	if profile.CurrentPhase != models.PhaseElimination {
		return profile, ErrIllegalTransition
	}
	ready, err := EliminationReady(profile, today)
	if err != nil {
		return profile, err
	}
	if !ready {
		return profile, ErrIllegalTransition
	}
	out := profile
	out.CurrentPhase = models.PhaseReintroduction
	return out, nil
}
