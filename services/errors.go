package services

import "errors"

// Validation failures returned by the protocol core. All are deterministic
// and non-retryable; callers decide how to surface them.
var (
	ErrInvalidState      = errors.New("date precedes protocol start date")
	ErrIllegalTransition = errors.New("phase transition not allowed")
	ErrAlreadyScheduled  = errors.New("food already has a planned or active test")
	ErrPhaseNotReady     = errors.New("elimination phase not complete")
	ErrAlreadyCompleted  = errors.New("test is already completed")
	ErrInvalidResult     = errors.New("invalid test result")
	ErrProfileExists     = errors.New("setup already completed")
)
