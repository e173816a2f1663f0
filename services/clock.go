package services

import "time"

// Clock supplies the current date. Injected so date-gated logic is testable
// without touching the wall clock.
type Clock interface {
	Today() time.Time
}

type realClock struct{}

func (realClock) Today() time.Time { return time.Now() }

func NewClock() Clock { return realClock{} }

// DateOnly truncates t to midnight in its location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DateKey formats t as YYYY-MM-DD, the key used for day-indexed maps.
func DateKey(t time.Time) string { return t.Format("2006-01-02") }
