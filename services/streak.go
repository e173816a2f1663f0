package services

import "time"

// streakWindowDays bounds the backward walk. Any gap terminates the streak,
// so unbroken history older than the window cannot change the result for
// practical purposes and is not worth scanning.
const streakWindowDays = 90

// ComputeStreak counts consecutive calendar days with at least one log,
// ending at referenceDate and walking backward. A missing referenceDate
// yields 0. Duplicate dates collapse to one day; dates after referenceDate
// are ignored.
func ComputeStreak(logDates []time.Time, referenceDate time.Time) int {
	ref := DateOnly(referenceDate)
	seen := make(map[string]struct{}, len(logDates))
	for _, d := range logDates {
		day := DateOnly(d)
		if day.After(ref) {
			continue
		}
		seen[DateKey(day)] = struct{}{}
	}

	streak := 0
	for day := ref; streak < streakWindowDays; day = day.AddDate(0, 0, -1) {
		if _, ok := seen[DateKey(day)]; !ok {
			break
		}
		streak++
	}
	return streak
}
