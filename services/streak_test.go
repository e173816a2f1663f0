package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeStreak(t *testing.T) {
	ref := day(2024, 1, 5)

	t.Run("broken by a gap", func(t *testing.T) {
		dates := []time.Time{
			day(2024, 1, 1), day(2024, 1, 2),
			day(2024, 1, 4), day(2024, 1, 5),
		}
		assert.Equal(t, 2, ComputeStreak(dates, ref))
	})

	t.Run("no log on reference date", func(t *testing.T) {
		dates := []time.Time{day(2024, 1, 3), day(2024, 1, 4)}
		assert.Equal(t, 0, ComputeStreak(dates, ref))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, 0, ComputeStreak(nil, ref))
	})

	t.Run("duplicates count once", func(t *testing.T) {
		dates := []time.Time{
			day(2024, 1, 4), day(2024, 1, 4),
			day(2024, 1, 5), day(2024, 1, 5), day(2024, 1, 5),
		}
		assert.Equal(t, 2, ComputeStreak(dates, ref))
	})

	t.Run("future dates ignored", func(t *testing.T) {
		dates := []time.Time{day(2024, 1, 5), day(2024, 1, 6), day(2024, 1, 7)}
		assert.Equal(t, 1, ComputeStreak(dates, ref))
	})

	t.Run("time of day collapses to date", func(t *testing.T) {
		dates := []time.Time{
			time.Date(2024, 1, 4, 8, 30, 0, 0, time.UTC),
			time.Date(2024, 1, 4, 19, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 5, 7, 0, 0, 0, time.UTC),
		}
		assert.Equal(t, 2, ComputeStreak(dates, ref))
	})

	t.Run("capped at the lookback window", func(t *testing.T) {
		var dates []time.Time
		for i := 0; i < 200; i++ {
			dates = append(dates, ref.AddDate(0, 0, -i))
		}
		assert.Equal(t, streakWindowDays, ComputeStreak(dates, ref))
	})
}
