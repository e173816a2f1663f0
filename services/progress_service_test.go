package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowLength(t *testing.T) {
	assert.Equal(t, 1, windowLength(day(2024, 1, 1), day(2024, 1, 1)))
	assert.Equal(t, 7, windowLength(day(2024, 1, 1), day(2024, 1, 7)))
	assert.Equal(t, 31, windowLength(day(2024, 1, 1), day(2024, 1, 31)))

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	midnight := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, ny)
	}

	// March 10 2024 is 23 hours, November 3 2024 is 25: the window must
	// still count calendar days
	assert.Equal(t, 3, windowLength(midnight(2024, 3, 9), midnight(2024, 3, 11)))
	assert.Equal(t, 3, windowLength(midnight(2024, 11, 2), midnight(2024, 11, 4)))
	assert.Equal(t, 31, windowLength(midnight(2024, 3, 1), midnight(2024, 3, 31)))
}
