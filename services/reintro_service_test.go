package services

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/binarybcc/aip-tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

func TestScheduleConflict(t *testing.T) {
	assert.ErrorIs(t, scheduleConflict(gorm.ErrDuplicatedKey), ErrAlreadyScheduled)
	assert.ErrorIs(t, scheduleConflict(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)), ErrAlreadyScheduled)

	other := errors.New("connection reset")
	assert.Equal(t, other, scheduleConflict(other))
	assert.NoError(t, scheduleConflict(nil))
}

// Two concurrent schedules for an untested food both read zero existing rows,
// so the row lock alone cannot serialize them; the partial unique index on
// open tests must be declared so the second insert fails instead.
func TestOpenTestUniqueIndex(t *testing.T) {
	s, err := schema.Parse(&models.ReintroductionTest{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	idx, ok := s.ParseIndexes()["idx_open_food_test"]
	require.True(t, ok)
	assert.Equal(t, "UNIQUE", idx.Class)
	assert.Equal(t, "status = 'planned'", idx.Where)
	require.Len(t, idx.Fields, 2)
	assert.ElementsMatch(t,
		[]string{"user_id", "food_id"},
		[]string{idx.Fields[0].DBName, idx.Fields[1].DBName})
}
