package services

import (
	"time"

	"github.com/binarybcc/aip-tracker/models"
)

// Days to wait after a completed test before starting the next one.
const testGapDays = 7

// SuggestedTestDate returns the earliest recommended start date for the next
// test: seven days after the latest completed test's end date, or today when
// nothing has been completed yet. It is a lower bound; callers may schedule
// later.
func SuggestedTestDate(completed []models.ReintroductionTest, today time.Time) time.Time {
	var last time.Time
	for _, t := range completed {
		if t.Status != models.TestCompleted || t.EndDate == nil {
			continue
		}
		if end := DateOnly(*t.EndDate); end.After(last) {
			last = end
		}
	}
	if last.IsZero() {
		return DateOnly(today)
	}
	return last.AddDate(0, 0, testGapDays)
}

// EffectiveStatus derives the test's status for a given day. Planned tests
// become active once the start date arrives; this is computed rather than
// stored so edited dates cannot leave a stale status behind.
func EffectiveStatus(test models.ReintroductionTest, today time.Time) models.TestStatus {
	if test.Status == models.TestCompleted {
		return models.TestCompleted
	}
	if !DateOnly(today).Before(DateOnly(test.StartDate)) {
		return models.TestActive
	}
	return models.TestPlanned
}

// ScheduleTest validates a new test against the user's existing tests and
// phase state and returns the row to insert. A food may have at most one
// open (planned or active) test; stage order is recorded but not enforced,
// stages are advisory groupings.
func ScheduleTest(userTests []models.ReintroductionTest, foodID uint, stageOrder int, proposedDate time.Time, phase PhaseState) (models.ReintroductionTest, error) {
	if phase.Phase.Rank() < models.PhaseReintroduction.Rank() && !phase.EliminationReady {
		return models.ReintroductionTest{}, ErrPhaseNotReady
	}
	for _, t := range userTests {
		if t.FoodID == foodID && t.Status != models.TestCompleted {
			return models.ReintroductionTest{}, ErrAlreadyScheduled
		}
	}
	return models.ReintroductionTest{
		FoodID:     foodID,
		StageOrder: stageOrder,
		Status:     models.TestPlanned,
		StartDate:  DateOnly(proposedDate),
	}, nil
}

// CompleteTest records the final result of a planned or active test. Early
// completion of a planned test is allowed (e.g. adverse reaction before the
// monitoring window ends). Completed tests cannot be re-completed; re-testing
// a food requires a new test record.
func CompleteTest(test models.ReintroductionTest, result models.TestResult, today time.Time, notes string) (models.ReintroductionTest, error) {
	if !result.Valid() {
		return test, ErrInvalidResult
	}
	if test.Status == models.TestCompleted {
		return test, ErrAlreadyCompleted
	}
	end := DateOnly(today)
	test.Status = models.TestCompleted
	test.EndDate = &end
	test.FinalResult = &result
	test.Notes = notes
	return test, nil
}

// PendingTestFor returns the open (planned or active) test for a food, nil
// when there is none.
func PendingTestFor(tests []models.ReintroductionTest, foodID uint) *models.ReintroductionTest {
	for i := range tests {
		if tests[i].FoodID == foodID && tests[i].Status != models.TestCompleted {
			return &tests[i]
		}
	}
	return nil
}

// ActiveTests filters tests whose derived status is active today.
func ActiveTests(tests []models.ReintroductionTest, today time.Time) []models.ReintroductionTest {
	out := []models.ReintroductionTest{}
	for _, t := range tests {
		if EffectiveStatus(t, today) == models.TestActive {
			out = append(out, t)
		}
	}
	return out
}

// PlannedTests filters tests whose derived status is still planned today.
func PlannedTests(tests []models.ReintroductionTest, today time.Time) []models.ReintroductionTest {
	out := []models.ReintroductionTest{}
	for _, t := range tests {
		if EffectiveStatus(t, today) == models.TestPlanned {
			out = append(out, t)
		}
	}
	return out
}

// CompletedTests filters completed tests.
func CompletedTests(tests []models.ReintroductionTest) []models.ReintroductionTest {
	out := []models.ReintroductionTest{}
	for _, t := range tests {
		if t.Status == models.TestCompleted {
			out = append(out, t)
		}
	}
	return out
}
