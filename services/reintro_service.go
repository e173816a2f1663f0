package services

import (
	"errors"
	"time"

	"github.com/binarybcc/aip-tracker/config"
	"github.com/binarybcc/aip-tracker/models"
	"github.com/binarybcc/aip-tracker/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StartReintroduction moves the user from elimination into reintroduction
// once the target has been met, persists the profile, and earns the phase
// achievement. Calling it again once already in reintroduction is a no-op.
func StartReintroduction(userID uint, clock Clock) (*models.ProtocolProfile, []models.Achievement, error) {
	profile, err := GetProfile(userID)
	if err != nil {
		return nil, nil, errors.New("complete setup first")
	}

	today := clock.Today()
	alreadyThere := profile.CurrentPhase.Rank() >= models.PhaseReintroduction.Rank()

	updated, err := RequestTransition(*profile, models.PhaseReintroduction, today)
	if err != nil {
		return nil, nil, err
	}
	if err := config.DB.Save(&updated).Error; err != nil {
		return nil, nil, err
	}

	var granted []models.Achievement
	if !alreadyThere {
		evt := Event{Type: EventPhaseTransitioned, Date: today}
		granted, err = GrantAll(userID, EvaluateAchievements(evt, Aggregates{
			NewPhase: updated.CurrentPhase,
		}))
		if err != nil {
			return &updated, granted, err
		}
		EmitPhaseChange(userID, updated.CurrentPhase)
	}
	return &updated, granted, nil
}

// ScheduleReintroTest creates a planned test for a food. The open-test check
// and the insert run inside one transaction with the user's existing test
// rows locked; when both requests see zero rows there is nothing to lock, so
// the partial unique index on open tests catches that first-time race and
// the duplicate insert surfaces as ErrAlreadyScheduled.
func ScheduleReintroTest(userID, foodID uint, proposedDate time.Time, clock Clock) (*models.ReintroductionTest, error) {
	profile, err := GetProfile(userID)
	if err != nil {
		return nil, errors.New("complete setup first")
	}
	state, err := EvaluatePhase(*profile, clock.Today())
	if err != nil {
		return nil, err
	}

	var food models.FoodItem
	if err := config.DB.First(&food, foodID).Error; err != nil {
		return nil, errors.New("unknown food")
	}

	var created models.ReintroductionTest
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var existing []models.ReintroductionTest
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND food_id = ?", userID, foodID).
			Find(&existing).Error
		if err != nil {
			return err
		}

		test, err := ScheduleTest(existing, foodID, food.ReintroductionOrder, proposedDate, state)
		if err != nil {
			return err
		}
		test.UserID = userID
		if err := tx.Create(&test).Error; err != nil {
			return scheduleConflict(err)
		}
		created = test
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// CompleteReintroTest finalizes a test with its result. The completion event
// is still run through the rule engine even though no current rule matches
// it, so future rules pick it up without touching this path.
func CompleteReintroTest(userID, testID uint, result models.TestResult, notes string, clock Clock) (*models.ReintroductionTest, []models.Achievement, error) {
	var test models.ReintroductionTest
	err := config.DB.
		Where("id = ? AND user_id = ?", testID, userID).
		First(&test).Error
	if err != nil {
		return nil, nil, errors.New("test not found")
	}

	today := clock.Today()
	updated, err := CompleteTest(test, result, today, notes)
	if err != nil {
		return nil, nil, err
	}
	if err := config.DB.Save(&updated).Error; err != nil {
		return nil, nil, err
	}

	evt := Event{Type: EventTestCompleted, Date: today}
	granted, err := GrantAll(userID, EvaluateAchievements(evt, Aggregates{
		TestResult: result,
	}))
	return &updated, granted, err
}

// TestView decorates a test row with its food and derived status.
type TestView struct {
	models.ReintroductionTest
	EffectiveStatus models.TestStatus `json:"effective_status"`
	FoodName        string            `json:"food_name"`
	FoodCategory    string            `json:"food_category"`
	StageName       string            `json:"stage_name"`
}

// TestBoard groups a user's tests for display.
type TestBoard struct {
	Active        []TestView `json:"active"`
	Planned       []TestView `json:"planned"`
	Completed     []TestView `json:"completed"`
	Tolerated     int        `json:"tolerated"`
	NotTolerated  int        `json:"not_tolerated"`
	Inconclusive  int        `json:"inconclusive"`
	SuggestedDate string     `json:"suggested_date"`
}

// ListReintroTests returns the grouped test board with the next suggested
// test date.
func ListReintroTests(userID uint, clock Clock) (*TestBoard, error) {
	var tests []models.ReintroductionTest
	err := config.DB.
		Where("user_id = ?", userID).
		Order("start_date DESC, created_at DESC").
		Find(&tests).Error
	if err != nil {
		return nil, err
	}

	foodIndex, err := foodsByID(tests)
	if err != nil {
		return nil, err
	}

	today := clock.Today()
	board := &TestBoard{
		Active:    []TestView{},
		Planned:   []TestView{},
		Completed: []TestView{},
	}
	for _, t := range tests {
		view := TestView{
			ReintroductionTest: t,
			EffectiveStatus:    EffectiveStatus(t, today),
			StageName:          utils.StageName(t.StageOrder),
		}
		if f, ok := foodIndex[t.FoodID]; ok {
			view.FoodName = f.Name
			view.FoodCategory = f.Category
		}
		switch view.EffectiveStatus {
		case models.TestActive:
			board.Active = append(board.Active, view)
		case models.TestPlanned:
			board.Planned = append(board.Planned, view)
		case models.TestCompleted:
			board.Completed = append(board.Completed, view)
			if t.FinalResult != nil {
				switch *t.FinalResult {
				case models.ResultTolerated:
					board.Tolerated++
				case models.ResultNotTolerated:
					board.NotTolerated++
				case models.ResultInconclusive:
					board.Inconclusive++
				}
			}
		}
	}

	board.SuggestedDate = DateKey(SuggestedTestDate(CompletedTests(tests), today))
	return board, nil
}

// SuggestedDate returns just the lower-bound date for the next test.
func SuggestedDate(userID uint, clock Clock) (time.Time, error) {
	var tests []models.ReintroductionTest
	err := config.DB.
		Where("user_id = ? AND status = ?", userID, models.TestCompleted).
		Find(&tests).Error
	if err != nil {
		return time.Time{}, err
	}
	return SuggestedTestDate(tests, clock.Today()), nil
}

// scheduleConflict maps a duplicate-key insert on the open-test index to the
// domain error.
func scheduleConflict(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyScheduled
	}
	return err
}

func foodsByID(tests []models.ReintroductionTest) (map[uint]models.FoodItem, error) {
	ids := make([]uint, 0, len(tests))
	for _, t := range tests {
		ids = append(ids, t.FoodID)
	}
	index := make(map[uint]models.FoodItem, len(ids))
	if len(ids) == 0 {
		return index, nil
	}
	var foods []models.FoodItem
	if err := config.DB.Where("id IN ?", ids).Find(&foods).Error; err != nil {
		return nil, err
	}
	for _, f := range foods {
		index[f.ID] = f
	}
	return index, nil
}
