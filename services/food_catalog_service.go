package services

import (
	"log"
	"sort"

	"github.com/binarybcc/aip-tracker/config"
	"github.com/binarybcc/aip-tracker/models"
	"github.com/binarybcc/aip-tracker/utils"
)

// StageGroup is one reintroduction stage with its candidate foods and the
// user's test status for each.
type StageGroup struct {
	Stage int         `json:"stage"`
	Name  string      `json:"name"`
	Foods []StageFood `json:"foods"`
}

type StageFood struct {
	models.FoodItem
	Tested    bool `json:"tested"`
	Scheduled bool `json:"scheduled"`
}

// ReintroFoodsByStage lists reintroduction-only foods grouped by stage in
// ascending order, annotated with the user's test history. Stage membership
// is a presentation grouping, not a scheduling gate.
func ReintroFoodsByStage(userID uint) ([]StageGroup, error) {
	var foods []models.FoodItem
	err := config.DB.
		Where("elimination_status = ?", models.ReintroductionOnly).
		Order("reintroduction_order ASC, category, name").
		Find(&foods).Error
	if err != nil {
		return nil, err
	}

	var tests []models.ReintroductionTest
	err = config.DB.Where("user_id = ?", userID).Find(&tests).Error
	if err != nil {
		return nil, err
	}
	completed := map[uint]bool{}
	open := map[uint]bool{}
	for _, t := range tests {
		if t.Status == models.TestCompleted {
			completed[t.FoodID] = true
		} else {
			open[t.FoodID] = true
		}
	}

	byStage := map[int][]StageFood{}
	for _, f := range foods {
		byStage[f.ReintroductionOrder] = append(byStage[f.ReintroductionOrder], StageFood{
			FoodItem:  f,
			Tested:    completed[f.ID],
			Scheduled: open[f.ID],
		})
	}

	stages := make([]int, 0, len(byStage))
	for s := range byStage {
		stages = append(stages, s)
	}
	sort.Ints(stages)

	out := make([]StageGroup, 0, len(stages))
	for _, s := range stages {
		out = append(out, StageGroup{
			Stage: s,
			Name:  utils.StageName(s),
			Foods: byStage[s],
		})
	}
	return out, nil
}

// Default catalog seeded on first boot, from the protocol's staged
// reintroduction groups.
var defaultCatalog = []models.FoodItem{
	{Name: "Egg Yolk", Category: "protein", Subcategory: "eggs", EliminationStatus: models.ReintroductionOnly, ReintroductionOrder: 1},
	{Name: "Avocado Oil", Category: "fats", Subcategory: "seed_oils", EliminationStatus: models.ReintroductionOnly, ReintroductionOrder: 1},
	{Name: "Olive Oil", Category: "fats", Subcategory: "seed_oils", EliminationStatus: models.ReintroductionOnly, ReintroductionOrder: 1},
	{Name: "Fresh Herbs", Category: "herbs", Subcategory: "herbs", EliminationStatus: models.ReintroductionOnly, ReintroductionOrder: 2},
	{Name: "Dried Herbs", Category: "herbs", Subcategory: "herbs", EliminationStatus: models.ReintroductionOnly, ReintroductionOrder: 2},
	{Name: "Mild Spices", Category: "herbs", Subcategory: "spices", EliminationStatus: models.ReintroductionOnly, ReintroductionOrder: 2},
	{Name: "Almonds", Category: "protein", Subcategory: "nuts_seeds", EliminationStatus: models.ReintroductionOnly, ReintroductionOrder: 3},
	{Name: "Walnuts", Category: "protein", Subcategory: "nuts_seeds", EliminationStatus: models.ReintroductionOnly, ReintroductionOrder: 3},
	{Name: "Sunflower Seeds", Category: "protein", Subcategory: "nuts_seeds", EliminationStatus: models.ReintroductionOnly, ReintroductionOrder: 3},
	{Name: "Paprika", Category: "herbs", Subcategory: "nightshade_spices", EliminationStatus: models.ReintroductionOnly, ReintroductionOrder: 4},
	{Name: "Chili Powder", Category: "herbs", Subcategory: "nightshade_spices", EliminationStatus: models.ReintroductionOnly, ReintroductionOrder: 4},
	{Name: "Whole Eggs", Category: "protein", Subcategory: "eggs", EliminationStatus: models.ReintroductionOnly, ReintroductionOrder: 5},
	{Name: "Tomatoes", Category: "vegetables", Subcategory: "nightshades", EliminationStatus: models.ReintroductionOnly, ReintroductionOrder: 6},
	{Name: "Potatoes", Category: "vegetables", Subcategory: "nightshades", EliminationStatus: models.ReintroductionOnly, ReintroductionOrder: 6},
	{Name: "Peppers", Category: "vegetables", Subcategory: "nightshades", EliminationStatus: models.ReintroductionOnly, ReintroductionOrder: 6},
	{Name: "Eggplant", Category: "vegetables", Subcategory: "nightshades", EliminationStatus: models.ReintroductionOnly, ReintroductionOrder: 6},
	{Name: "Grass-fed Beef", Category: "protein", Subcategory: "meat", EliminationStatus: models.EliminationAllowed},
	{Name: "Wild Salmon", Category: "protein", Subcategory: "fish", EliminationStatus: models.EliminationAllowed},
	{Name: "Sweet Potato", Category: "carbohydrates", Subcategory: "tubers", EliminationStatus: models.EliminationAllowed},
	{Name: "Leafy Greens", Category: "vegetables", Subcategory: "greens", EliminationStatus: models.EliminationAllowed},
	{Name: "Blueberries", Category: "fruits", Subcategory: "berries", EliminationStatus: models.EliminationAllowed},
	{Name: "Coconut Oil", Category: "fats", Subcategory: "oils", EliminationStatus: models.EliminationAllowed},
	{Name: "Wheat Bread", Category: "carbohydrates", Subcategory: "grains", EliminationStatus: models.NeverAllowed},
	{Name: "Beer", Category: "beverages", Subcategory: "alcohol", EliminationStatus: models.NeverAllowed},
}

// SeedFoodCatalog inserts the default catalog when the table is empty.
func SeedFoodCatalog() {
	var count int64
	if err := config.DB.Model(&models.FoodItem{}).Count(&count).Error; err != nil {
		log.Printf("food catalog count failed: %v", err)
		return
	}
	if count > 0 {
		return
	}
	if err := config.DB.Create(&defaultCatalog).Error; err != nil {
		log.Printf("food catalog seed failed: %v", err)
	}
}
