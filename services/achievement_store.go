package services

import (
	"github.com/binarybcc/aip-tracker/config"
	"github.com/binarybcc/aip-tracker/models"

	"gorm.io/gorm/clause"
)

// GrantAll persists candidates with an ignore-on-conflict insert so repeated
// evaluation of the same event never double-awards. Returns only the grants
// that were actually new.
func GrantAll(userID uint, cands []Candidate) ([]models.Achievement, error) {
	granted := make([]models.Achievement, 0, len(cands))
	for _, cand := range cands {
		a := models.Achievement{
			UserID:     userID,
			Type:       cand.Type,
			Name:       cand.Name,
			EarnedDate: cand.Date,
			Points:     cand.Points,
		}
		res := config.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&a)
		if res.Error != nil {
			return granted, res.Error
		}
		if res.RowsAffected > 0 {
			granted = append(granted, a)
			EmitAchievement(userID, a)
		}
	}
	return granted, nil
}

func RecentAchievements(userID uint, limit int) ([]models.Achievement, error) {
	if limit <= 0 {
		limit = 5
	}
	var out []models.Achievement
	err := config.DB.
		Where("user_id = ?", userID).
		Order("earned_date DESC, created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func TotalPoints(userID uint) (int, error) {
	var total int64
	err := config.DB.
		Model(&models.Achievement{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error
	return int(total), err
}
