package db

import (
	"time"

	"github.com/calyxhealth/calyx/internal/models"
	"gorm.io/gorm"
)

type CycleRepository struct {
	database *gorm.DB
}

func NewCycleRepository(database *gorm.DB) *CycleRepository {
	return &CycleRepository{database: database}
}

func (repo *CycleRepository) Create(cycle *models.Cycle) error {
	return repo.database.Create(cycle).Error
}

func (repo *CycleRepository) FindByIDForUser(cycleID uint, userID uint) (models.Cycle, error) {
	var cycle models.Cycle
	if err := repo.database.Where("id = ? AND user_id = ?", cycleID, userID).First(&cycle).Error; err != nil {
		return models.Cycle{}, err
	}
	return cycle, nil
}

func (repo *CycleRepository) Close(cycleID uint, endDate time.Time, durationDays int) error {
	return repo.database.Model(&models.Cycle{}).Where("id = ?", cycleID).Updates(map[string]any{
		"end_date":      endDate,
		"duration_days": durationDays,
	}).Error
}

// RecentClosedDurations returns the durations of the most recently started
// closed cycles, newest first.
func (repo *CycleRepository) RecentClosedDurations(userID uint, limit int) ([]int, error) {
	durations := make([]int, 0, limit)
	if err := repo.database.Model(&models.Cycle{}).
		Where("user_id = ? AND duration_days > 0", userID).
		Order("start_date DESC").
		Limit(limit).
		Pluck("duration_days", &durations).Error; err != nil {
		return nil, err
	}
	return durations, nil
}

func (repo *CycleRepository) ListRecentByUser(userID uint, limit int) ([]models.Cycle, error) {
	cycles := make([]models.Cycle, 0)
	if err := repo.database.
		Preload("Symptoms").
		Where("user_id = ?", userID).
		Order("start_date DESC").
		Limit(limit).
		Find(&cycles).Error; err != nil {
		return nil, err
	}
	return cycles, nil
}

// ListRecentStarts loads only id and start date, enough to map symptoms onto
// cycle days during analysis.
func (repo *CycleRepository) ListRecentStarts(userID uint, limit int) ([]models.Cycle, error) {
	cycles := make([]models.Cycle, 0)
	if err := repo.database.
		Select("id", "user_id", "start_date").
		Where("user_id = ?", userID).
		Order("start_date DESC").
		Limit(limit).
		Find(&cycles).Error; err != nil {
		return nil, err
	}
	return cycles, nil
}
