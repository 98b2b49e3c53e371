package db

import (
	"time"

	"github.com/calyxhealth/calyx/internal/models"
	"gorm.io/gorm"
)

type GardenRepository struct {
	database *gorm.DB
}

func NewGardenRepository(database *gorm.DB) *GardenRepository {
	return &GardenRepository{database: database}
}

func (repo *GardenRepository) CreatePlant(plant *models.Plant) error {
	return repo.database.Create(plant).Error
}

func (repo *GardenRepository) ListPlantsByUser(userID uint) ([]models.Plant, error) {
	plants := make([]models.Plant, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("planted_at ASC, id ASC").
		Find(&plants).Error; err != nil {
		return nil, err
	}
	return plants, nil
}

func (repo *GardenRepository) CountPlants(userID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.Plant{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// LatestPlantedAt returns the most recent planting timestamp, if any.
func (repo *GardenRepository) LatestPlantedAt(userID uint) (time.Time, bool, error) {
	var plant models.Plant
	result := repo.database.
		Select("planted_at").
		Where("user_id = ?", userID).
		Order("planted_at DESC, id DESC").
		Limit(1).
		Find(&plant)
	if result.Error != nil {
		return time.Time{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return time.Time{}, false, nil
	}
	return plant.PlantedAt, true, nil
}

func (repo *GardenRepository) CreateActivities(activities []models.WellnessActivity) error {
	if len(activities) == 0 {
		return nil
	}
	return repo.database.Create(&activities).Error
}

func (repo *GardenRepository) ListActivitiesByUser(userID uint) ([]models.WellnessActivity, error) {
	activities := make([]models.WellnessActivity, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("date ASC, id ASC").
		Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}
