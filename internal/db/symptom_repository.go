package db

import (
	"time"

	"github.com/calyxhealth/calyx/internal/models"
	"gorm.io/gorm"
)

type SymptomRepository struct {
	database *gorm.DB
}

func NewSymptomRepository(database *gorm.DB) *SymptomRepository {
	return &SymptomRepository{database: database}
}

func (repo *SymptomRepository) Create(entry *models.SymptomEntry) error {
	return repo.database.Create(entry).Error
}

func (repo *SymptomRepository) CreateBatch(entries []models.SymptomEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return repo.database.Create(&entries).Error
}

func (repo *SymptomRepository) ListRecentByUser(userID uint, limit int) ([]models.SymptomEntry, error) {
	entries := make([]models.SymptomEntry, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *SymptomRepository) ListFiltered(userID uint, symptomType string, from *time.Time, to *time.Time, limit int) ([]models.SymptomEntry, error) {
	query := repo.database.Where("user_id = ?", userID)
	if symptomType != "" {
		query = query.Where("type = ?", symptomType)
	}
	if from != nil {
		query = query.Where("date >= ?", *from)
	}
	if to != nil {
		query = query.Where("date <= ?", *to)
	}

	entries := make([]models.SymptomEntry, 0)
	if err := query.
		Order("date DESC, id DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
