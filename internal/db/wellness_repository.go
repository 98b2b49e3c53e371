package db

import (
	"github.com/calyxhealth/calyx/internal/models"
	"gorm.io/gorm"
)

type WellnessRepository struct {
	database *gorm.DB
}

func NewWellnessRepository(database *gorm.DB) *WellnessRepository {
	return &WellnessRepository{database: database}
}

func (repo *WellnessRepository) CreateBiosensorRecord(record *models.BiosensorRecord) error {
	return repo.database.Create(record).Error
}

func (repo *WellnessRepository) ListBiosensorRecords(userID uint, limit int) ([]models.BiosensorRecord, error) {
	records := make([]models.BiosensorRecord, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *WellnessRepository) FindMeditation(meditationID uint) (models.Meditation, error) {
	var meditation models.Meditation
	if err := repo.database.First(&meditation, meditationID).Error; err != nil {
		return models.Meditation{}, err
	}
	return meditation, nil
}

func (repo *WellnessRepository) CreateMeditationSession(session *models.MeditationSession) error {
	return repo.database.Create(session).Error
}
