package db

import (
	"time"

	"github.com/calyxhealth/calyx/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	var user models.User
	if err := repo.database.Where("lower(trim(email)) = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).
		Where("lower(trim(email)) = ?", email).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

// UpdateByID is the partial-update primitive: only the listed columns are
// touched, mirroring a dotted-path document update.
func (repo *UserRepository) UpdateByID(userID uint, updates map[string]any) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error
}

func (repo *UserRepository) UpdatePainPatterns(userID uint, patterns models.PainPatterns) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).
		Update("pain_patterns", patterns).Error
}

func (repo *UserRepository) SetActiveCycle(userID uint, cycleID uint, periodStart time.Time) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"current_cycle_id":  cycleID,
		"last_period_start": periodStart,
	}).Error
}

func (repo *UserRepository) ClearActiveCycle(userID uint, newAverageCycleLength int) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"current_cycle_id":     nil,
		"average_cycle_length": newAverageCycleLength,
	}).Error
}

// ClearStaleCycleReference drops only the dangling reference, used for
// self-healing when the referenced cycle row no longer exists.
func (repo *UserRepository) ClearStaleCycleReference(userID uint) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).
		Update("current_cycle_id", nil).Error
}

func (repo *UserRepository) UpdateSettings(userID uint, settings models.Settings) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).
		Update("settings", settings).Error
}

func (repo *UserRepository) UpdateMeditationProgress(userID uint, totalSessions int, lastSession time.Time) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"meditation_total_sessions": totalSessions,
		"meditation_last_session":   lastSession,
	}).Error
}
