package services

import (
	"errors"

	"github.com/calyxhealth/calyx/internal/models"
	"gorm.io/gorm"
)

type SettingsUserStore interface {
	FindByID(userID uint) (models.User, error)
	UpdateSettings(userID uint, settings models.Settings) error
}

type SettingsService struct {
	users SettingsUserStore
}

func NewSettingsService(users SettingsUserStore) *SettingsService {
	return &SettingsService{users: users}
}

// SettingsUpdateInput patches only the provided fields.
type SettingsUpdateInput struct {
	NotificationPreferences *map[string]bool
	HeatTherapyEnabled      *bool
	GamificationEnabled     *bool
}

func (service *SettingsService) Get(userID uint) (models.Settings, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Settings{}, NewError(KindNotFound, "user profile not found")
		}
		return models.Settings{}, WrapInternal(err, "load user profile")
	}

	settings := user.Settings
	if settings.NotificationPreferences == nil {
		settings = models.DefaultSettings()
	}
	return settings, nil
}

// Update returns the names of the fields that were changed.
func (service *SettingsService) Update(userID uint, input SettingsUpdateInput) ([]string, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewError(KindNotFound, "user profile not found")
		}
		return nil, WrapInternal(err, "load user profile")
	}

	settings := user.Settings
	if settings.NotificationPreferences == nil {
		settings = models.DefaultSettings()
	}

	updated := make([]string, 0, 3)
	if input.NotificationPreferences != nil {
		settings.NotificationPreferences = *input.NotificationPreferences
		updated = append(updated, "notification_preferences")
	}
	if input.HeatTherapyEnabled != nil {
		settings.HeatTherapyEnabled = *input.HeatTherapyEnabled
		updated = append(updated, "heat_therapy_enabled")
	}
	if input.GamificationEnabled != nil {
		settings.GamificationEnabled = *input.GamificationEnabled
		updated = append(updated, "gamification_enabled")
	}

	if len(updated) == 0 {
		return updated, nil
	}

	if err := service.users.UpdateSettings(userID, settings); err != nil {
		return nil, WrapInternal(err, "update settings")
	}
	return updated, nil
}
