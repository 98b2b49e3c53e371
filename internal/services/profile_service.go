package services

import (
	"errors"
	"strings"
	"time"

	"github.com/calyxhealth/calyx/internal/models"
	"gorm.io/gorm"
)

type ProfileUserStore interface {
	FindByID(userID uint) (models.User, error)
	UpdateByID(userID uint, updates map[string]any) error
}

type ProfileService struct {
	users ProfileUserStore
}

func NewProfileService(users ProfileUserStore) *ProfileService {
	return &ProfileService{users: users}
}

// ProfileUpdateInput carries partial updates; nil fields are left untouched.
type ProfileUpdateInput struct {
	FullName            *string
	BirthDate           *time.Time
	LastPeriodStart     *time.Time
	AverageCycleLength  *int
	AveragePeriodLength *int
}

func (service *ProfileService) Update(userID uint, input ProfileUpdateInput, now time.Time) error {
	if input.AverageCycleLength != nil && *input.AverageCycleLength <= 0 {
		return NewError(KindInvalidArgument, "average cycle length must be positive")
	}
	if input.AveragePeriodLength != nil && *input.AveragePeriodLength <= 0 {
		return NewError(KindInvalidArgument, "average period length must be positive")
	}

	if _, err := service.users.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewError(KindNotFound, "user profile not found")
		}
		return WrapInternal(err, "load user profile")
	}

	updates := map[string]any{"updated_at": now}
	if input.FullName != nil {
		updates["full_name"] = strings.TrimSpace(*input.FullName)
	}
	if input.BirthDate != nil {
		updates["birth_date"] = *input.BirthDate
	}
	if input.LastPeriodStart != nil {
		updates["last_period_start"] = *input.LastPeriodStart
	}
	if input.AverageCycleLength != nil {
		updates["average_cycle_length"] = *input.AverageCycleLength
	}
	if input.AveragePeriodLength != nil {
		updates["average_period_length"] = *input.AveragePeriodLength
	}

	if err := service.users.UpdateByID(userID, updates); err != nil {
		return WrapInternal(err, "update user profile")
	}
	return nil
}

func (service *ProfileService) Get(userID uint) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, NewError(KindNotFound, "user profile not found")
		}
		return models.User{}, WrapInternal(err, "load user profile")
	}
	return user, nil
}
