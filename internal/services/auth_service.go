package services

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/calyxhealth/calyx/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 8

type AuthUserStore interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
}

// AuthService is the caller-identity collaborator: it mints users at
// registration and resolves credentials to a stable user id. Everything else
// in the system trusts the id it produces.
type AuthService struct {
	users AuthUserStore
}

func NewAuthService(users AuthUserStore) *AuthService {
	return &AuthService{users: users}
}

// NormalizeEmail lowercases, trims and validates an email address; an empty
// string means the input was not a usable address.
func NormalizeEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ""
	}
	return email
}

// Register creates a user row seeded with profile defaults: 28-day cycles,
// 5-day periods, empty pain patterns, default settings.
func (service *AuthService) Register(email string, password string, fullName string, now time.Time) (models.User, error) {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return models.User{}, NewError(KindInvalidArgument, "valid email is required")
	}
	if len(password) < minPasswordLength {
		return models.User{}, NewError(KindInvalidArgument, "password must be at least 8 characters")
	}

	exists, err := service.users.ExistsByNormalizedEmail(normalized)
	if err != nil {
		return models.User{}, WrapInternal(err, "check email uniqueness")
	}
	if exists {
		return models.User{}, NewError(KindInvalidArgument, "email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, WrapInternal(err, "hash password")
	}

	user := models.User{
		Email:               normalized,
		PasswordHash:        string(hash),
		FullName:            strings.TrimSpace(fullName),
		AverageCycleLength:  models.DefaultCycleLength,
		AveragePeriodLength: models.DefaultPeriodLength,
		PainPatterns:        models.PainPatterns{},
		Settings:            models.DefaultSettings(),
		CreatedAt:           now,
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, WrapInternal(err, "create user")
	}
	return user, nil
}

func (service *AuthService) Login(email string, password string) (models.User, error) {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return models.User{}, NewError(KindUnauthenticated, "invalid credentials")
	}

	user, err := service.users.FindByNormalizedEmail(normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, NewError(KindUnauthenticated, "invalid credentials")
		}
		return models.User{}, WrapInternal(err, "load user")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, NewError(KindUnauthenticated, "invalid credentials")
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}
