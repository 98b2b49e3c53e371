package models

import "time"

const (
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5
)

const MaxTrackedCycleDay = 35

// PainPatterns maps a cycle day index to a smoothed pain intensity (0-10).
// Day indexes normally fall in 1..MaxTrackedCycleDay; a same-instant symptom
// lands on day 0, which still participates in forecast interpolation as the
// lower neighbour of day 1.
type PainPatterns map[int]float64

type Settings struct {
	NotificationPreferences map[string]bool `json:"notification_preferences"`
	HeatTherapyEnabled      bool            `json:"heat_therapy_enabled"`
	GamificationEnabled     bool            `json:"gamification_enabled"`
}

func DefaultSettings() Settings {
	return Settings{
		NotificationPreferences: map[string]bool{},
		HeatTherapyEnabled:      false,
		GamificationEnabled:     true,
	}
}

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	FullName     string
	BirthDate    *time.Time

	AverageCycleLength  int `gorm:"not null;default:28"`
	AveragePeriodLength int `gorm:"not null;default:5"`
	LastPeriodStart     *time.Time
	CurrentCycleID      *uint
	PainPatterns        PainPatterns `gorm:"serializer:json"`

	Settings Settings `gorm:"serializer:json"`

	MeditationTotalSessions int `gorm:"not null;default:0"`
	MeditationLastSession   *time.Time

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time
}

// HasActiveCycle reports the Active state of the cycle state machine: a
// non-nil CurrentCycleID references the single open cycle.
func (user *User) HasActiveCycle() bool {
	return user.CurrentCycleID != nil
}
