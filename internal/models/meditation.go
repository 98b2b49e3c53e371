package models

import "time"

type Meditation struct {
	ID              uint   `gorm:"primaryKey"`
	Title           string `gorm:"not null"`
	DurationMinutes int    `gorm:"not null"`
	Category        string
}

type MeditationSession struct {
	ID              uint      `gorm:"primaryKey"`
	UserID          uint      `gorm:"not null;index"`
	MeditationID    uint      `gorm:"not null"`
	Title           string    `gorm:"not null"`
	DurationMinutes int       `gorm:"not null"`
	Date            time.Time `gorm:"not null"`
	CreatedAt       time.Time
}
