package models

import "time"

type BiosensorRecord struct {
	ID              uint      `gorm:"primaryKey"`
	UserID          uint      `gorm:"not null;index"`
	Date            time.Time `gorm:"not null"`
	PainLevel       *float64
	BodyTemperature *float64
	HeartRate       *int
	OtherMetrics    map[string]float64 `gorm:"serializer:json"`
	CreatedAt       time.Time
}
