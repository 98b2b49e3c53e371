package models

import "time"

type Plant struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	PlantType string    `gorm:"not null"`
	PlantedAt time.Time `gorm:"not null"`
	MoodScore int       `gorm:"not null"`
	CreatedAt time.Time
}

type WellnessActivity struct {
	ID           uint      `gorm:"primaryKey"`
	UserID       uint      `gorm:"not null;index"`
	Date         time.Time `gorm:"not null"`
	ActivityType string    `gorm:"not null"`
	PointsEarned int       `gorm:"not null"`
	CreatedAt    time.Time
}

type PlantBand struct {
	MinScore int
	Plants   []string
}

// PlantBands lists plant choices per mood band, highest band first. Selection
// walks the list and picks uniformly within the first band whose MinScore the
// mood satisfies.
func PlantBands() []PlantBand {
	return []PlantBand{
		{MinScore: 8, Plants: []string{"sunflower", "tulip", "rose", "hibiscus", "daisy"}},
		{MinScore: 6, Plants: []string{"fern", "basil", "mint", "bamboo", "lily"}},
		{MinScore: 4, Plants: []string{"snake_plant", "pothos", "zz_plant", "prayer_plant", "monstera"}},
		{MinScore: 2, Plants: []string{"succulent", "cactus", "aloe", "jade", "haworthia"}},
		{MinScore: 0, Plants: []string{"air_plant", "moss", "desert_rose", "lithops", "stone_crop"}},
	}
}
