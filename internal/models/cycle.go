package models

import "time"

// Cycle is one tracked menstrual cycle. EndDate and DurationDays stay nil
// until the cycle is closed and are never touched again afterwards.
// PredictedEndDate is fixed at creation from the average cycle length known
// at that moment.
type Cycle struct {
	ID               uint      `gorm:"primaryKey"`
	UserID           uint      `gorm:"not null;index"`
	StartDate        time.Time `gorm:"not null"`
	EndDate          *time.Time
	PredictedEndDate time.Time `gorm:"not null"`
	DurationDays     *int
	Notes            string
	Symptoms         []SymptomEntry `gorm:"foreignKey:CycleID"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (cycle *Cycle) Closed() bool {
	return cycle.EndDate != nil
}
