package models

import "time"

const (
	SymptomCramps        = "cramps"
	SymptomHeadache      = "headache"
	SymptomBackache      = "backache"
	SymptomAbdominalPain = "abdominal_pain"
	SymptomBloating      = "bloating"
	SymptomFatigue       = "fatigue"
	SymptomNausea        = "nausea"
	SymptomMoodSwings    = "mood_swings"
)

// IsPainRelevant reports whether a symptom type feeds the pain pattern model.
func IsPainRelevant(symptomType string) bool {
	switch symptomType {
	case SymptomCramps, SymptomHeadache, SymptomBackache, SymptomAbdominalPain:
		return true
	default:
		return false
	}
}

// SymptomEntry is immutable once created. CycleID is nil for symptoms logged
// against an explicit cycle that was later removed, never rewritten.
type SymptomEntry struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	CycleID   *uint     `gorm:"index"`
	Type      string    `gorm:"not null"`
	Intensity int       `gorm:"not null"`
	Date      time.Time `gorm:"not null;index"`
	Notes     string
	CreatedAt time.Time
}
