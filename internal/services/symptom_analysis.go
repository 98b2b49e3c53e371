package services

import (
	"math"

	"github.com/calyxhealth/calyx/internal/models"
)

const (
	analysisSymptomLimit = 200
	analysisCycleLimit   = 6
)

type TypeBreakdown struct {
	Count            int     `json:"count"`
	Percentage       int     `json:"percentage"`
	AverageIntensity float64 `json:"average_intensity"`
}

type DayTypeBreakdown struct {
	Count            int     `json:"count"`
	AverageIntensity float64 `json:"average_intensity"`
}

type DayBreakdown struct {
	Count            int                         `json:"count"`
	AverageIntensity float64                     `json:"average_intensity"`
	ByType           map[string]DayTypeBreakdown `json:"by_type"`
}

type SymptomAnalysis struct {
	TotalSymptoms  int                      `json:"total_symptoms"`
	SymptomsByType map[string]TypeBreakdown `json:"symptoms_by_type"`
	SymptomsByDay  map[int]DayBreakdown     `json:"symptoms_by_day"`
}

// AnalyzeSymptoms is a pure aggregation over a symptom window: per-type
// counts, share of total and mean intensity, plus a per-cycle-day breakdown
// derived from the owning cycle's start date. Symptoms landing past day 35
// or without a known owning cycle are excluded from the day view only.
func AnalyzeSymptoms(symptoms []models.SymptomEntry, cycles []models.Cycle) SymptomAnalysis {
	analysis := SymptomAnalysis{
		TotalSymptoms:  len(symptoms),
		SymptomsByType: make(map[string]TypeBreakdown),
		SymptomsByDay:  make(map[int]DayBreakdown),
	}
	if len(symptoms) == 0 {
		return analysis
	}

	type typeTally struct {
		count          int
		totalIntensity int
	}

	byType := make(map[string]*typeTally)
	for _, symptom := range symptoms {
		tally, exists := byType[symptom.Type]
		if !exists {
			tally = &typeTally{}
			byType[symptom.Type] = tally
		}
		tally.count++
		tally.totalIntensity += symptom.Intensity
	}

	for symptomType, tally := range byType {
		analysis.SymptomsByType[symptomType] = TypeBreakdown{
			Count:            tally.count,
			Percentage:       int(math.Round(float64(tally.count) / float64(len(symptoms)) * 100)),
			AverageIntensity: roundTenth(float64(tally.totalIntensity) / float64(tally.count)),
		}
	}

	cycleStarts := make(map[uint]models.Cycle, len(cycles))
	for _, cycle := range cycles {
		cycleStarts[cycle.ID] = cycle
	}

	type dayTally struct {
		count          int
		totalIntensity int
		byType         map[string]*typeTally
	}

	byDay := make(map[int]*dayTally)
	for _, symptom := range symptoms {
		if symptom.CycleID == nil {
			continue
		}
		cycle, known := cycleStarts[*symptom.CycleID]
		if !known {
			continue
		}

		cycleDay := CycleDayFor(symptom.Date, cycle.StartDate)
		if cycleDay > models.MaxTrackedCycleDay {
			continue
		}

		tally, exists := byDay[cycleDay]
		if !exists {
			tally = &dayTally{byType: make(map[string]*typeTally)}
			byDay[cycleDay] = tally
		}
		tally.count++
		tally.totalIntensity += symptom.Intensity

		typed, exists := tally.byType[symptom.Type]
		if !exists {
			typed = &typeTally{}
			tally.byType[symptom.Type] = typed
		}
		typed.count++
		typed.totalIntensity += symptom.Intensity
	}

	for cycleDay, tally := range byDay {
		byTypeBreakdown := make(map[string]DayTypeBreakdown, len(tally.byType))
		for symptomType, typed := range tally.byType {
			byTypeBreakdown[symptomType] = DayTypeBreakdown{
				Count:            typed.count,
				AverageIntensity: roundTenth(float64(typed.totalIntensity) / float64(typed.count)),
			}
		}
		analysis.SymptomsByDay[cycleDay] = DayBreakdown{
			Count:            tally.count,
			AverageIntensity: roundTenth(float64(tally.totalIntensity) / float64(tally.count)),
			ByType:           byTypeBreakdown,
		}
	}

	return analysis
}

func roundTenth(value float64) float64 {
	return math.Round(value*10) / 10
}
