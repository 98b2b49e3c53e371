package services

import (
	"errors"
	"math"
	"time"

	"github.com/calyxhealth/calyx/internal/models"
	"gorm.io/gorm"
)

// painSmoothingAlpha weights the newest sample in the exponential update.
const painSmoothingAlpha = 0.3

const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

const simpleModelType = "simple"

// CycleDayFor computes the 1-based cycle day of an event relative to the
// period start: the ceiling of the absolute gap in days. A same-instant event
// lands on day 0.
func CycleDayFor(eventDate time.Time, periodStart time.Time) int {
	gap := eventDate.Sub(periodStart)
	if gap < 0 {
		gap = -gap
	}
	return int(math.Ceil(gap.Hours() / 24))
}

// SmoothPainSlot applies exactly one exponential smoothing step. Unset slots
// start from zero. The result depends on call order and call count; callers
// must apply each observation exactly once.
func SmoothPainSlot(current float64, intensity int) float64 {
	return current*(1-painSmoothingAlpha) + float64(intensity)*painSmoothingAlpha
}

type PainForecast struct {
	Predictions          map[int]int `json:"predictions"`
	HighPainDays         []int       `json:"high_pain_days"`
	MediumPainDays       []int       `json:"medium_pain_days"`
	PredictionQuality    float64     `json:"prediction_quality"`
	PredictedCycleLength int         `json:"predicted_cycle_length"`
	Confidence           string      `json:"confidence"`
	ModelType            string      `json:"model_type"`
}

// ForecastPain builds the 35-day forecast from the smoothed pattern map.
// Days without a direct value are interpolated from their neighbours: the
// mean when both exist, 90% of a single neighbour otherwise, zero when
// isolated. Days at 7+ are reported high-pain, 4-6 medium-pain.
func ForecastPain(patterns models.PainPatterns, averageCycleLength int) PainForecast {
	if averageCycleLength <= 0 {
		averageCycleLength = models.DefaultCycleLength
	}

	predictions := make(map[int]int, models.MaxTrackedCycleDay)
	highPainDays := make([]int, 0)
	mediumPainDays := make([]int, 0)

	for day := 1; day <= models.MaxTrackedCycleDay; day++ {
		painLevel := 0

		if value, known := patterns[day]; known {
			painLevel = int(math.Round(value))
		} else {
			previous, hasPrevious := patterns[day-1]
			next, hasNext := patterns[day+1]
			switch {
			case hasPrevious && hasNext:
				painLevel = int(math.Round((previous + next) / 2))
			case hasPrevious:
				painLevel = int(math.Round(previous * 0.9))
			case hasNext:
				painLevel = int(math.Round(next * 0.9))
			}
		}

		predictions[day] = painLevel

		if painLevel >= 7 {
			highPainDays = append(highPainDays, day)
		} else if painLevel >= 4 {
			mediumPainDays = append(mediumPainDays, day)
		}
	}

	knownSlots := len(patterns)

	return PainForecast{
		Predictions:          predictions,
		HighPainDays:         highPainDays,
		MediumPainDays:       mediumPainDays,
		PredictionQuality:    qualityForSamples(knownSlots),
		PredictedCycleLength: averageCycleLength,
		Confidence:           confidenceForSamples(knownSlots),
		ModelType:            simpleModelType,
	}
}

// qualityForSamples maps known-slot count onto the 1-6 quality scale.
func qualityForSamples(knownSlots int) float64 {
	return math.Min(6, math.Max(1, float64(knownSlots)/5))
}

// confidenceForSamples is the categorical label. Its thresholds are defined
// separately from the quality scale and may disagree with it near the
// boundaries; both measures are reported as-is.
func confidenceForSamples(knownSlots int) string {
	switch {
	case knownSlots > 20:
		return ConfidenceHigh
	case knownSlots > 10:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

type PainPatternUserStore interface {
	FindByID(userID uint) (models.User, error)
	UpdatePainPatterns(userID uint, patterns models.PainPatterns) error
}

// PainPatternService folds pain observations into the per-user pattern map.
type PainPatternService struct {
	users PainPatternUserStore
	locks *UserLocks
}

func NewPainPatternService(users PainPatternUserStore, locks *UserLocks) *PainPatternService {
	return &PainPatternService{users: users, locks: locks}
}

// ApplyObservation performs one smoothing step for a pain-relevant symptom.
// Non-pain symptoms, users without a recorded period start and events beyond
// the tracked 35-day window are silent no-ops.
func (service *PainPatternService) ApplyObservation(userID uint, symptomType string, intensity int, eventDate time.Time) error {
	if !models.IsPainRelevant(symptomType) {
		return nil
	}

	release := service.locks.Lock(userID)
	defer release()

	user, err := service.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if user.LastPeriodStart == nil {
		return nil
	}

	cycleDay := CycleDayFor(eventDate, *user.LastPeriodStart)
	if cycleDay > models.MaxTrackedCycleDay {
		return nil
	}

	patterns := user.PainPatterns
	if patterns == nil {
		patterns = models.PainPatterns{}
	}
	patterns[cycleDay] = SmoothPainSlot(patterns[cycleDay], intensity)

	return service.users.UpdatePainPatterns(userID, patterns)
}

// Forecast loads the user's pattern map and produces the simple forecast.
func (service *PainPatternService) Forecast(userID uint) (PainForecast, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PainForecast{}, NewError(KindNotFound, "user profile not found")
		}
		return PainForecast{}, WrapInternal(err, "load user profile")
	}
	return ForecastPain(user.PainPatterns, user.AverageCycleLength), nil
}
