package services

import (
	"errors"
	"math"
	"time"

	"github.com/calyxhealth/calyx/internal/models"
	"gorm.io/gorm"
)

// rollingAverageWindow is how many recent closed cycles feed the average
// cycle length.
const rollingAverageWindow = 6

const defaultHistoryLimit = 12

type CycleUserStore interface {
	FindByID(userID uint) (models.User, error)
	SetActiveCycle(userID uint, cycleID uint, periodStart time.Time) error
	ClearActiveCycle(userID uint, newAverageCycleLength int) error
	ClearStaleCycleReference(userID uint) error
}

type CycleStore interface {
	Create(cycle *models.Cycle) error
	FindByIDForUser(cycleID uint, userID uint) (models.Cycle, error)
	Close(cycleID uint, endDate time.Time, durationDays int) error
	RecentClosedDurations(userID uint, limit int) ([]int, error)
	ListRecentByUser(userID uint, limit int) ([]models.Cycle, error)
}

type CycleSymptomStore interface {
	CreateBatch(entries []models.SymptomEntry) error
}

// CycleService is the cycle state machine: idle until a start, active until
// the matching end, with the rolling average recomputed on every close.
type CycleService struct {
	users    CycleUserStore
	cycles   CycleStore
	symptoms CycleSymptomStore
	locks    *UserLocks
}

func NewCycleService(users CycleUserStore, cycles CycleStore, symptoms CycleSymptomStore, locks *UserLocks) *CycleService {
	return &CycleService{users: users, cycles: cycles, symptoms: symptoms, locks: locks}
}

// SymptomObservation is a symptom reported together with a cycle start.
type SymptomObservation struct {
	Type      string
	Intensity int
	Date      *time.Time
	Notes     string
}

type CycleStartResult struct {
	CycleID          uint      `json:"cycle_id"`
	PredictedEndDate time.Time `json:"predicted_end_date"`
}

// Start opens a new cycle and repoints the profile's active-cycle reference.
// Starting while another cycle is open is permitted: the previous cycle stays
// open but is no longer the referenced one.
func (service *CycleService) Start(userID uint, startDate time.Time, symptoms []SymptomObservation, notes string) (CycleStartResult, error) {
	release := service.locks.Lock(userID)
	defer release()

	user, err := service.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CycleStartResult{}, NewError(KindNotFound, "user profile not found")
		}
		return CycleStartResult{}, WrapInternal(err, "load user profile")
	}

	averageCycleLength := user.AverageCycleLength
	if averageCycleLength <= 0 {
		averageCycleLength = models.DefaultCycleLength
	}

	cycle := models.Cycle{
		UserID:           userID,
		StartDate:        startDate,
		PredictedEndDate: startDate.AddDate(0, 0, averageCycleLength),
		Notes:            notes,
	}
	if err := service.cycles.Create(&cycle); err != nil {
		return CycleStartResult{}, WrapInternal(err, "create cycle")
	}

	if len(symptoms) > 0 {
		entries := make([]models.SymptomEntry, 0, len(symptoms))
		for _, observation := range symptoms {
			date := startDate
			if observation.Date != nil {
				date = *observation.Date
			}
			entries = append(entries, models.SymptomEntry{
				UserID:    userID,
				CycleID:   &cycle.ID,
				Type:      observation.Type,
				Intensity: observation.Intensity,
				Date:      date,
				Notes:     observation.Notes,
			})
		}
		if err := service.symptoms.CreateBatch(entries); err != nil {
			return CycleStartResult{}, WrapInternal(err, "record cycle symptoms")
		}
	}

	if err := service.users.SetActiveCycle(userID, cycle.ID, startDate); err != nil {
		return CycleStartResult{}, WrapInternal(err, "update active cycle reference")
	}

	return CycleStartResult{
		CycleID:          cycle.ID,
		PredictedEndDate: cycle.PredictedEndDate,
	}, nil
}

type CycleEndResult struct {
	CycleLength           int `json:"cycle_length"`
	NewAverageCycleLength int `json:"new_average_cycle_length"`
}

// End closes a cycle: the referenced one when cycleID is nil, an explicit one
// otherwise. The duration is measured from the observed dates, never from the
// prediction, and the rolling average cycle length is recomputed from the
// most recent closed cycles.
func (service *CycleService) End(userID uint, cycleID *uint, endDate *time.Time, now time.Time) (CycleEndResult, error) {
	release := service.locks.Lock(userID)
	defer release()

	targetCycleID, err := service.resolveTargetCycle(userID, cycleID)
	if err != nil {
		return CycleEndResult{}, err
	}

	cycle, err := service.cycles.FindByIDForUser(targetCycleID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CycleEndResult{}, NewError(KindNotFound, "cycle not found")
		}
		return CycleEndResult{}, WrapInternal(err, "load cycle")
	}

	observedEnd := now
	if endDate != nil {
		observedEnd = *endDate
	}
	durationDays := CycleDayFor(observedEnd, cycle.StartDate)

	if err := service.cycles.Close(cycle.ID, observedEnd, durationDays); err != nil {
		return CycleEndResult{}, WrapInternal(err, "close cycle")
	}

	newAverage, err := service.recomputeAverageCycleLength(userID)
	if err != nil {
		return CycleEndResult{}, err
	}

	if err := service.users.ClearActiveCycle(userID, newAverage); err != nil {
		return CycleEndResult{}, WrapInternal(err, "clear active cycle reference")
	}

	return CycleEndResult{
		CycleLength:           durationDays,
		NewAverageCycleLength: newAverage,
	}, nil
}

func (service *CycleService) resolveTargetCycle(userID uint, cycleID *uint) (uint, error) {
	if cycleID != nil {
		return *cycleID, nil
	}

	user, err := service.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, NewError(KindNotFound, "user profile not found")
		}
		return 0, WrapInternal(err, "load user profile")
	}
	if user.CurrentCycleID == nil {
		return 0, NewError(KindPreconditionFailed, "no active cycle found")
	}
	return *user.CurrentCycleID, nil
}

func (service *CycleService) recomputeAverageCycleLength(userID uint) (int, error) {
	durations, err := service.cycles.RecentClosedDurations(userID, rollingAverageWindow)
	if err != nil {
		return 0, WrapInternal(err, "load recent cycle durations")
	}
	if len(durations) == 0 {
		return models.DefaultCycleLength, nil
	}

	total := 0
	for _, duration := range durations {
		total += duration
	}
	return int(math.Round(float64(total) / float64(len(durations)))), nil
}

type CycleInfo struct {
	AverageCycleLength  int        `json:"average_cycle_length"`
	AveragePeriodLength int        `json:"average_period_length"`
	LastPeriodStart     *time.Time `json:"last_period_start,omitempty"`
}

type ActiveCycleStats struct {
	ID                  uint      `json:"id"`
	StartDate           time.Time `json:"start_date"`
	PredictedEndDate    time.Time `json:"predicted_end_date"`
	CurrentDay          int       `json:"current_day"`
	Phase               string    `json:"cycle_phase"`
	DaysUntilNextPeriod *int      `json:"days_until_next_period"`
}

type CurrentCycleStats struct {
	HasCycle bool              `json:"has_cycle"`
	Cycle    *ActiveCycleStats `json:"cycle,omitempty"`
	Info     CycleInfo         `json:"cycle_info"`
}

// CurrentStats reports the per-day view of the active cycle, or just the
// profile baselines when idle. A dangling active-cycle reference is cleared
// before the not-found is surfaced.
func (service *CycleService) CurrentStats(userID uint, now time.Time) (CurrentCycleStats, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CurrentCycleStats{}, NewError(KindNotFound, "user profile not found")
		}
		return CurrentCycleStats{}, WrapInternal(err, "load user profile")
	}

	info := CycleInfo{
		AverageCycleLength:  user.AverageCycleLength,
		AveragePeriodLength: user.AveragePeriodLength,
	}
	if info.AverageCycleLength <= 0 {
		info.AverageCycleLength = models.DefaultCycleLength
	}
	if info.AveragePeriodLength <= 0 {
		info.AveragePeriodLength = models.DefaultPeriodLength
	}

	if user.CurrentCycleID == nil {
		info.LastPeriodStart = user.LastPeriodStart
		return CurrentCycleStats{HasCycle: false, Info: info}, nil
	}

	cycle, err := service.cycles.FindByIDForUser(*user.CurrentCycleID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if clearErr := service.users.ClearStaleCycleReference(userID); clearErr != nil {
				return CurrentCycleStats{}, WrapInternal(clearErr, "clear stale cycle reference")
			}
			return CurrentCycleStats{}, NewError(KindNotFound, "current cycle not found")
		}
		return CurrentCycleStats{}, WrapInternal(err, "load current cycle")
	}

	currentDay := CycleDayFor(now, cycle.StartDate)

	stats := ActiveCycleStats{
		ID:                  cycle.ID,
		StartDate:           cycle.StartDate,
		PredictedEndDate:    cycle.PredictedEndDate,
		CurrentDay:          currentDay,
		Phase:               ClassifyCyclePhase(currentDay, info.AveragePeriodLength),
		DaysUntilNextPeriod: daysUntilNextPeriod(cycle.PredictedEndDate, now, info.AverageCycleLength, currentDay),
	}

	return CurrentCycleStats{HasCycle: true, Cycle: &stats, Info: info}, nil
}

// daysUntilNextPeriod counts up to the stored prediction; once the prediction
// is in the past it returns nil rather than a negative count.
func daysUntilNextPeriod(predictedEndDate time.Time, now time.Time, averageCycleLength int, currentDay int) *int {
	remaining := 0
	if !predictedEndDate.IsZero() {
		remaining = int(math.Ceil(predictedEndDate.Sub(now).Hours() / 24))
	} else {
		remaining = averageCycleLength - currentDay
	}
	if remaining <= 0 {
		return nil
	}
	return &remaining
}

// History lists recent cycles, newest first, with their symptom entries.
func (service *CycleService) History(userID uint, limit int) ([]models.Cycle, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	cycles, err := service.cycles.ListRecentByUser(userID, limit)
	if err != nil {
		return nil, WrapInternal(err, "load cycle history")
	}
	return cycles, nil
}
