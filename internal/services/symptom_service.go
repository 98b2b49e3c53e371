package services

import (
	"errors"
	"strings"
	"time"

	"github.com/calyxhealth/calyx/internal/models"
	"gorm.io/gorm"
)

const defaultSymptomHistoryLimit = 50

type SymptomUserStore interface {
	FindByID(userID uint) (models.User, error)
}

type SymptomStore interface {
	Create(entry *models.SymptomEntry) error
	ListRecentByUser(userID uint, limit int) ([]models.SymptomEntry, error)
	ListFiltered(userID uint, symptomType string, from *time.Time, to *time.Time, limit int) ([]models.SymptomEntry, error)
}

type SymptomCycleStore interface {
	FindByIDForUser(cycleID uint, userID uint) (models.Cycle, error)
	ListRecentStarts(userID uint, limit int) ([]models.Cycle, error)
}

type SymptomService struct {
	users    SymptomUserStore
	symptoms SymptomStore
	cycles   SymptomCycleStore
	worker   *PatternWorker
}

func NewSymptomService(users SymptomUserStore, symptoms SymptomStore, cycles SymptomCycleStore, worker *PatternWorker) *SymptomService {
	return &SymptomService{users: users, symptoms: symptoms, cycles: cycles, worker: worker}
}

type SymptomLogInput struct {
	CycleID   *uint
	Type      string
	Intensity int
	Date      *time.Time
	Notes     string
}

// Log stores one symptom entry against the explicit or active cycle, then
// hands the observation to the pattern worker. The primary write succeeds or
// fails on its own; model enrichment happens in the background.
func (service *SymptomService) Log(userID uint, input SymptomLogInput, now time.Time) (uint, error) {
	if strings.TrimSpace(input.Type) == "" || input.Intensity < 1 || input.Intensity > 10 {
		return 0, NewError(KindInvalidArgument, "symptom type and intensity (1-10) are required")
	}

	cycleID, err := service.resolveCycle(userID, input.CycleID)
	if err != nil {
		return 0, err
	}

	eventDate := now
	if input.Date != nil {
		eventDate = *input.Date
	}

	entry := models.SymptomEntry{
		UserID:    userID,
		CycleID:   &cycleID,
		Type:      input.Type,
		Intensity: input.Intensity,
		Date:      eventDate,
		Notes:     input.Notes,
	}
	if err := service.symptoms.Create(&entry); err != nil {
		return 0, WrapInternal(err, "create symptom entry")
	}

	if service.worker != nil {
		service.worker.Enqueue(PainObservation{
			UserID:      userID,
			SymptomType: input.Type,
			Intensity:   input.Intensity,
			Date:        eventDate,
		})
	}

	return entry.ID, nil
}

func (service *SymptomService) resolveCycle(userID uint, cycleID *uint) (uint, error) {
	if cycleID != nil {
		if _, err := service.cycles.FindByIDForUser(*cycleID, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, NewError(KindNotFound, "cycle not found")
			}
			return 0, WrapInternal(err, "load cycle")
		}
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

type SymptomHistoryFilter struct {
	Type  string
	From  *time.Time
	To    *time.Time
	Limit int
}

func (service *SymptomService) History(userID uint, filter SymptomHistoryFilter) ([]models.SymptomEntry, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultSymptomHistoryLimit
	}
	entries, err := service.symptoms.ListFiltered(userID, filter.Type, filter.From, filter.To, limit)
	if err != nil {
		return nil, WrapInternal(err, "load symptom history")
	}
	return entries, nil
}

// Analyze aggregates the recent symptom history; see AnalyzeSymptoms for the
// breakdown rules.
func (service *SymptomService) Analyze(userID uint) (SymptomAnalysis, error) {
	symptoms, err := service.symptoms.ListRecentByUser(userID, analysisSymptomLimit)
	if err != nil {
		return SymptomAnalysis{}, WrapInternal(err, "load recent symptoms")
	}
	cycles, err := service.cycles.ListRecentStarts(userID, analysisCycleLimit)
	if err != nil {
		return SymptomAnalysis{}, WrapInternal(err, "load recent cycles")
	}
	return AnalyzeSymptoms(symptoms, cycles), nil
}
