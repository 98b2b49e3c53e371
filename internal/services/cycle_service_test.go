package services

import (
	"testing"
	"time"

	"github.com/calyxhealth/calyx/internal/models"
	"gorm.io/gorm"
)

type fakeCycleUserStore struct {
	user models.User

	activeCycleID     *uint
	activePeriodStart time.Time
	clearedAverage    int
	clearedCalls      int
	staleCleared      int
}

func (store *fakeCycleUserStore) FindByID(userID uint) (models.User, error) {
	if store.user.ID == 0 {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return store.user, nil
}

func (store *fakeCycleUserStore) SetActiveCycle(userID uint, cycleID uint, periodStart time.Time) error {
	store.activeCycleID = &cycleID
	store.activePeriodStart = periodStart
	return nil
}

func (store *fakeCycleUserStore) ClearActiveCycle(userID uint, newAverageCycleLength int) error {
	store.clearedAverage = newAverageCycleLength
	store.clearedCalls++
	return nil
}

func (store *fakeCycleUserStore) ClearStaleCycleReference(userID uint) error {
	store.staleCleared++
	return nil
}

type fakeCycleStore struct {
	cycles    map[uint]models.Cycle
	nextID    uint
	durations []int

	closedID       uint
	closedEnd      time.Time
	closedDuration int
}

func newFakeCycleStore() *fakeCycleStore {
	return &fakeCycleStore{cycles: make(map[uint]models.Cycle), nextID: 1}
}

func (store *fakeCycleStore) Create(cycle *models.Cycle) error {
	cycle.ID = store.nextID
	store.nextID++
	store.cycles[cycle.ID] = *cycle
	return nil
}

func (store *fakeCycleStore) FindByIDForUser(cycleID uint, userID uint) (models.Cycle, error) {
	cycle, exists := store.cycles[cycleID]
	if !exists || cycle.UserID != userID {
		return models.Cycle{}, gorm.ErrRecordNotFound
	}
	return cycle, nil
}

func (store *fakeCycleStore) Close(cycleID uint, endDate time.Time, durationDays int) error {
	store.closedID = cycleID
	store.closedEnd = endDate
	store.closedDuration = durationDays
	return nil
}

func (store *fakeCycleStore) RecentClosedDurations(userID uint, limit int) ([]int, error) {
	if len(store.durations) > limit {
		return store.durations[:limit], nil
	}
	return store.durations, nil
}

func (store *fakeCycleStore) ListRecentByUser(userID uint, limit int) ([]models.Cycle, error) {
	listed := make([]models.Cycle, 0, len(store.cycles))
	for _, cycle := range store.cycles {
		if cycle.UserID == userID {
			listed = append(listed, cycle)
		}
	}
	return listed, nil
}

type fakeCycleSymptomStore struct {
	batches [][]models.SymptomEntry
}

func (store *fakeCycleSymptomStore) CreateBatch(entries []models.SymptomEntry) error {
	store.batches = append(store.batches, entries)
	return nil
}

func TestCycleService_Start(t *testing.T) {
	t.Parallel()

	users := &fakeCycleUserStore{user: models.User{ID: 1, AverageCycleLength: 30}}
	cycles := newFakeCycleStore()
	symptoms := &fakeCycleSymptomStore{}
	service := NewCycleService(users, cycles, symptoms, NewUserLocks())

	startDate := mustParseTime(t, "2026-04-01T00:00:00Z")
	result, err := service.Start(1, startDate, []SymptomObservation{
		{Type: models.SymptomCramps, Intensity: 6},
	}, "heavy start")
	if err != nil {
		t.Fatalf("start cycle: %v", err)
	}

	if result.CycleID == 0 {
		t.Fatalf("expected a cycle id")
	}
	wantPredicted := startDate.AddDate(0, 0, 30)
	if !result.PredictedEndDate.Equal(wantPredicted) {
		t.Fatalf("expected predicted end %s, got %s", wantPredicted, result.PredictedEndDate)
	}

	if users.activeCycleID == nil || *users.activeCycleID != result.CycleID {
		t.Fatalf("expected active cycle reference to point at the new cycle")
	}
	if !users.activePeriodStart.Equal(startDate) {
		t.Fatalf("expected last period start %s, got %s", startDate, users.activePeriodStart)
	}

	if len(symptoms.batches) != 1 || len(symptoms.batches[0]) != 1 {
		t.Fatalf("expected one batched symptom entry, got %v", symptoms.batches)
	}
	entry := symptoms.batches[0][0]
	if entry.CycleID == nil || *entry.CycleID != result.CycleID {
		t.Fatalf("expected symptom entry bound to the new cycle")
	}
	if !entry.Date.Equal(startDate) {
		t.Fatalf("expected undated symptom to default to the start date")
	}
}

func TestCycleService_Start_WhileAnotherCycleOpen(t *testing.T) {
	t.Parallel()

	openCycleID := uint(7)
	users := &fakeCycleUserStore{user: models.User{ID: 1, AverageCycleLength: 28, CurrentCycleID: &openCycleID}}
	cycles := newFakeCycleStore()
	service := NewCycleService(users, cycles, &fakeCycleSymptomStore{}, NewUserLocks())

	result, err := service.Start(1, mustParseTime(t, "2026-04-20T00:00:00Z"), nil, "")
	if err != nil {
		t.Fatalf("expected a start while active to be permitted, got: %v", err)
	}
	if users.activeCycleID == nil || *users.activeCycleID != result.CycleID {
		t.Fatalf("expected active reference repointed to the new cycle")
	}
}

func TestCycleService_End_ClosesActiveCycle(t *testing.T) {
	t.Parallel()

	cycles := newFakeCycleStore()
	startDate := mustParseTime(t, "2026-01-01T00:00:00Z")
	cycle := models.Cycle{UserID: 1, StartDate: startDate}
	if err := cycles.Create(&cycle); err != nil {
		t.Fatalf("seed cycle: %v", err)
	}
	cycles.durations = []int{28, 30, 27, 29, 28, 26}

	users := &fakeCycleUserStore{user: models.User{ID: 1, CurrentCycleID: &cycle.ID}}
	service := NewCycleService(users, cycles, &fakeCycleSymptomStore{}, NewUserLocks())

	endDate := mustParseTime(t, "2026-01-29T10:00:00Z")
	result, err := service.End(1, nil, &endDate, time.Now())
	if err != nil {
		t.Fatalf("end cycle: %v", err)
	}

	if result.CycleLength != 29 {
		t.Fatalf("expected duration 29 (partial day rounds up), got %d", result.CycleLength)
	}
	if result.NewAverageCycleLength != 28 {
		t.Fatalf("expected rolling average 28, got %d", result.NewAverageCycleLength)
	}
	if cycles.closedID != cycle.ID || cycles.closedDuration != 29 {
		t.Fatalf("expected cycle %d closed with duration 29, got %d/%d", cycle.ID, cycles.closedID, cycles.closedDuration)
	}
	if users.clearedCalls != 1 || users.clearedAverage != 28 {
		t.Fatalf("expected active reference cleared with average 28")
	}
}

func TestCycleService_End_NoActiveCycle(t *testing.T) {
	t.Parallel()

	users := &fakeCycleUserStore{user: models.User{ID: 1}}
	service := NewCycleService(users, newFakeCycleStore(), &fakeCycleSymptomStore{}, NewUserLocks())

	_, err := service.End(1, nil, nil, time.Now())
	if err == nil {
		t.Fatalf("expected an error when no cycle is active")
	}
	if KindOf(err) != KindPreconditionFailed {
		t.Fatalf("expected precondition-failed, got %s", KindOf(err))
	}
}

func TestCycleService_End_NoClosedHistoryFallsBackToDefault(t *testing.T) {
	t.Parallel()

	cycles := newFakeCycleStore()
	cycle := models.Cycle{UserID: 1, StartDate: mustParseTime(t, "2026-01-01T00:00:00Z")}
	if err := cycles.Create(&cycle); err != nil {
		t.Fatalf("seed cycle: %v", err)
	}

	users := &fakeCycleUserStore{user: models.User{ID: 1, CurrentCycleID: &cycle.ID}}
	service := NewCycleService(users, cycles, &fakeCycleSymptomStore{}, NewUserLocks())

	result, err := service.End(1, nil, nil, mustParseTime(t, "2026-01-28T00:00:00Z"))
	if err != nil {
		t.Fatalf("end cycle: %v", err)
	}
	if result.NewAverageCycleLength != models.DefaultCycleLength {
		t.Fatalf("expected default average %d with no closed history, got %d",
			models.DefaultCycleLength, result.NewAverageCycleLength)
	}
}

func TestCycleService_CurrentStats_SelfHealsStaleReference(t *testing.T) {
	t.Parallel()

	missingCycleID := uint(42)
	users := &fakeCycleUserStore{user: models.User{ID: 1, AverageCycleLength: 28, AveragePeriodLength: 5, CurrentCycleID: &missingCycleID}}
	service := NewCycleService(users, newFakeCycleStore(), &fakeCycleSymptomStore{}, NewUserLocks())

	_, err := service.CurrentStats(1, time.Now())
	if err == nil {
		t.Fatalf("expected not-found for a dangling cycle reference")
	}
	if KindOf(err) != KindNotFound {
		t.Fatalf("expected not-found, got %s", KindOf(err))
	}
	if users.staleCleared != 1 {
		t.Fatalf("expected the stale reference to be cleared")
	}
}

func TestCycleService_CurrentStats_ActiveCycle(t *testing.T) {
	t.Parallel()

	cycles := newFakeCycleStore()
	startDate := mustParseTime(t, "2026-05-01T00:00:00Z")
	cycle := models.Cycle{UserID: 1, StartDate: startDate, PredictedEndDate: startDate.AddDate(0, 0, 28)}
	if err := cycles.Create(&cycle); err != nil {
		t.Fatalf("seed cycle: %v", err)
	}

	users := &fakeCycleUserStore{user: models.User{
		ID:                  1,
		AverageCycleLength:  28,
		AveragePeriodLength: 5,
		CurrentCycleID:      &cycle.ID,
	}}
	service := NewCycleService(users, cycles, &fakeCycleSymptomStore{}, NewUserLocks())

	now := mustParseTime(t, "2026-05-10T12:00:00Z")
	stats, err := service.CurrentStats(1, now)
	if err != nil {
		t.Fatalf("current stats: %v", err)
	}

	if !stats.HasCycle || stats.Cycle == nil {
		t.Fatalf("expected an active cycle in the stats")
	}
	if stats.Cycle.CurrentDay != 10 {
		t.Fatalf("expected current day 10, got %d", stats.Cycle.CurrentDay)
	}
	if stats.Cycle.Phase != PhaseFollicular {
		t.Fatalf("expected follicular phase on day 10, got %s", stats.Cycle.Phase)
	}
	if stats.Cycle.DaysUntilNextPeriod == nil || *stats.Cycle.DaysUntilNextPeriod != 19 {
		t.Fatalf("expected 19 days until the next period, got %v", stats.Cycle.DaysUntilNextPeriod)
	}
}

func TestDaysUntilNextPeriod(t *testing.T) {
	t.Parallel()

	now := mustParseTime(t, "2026-05-10T00:00:00Z")

	future := daysUntilNextPeriod(mustParseTime(t, "2026-05-13T12:00:00Z"), now, 28, 10)
	if future == nil || *future != 4 {
		t.Fatalf("expected 4 days remaining, got %v", future)
	}

	past := daysUntilNextPeriod(mustParseTime(t, "2026-05-01T00:00:00Z"), now, 28, 40)
	if past != nil {
		t.Fatalf("expected nil for an overdue prediction, got %d", *past)
	}

	fallback := daysUntilNextPeriod(time.Time{}, now, 28, 10)
	if fallback == nil || *fallback != 18 {
		t.Fatalf("expected fallback 18 from the average, got %v", fallback)
	}

	exhausted := daysUntilNextPeriod(time.Time{}, now, 28, 30)
	if exhausted != nil {
		t.Fatalf("expected nil when the average is already exceeded, got %d", *exhausted)
	}
}
