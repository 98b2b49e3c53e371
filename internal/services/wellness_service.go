package services

import (
	"errors"
	"time"

	"github.com/calyxhealth/calyx/internal/models"
	"gorm.io/gorm"
)

type WellnessUserStore interface {
	FindByID(userID uint) (models.User, error)
	UpdateMeditationProgress(userID uint, totalSessions int, lastSession time.Time) error
}

type WellnessStore interface {
	CreateBiosensorRecord(record *models.BiosensorRecord) error
	FindMeditation(meditationID uint) (models.Meditation, error)
	CreateMeditationSession(session *models.MeditationSession) error
}

type WellnessActivityStore interface {
	ListActivitiesByUser(userID uint) ([]models.WellnessActivity, error)
}

type WellnessService struct {
	users      WellnessUserStore
	wellness   WellnessStore
	activities WellnessActivityStore
	locks      *UserLocks
}

func NewWellnessService(users WellnessUserStore, wellness WellnessStore, activities WellnessActivityStore, locks *UserLocks) *WellnessService {
	return &WellnessService{users: users, wellness: wellness, activities: activities, locks: locks}
}

type BiosensorInput struct {
	PainLevel       *float64
	BodyTemperature *float64
	HeartRate       *int
	OtherMetrics    map[string]float64
	Date            *time.Time
}

// RecordBiosensor appends one sensor reading; at least one concrete metric is
// required.
func (service *WellnessService) RecordBiosensor(userID uint, input BiosensorInput, now time.Time) (time.Time, error) {
	if input.PainLevel == nil && input.BodyTemperature == nil && input.HeartRate == nil {
		return time.Time{}, NewError(KindInvalidArgument, "at least one biosensor metric is required")
	}

	if _, err := service.users.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, NewError(KindNotFound, "user profile not found")
		}
		return time.Time{}, WrapInternal(err, "load user profile")
	}

	recordedAt := now
	if input.Date != nil {
		recordedAt = *input.Date
	}

	record := models.BiosensorRecord{
		UserID:          userID,
		Date:            recordedAt,
		PainLevel:       input.PainLevel,
		BodyTemperature: input.BodyTemperature,
		HeartRate:       input.HeartRate,
		OtherMetrics:    input.OtherMetrics,
	}
	if err := service.wellness.CreateBiosensorRecord(&record); err != nil {
		return time.Time{}, WrapInternal(err, "create biosensor record")
	}
	return recordedAt, nil
}

type MeditationResult struct {
	SessionID     uint `json:"session_id"`
	TotalSessions int  `json:"total_sessions"`
}

// TrackMeditation verifies the meditation exists, logs the session and bumps
// the profile's meditation progress.
func (service *WellnessService) TrackMeditation(userID uint, meditationID uint, durationMinutes int, date *time.Time, now time.Time) (MeditationResult, error) {
	if meditationID == 0 || durationMinutes <= 0 {
		return MeditationResult{}, NewError(KindInvalidArgument, "meditation id and duration are required")
	}

	meditation, err := service.wellness.FindMeditation(meditationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MeditationResult{}, NewError(KindNotFound, "meditation not found")
		}
		return MeditationResult{}, WrapInternal(err, "load meditation")
	}

	release := service.locks.Lock(userID)
	defer release()

	user, err := service.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MeditationResult{}, NewError(KindNotFound, "user profile not found")
		}
		return MeditationResult{}, WrapInternal(err, "load user profile")
	}

	sessionDate := now
	if date != nil {
		sessionDate = *date
	}

	session := models.MeditationSession{
		UserID:          userID,
		MeditationID:    meditationID,
		Title:           meditation.Title,
		DurationMinutes: durationMinutes,
		Date:            sessionDate,
	}
	if err := service.wellness.CreateMeditationSession(&session); err != nil {
		return MeditationResult{}, WrapInternal(err, "create meditation session")
	}

	totalSessions := user.MeditationTotalSessions + 1
	if err := service.users.UpdateMeditationProgress(userID, totalSessions, sessionDate); err != nil {
		return MeditationResult{}, WrapInternal(err, "update meditation progress")
	}

	return MeditationResult{SessionID: session.ID, TotalSessions: totalSessions}, nil
}

type ActivityTypeStats struct {
	Count       int `json:"count"`
	TotalPoints int `json:"total_points"`
}

type WellnessStats struct {
	TotalActivities int                          `json:"total_activities"`
	TotalPoints     int                          `json:"total_points"`
	ByType          map[string]ActivityTypeStats `json:"by_type"`
}

func (service *WellnessService) Stats(userID uint) (WellnessStats, error) {
	activities, err := service.activities.ListActivitiesByUser(userID)
	if err != nil {
		return WellnessStats{}, WrapInternal(err, "load wellness activities")
	}

	stats := WellnessStats{
		TotalActivities: len(activities),
		ByType:          make(map[string]ActivityTypeStats),
	}
	for _, activity := range activities {
		stats.TotalPoints += activity.PointsEarned
		typed := stats.ByType[activity.ActivityType]
		typed.Count++
		typed.TotalPoints += activity.PointsEarned
		stats.ByType[activity.ActivityType] = typed
	}
	return stats, nil
}
