package services

import (
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/calyxhealth/calyx/internal/models"
	"gorm.io/gorm"
)

// plantSpawnCooldownDays is the minimum whole-day gap (by planting timestamp)
// between two plants in a garden.
const plantSpawnCooldownDays = 3

const defaultActivityPoints = 5

type GardenUserStore interface {
	FindByID(userID uint) (models.User, error)
}

type GardenStore interface {
	CreatePlant(plant *models.Plant) error
	ListPlantsByUser(userID uint) ([]models.Plant, error)
	CountPlants(userID uint) (int64, error)
	LatestPlantedAt(userID uint) (time.Time, bool, error)
	CreateActivities(activities []models.WellnessActivity) error
}

// GardenService turns mood logs into garden state: wellness activity records
// plus, when the cadence allows, a new plant whose type reflects the mood.
type GardenService struct {
	users  GardenUserStore
	garden GardenStore
	locks  *UserLocks
	pick   func(n int) int
}

func NewGardenService(users GardenUserStore, garden GardenStore, locks *UserLocks) *GardenService {
	return &GardenService{
		users:  users,
		garden: garden,
		locks:  locks,
		pick:   rand.IntN,
	}
}

type CompletedActivity struct {
	Type   string
	Points int
}

type MoodLogInput struct {
	MoodScore           int
	Notes               string
	Date                *time.Time
	CompletedActivities []CompletedActivity
}

type MoodLogResult struct {
	MoodLogged  bool          `json:"mood_logged"`
	NewPlant    *models.Plant `json:"new_plant,omitempty"`
	TotalPlants int           `json:"total_plants"`
}

// LogMood validates the score, records completed wellness activities and
// spawns a plant when the garden is empty or the last plant is at least three
// days old.
func (service *GardenService) LogMood(userID uint, input MoodLogInput, now time.Time) (MoodLogResult, error) {
	if input.MoodScore < 1 || input.MoodScore > 10 {
		return MoodLogResult{}, NewError(KindInvalidArgument, "mood score must be between 1 and 10")
	}

	release := service.locks.Lock(userID)
	defer release()

	if _, err := service.users.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MoodLogResult{}, NewError(KindNotFound, "user profile not found")
		}
		return MoodLogResult{}, WrapInternal(err, "load user profile")
	}

	moodDate := now
	if input.Date != nil {
		moodDate = *input.Date
	}

	if len(input.CompletedActivities) > 0 {
		activities := make([]models.WellnessActivity, 0, len(input.CompletedActivities))
		for _, activity := range input.CompletedActivities {
			points := activity.Points
			if points <= 0 {
				points = defaultActivityPoints
			}
			activities = append(activities, models.WellnessActivity{
				UserID:       userID,
				Date:         moodDate,
				ActivityType: activity.Type,
				PointsEarned: points,
			})
		}
		if err := service.garden.CreateActivities(activities); err != nil {
			return MoodLogResult{}, WrapInternal(err, "record wellness activities")
		}
	}

	spawn, err := service.shouldSpawnPlant(userID, moodDate)
	if err != nil {
		return MoodLogResult{}, err
	}

	totalPlants, err := service.garden.CountPlants(userID)
	if err != nil {
		return MoodLogResult{}, WrapInternal(err, "count plants")
	}

	if !spawn {
		return MoodLogResult{MoodLogged: true, TotalPlants: int(totalPlants)}, nil
	}

	plant := models.Plant{
		UserID:    userID,
		PlantType: service.choosePlantType(input.MoodScore),
		PlantedAt: moodDate,
		MoodScore: input.MoodScore,
	}
	if err := service.garden.CreatePlant(&plant); err != nil {
		return MoodLogResult{}, WrapInternal(err, "create plant")
	}

	return MoodLogResult{
		MoodLogged:  true,
		NewPlant:    &plant,
		TotalPlants: int(totalPlants) + 1,
	}, nil
}

func (service *GardenService) shouldSpawnPlant(userID uint, moodDate time.Time) (bool, error) {
	latest, exists, err := service.garden.LatestPlantedAt(userID)
	if err != nil {
		return false, WrapInternal(err, "load latest plant")
	}
	if !exists {
		return true, nil
	}

	daysSinceLastPlant := int(math.Floor(moodDate.Sub(latest).Hours() / 24))
	return daysSinceLastPlant >= plantSpawnCooldownDays, nil
}

func (service *GardenService) choosePlantType(moodScore int) string {
	for _, band := range models.PlantBands() {
		if moodScore >= band.MinScore {
			return band.Plants[service.pick(len(band.Plants))]
		}
	}
	// Unreachable: the last band's MinScore is zero.
	return "moss"
}

type MoodDistribution struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

type MoodTrends struct {
	AverageMood      float64          `json:"average_mood"`
	MoodDistribution MoodDistribution `json:"mood_distribution"`
}

type GardenSummary struct {
	TotalPlants int            `json:"total_plants"`
	Plants      []models.Plant `json:"plants"`
	MoodTrends  MoodTrends     `json:"mood_trends"`
}

func (service *GardenService) Summary(userID uint) (GardenSummary, error) {
	if _, err := service.users.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GardenSummary{}, NewError(KindNotFound, "user profile not found")
		}
		return GardenSummary{}, WrapInternal(err, "load user profile")
	}

	plants, err := service.garden.ListPlantsByUser(userID)
	if err != nil {
		return GardenSummary{}, WrapInternal(err, "load plants")
	}

	return GardenSummary{
		TotalPlants: len(plants),
		Plants:      plants,
		MoodTrends:  BuildMoodTrends(plants),
	}, nil
}

// BuildMoodTrends summarizes mood scores across all plants: the mean rounded
// to one decimal plus a high (7+) / medium (4-6) / low (1-3) distribution.
func BuildMoodTrends(plants []models.Plant) MoodTrends {
	trends := MoodTrends{}
	if len(plants) == 0 {
		return trends
	}

	totalMood := 0
	for _, plant := range plants {
		totalMood += plant.MoodScore

		switch {
		case plant.MoodScore >= 7:
			trends.MoodDistribution.High++
		case plant.MoodScore >= 4:
			trends.MoodDistribution.Medium++
		default:
			trends.MoodDistribution.Low++
		}
	}

	trends.AverageMood = roundTenth(float64(totalMood) / float64(len(plants)))
	return trends
}
