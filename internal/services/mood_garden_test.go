package services

import (
	"math"
	"testing"
	"time"

	"github.com/calyxhealth/calyx/internal/models"
	"gorm.io/gorm"
)

type fakeGardenUserStore struct {
	user models.User
}

func (store *fakeGardenUserStore) FindByID(userID uint) (models.User, error) {
	if store.user.ID == 0 {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return store.user, nil
}

type fakeGardenStore struct {
	plants     []models.Plant
	activities []models.WellnessActivity
	nextID     uint
}

func (store *fakeGardenStore) CreatePlant(plant *models.Plant) error {
	store.nextID++
	plant.ID = store.nextID
	store.plants = append(store.plants, *plant)
	return nil
}

func (store *fakeGardenStore) ListPlantsByUser(userID uint) ([]models.Plant, error) {
	return store.plants, nil
}

func (store *fakeGardenStore) CountPlants(userID uint) (int64, error) {
	return int64(len(store.plants)), nil
}

func (store *fakeGardenStore) LatestPlantedAt(userID uint) (time.Time, bool, error) {
	if len(store.plants) == 0 {
		return time.Time{}, false, nil
	}
	latest := store.plants[0].PlantedAt
	for _, plant := range store.plants[1:] {
		if plant.PlantedAt.After(latest) {
			latest = plant.PlantedAt
		}
	}
	return latest, true, nil
}

func (store *fakeGardenStore) CreateActivities(activities []models.WellnessActivity) error {
	store.activities = append(store.activities, activities...)
	return nil
}

func newTestGardenService(garden *fakeGardenStore) *GardenService {
	service := NewGardenService(&fakeGardenUserStore{user: models.User{ID: 1}}, garden, NewUserLocks())
	service.pick = func(n int) int { return 0 }
	return service
}

func TestLogMood_RejectsOutOfRangeScore(t *testing.T) {
	t.Parallel()

	service := newTestGardenService(&fakeGardenStore{})
	for _, score := range []int{0, 11, -3} {
		_, err := service.LogMood(1, MoodLogInput{MoodScore: score}, time.Now())
		if err == nil {
			t.Fatalf("expected score %d to be rejected", score)
		}
		if KindOf(err) != KindInvalidArgument {
			t.Fatalf("expected invalid-argument for score %d, got %s", score, KindOf(err))
		}
	}
}

func TestLogMood_FirstPlantAlwaysSpawns(t *testing.T) {
	t.Parallel()

	garden := &fakeGardenStore{}
	service := newTestGardenService(garden)

	result, err := service.LogMood(1, MoodLogInput{MoodScore: 9}, mustParseTime(t, "2026-06-01T08:00:00Z"))
	if err != nil {
		t.Fatalf("log mood: %v", err)
	}
	if result.NewPlant == nil {
		t.Fatalf("expected an empty garden to spawn a plant")
	}
	if result.NewPlant.PlantType != "sunflower" {
		t.Fatalf("expected the top band's first plant for score 9, got %s", result.NewPlant.PlantType)
	}
	if result.TotalPlants != 1 {
		t.Fatalf("expected total plants 1, got %d", result.TotalPlants)
	}
}

func TestLogMood_SpawnCooldown(t *testing.T) {
	t.Parallel()

	planted := mustParseTime(t, "2026-06-01T00:00:00Z")
	garden := &fakeGardenStore{plants: []models.Plant{{ID: 1, UserID: 1, PlantType: "fern", PlantedAt: planted, MoodScore: 6}}}
	service := newTestGardenService(garden)

	tooSoon, err := service.LogMood(1, MoodLogInput{MoodScore: 7}, planted.AddDate(0, 0, 2).Add(23*time.Hour))
	if err != nil {
		t.Fatalf("log mood: %v", err)
	}
	if tooSoon.NewPlant != nil {
		t.Fatalf("expected no plant before three whole days have passed")
	}
	if !tooSoon.MoodLogged || tooSoon.TotalPlants != 1 {
		t.Fatalf("expected the mood still logged against the existing garden")
	}

	afterCooldown, err := service.LogMood(1, MoodLogInput{MoodScore: 7}, planted.AddDate(0, 0, 3))
	if err != nil {
		t.Fatalf("log mood: %v", err)
	}
	if afterCooldown.NewPlant == nil {
		t.Fatalf("expected a plant exactly three days after the last one")
	}
	if afterCooldown.TotalPlants != 2 {
		t.Fatalf("expected total plants 2, got %d", afterCooldown.TotalPlants)
	}
}

func TestLogMood_PlantBandByScore(t *testing.T) {
	t.Parallel()

	cases := []struct {
		score int
		pick  int
		want  string
	}{
		{score: 10, pick: 1, want: "tulip"},
		{score: 8, pick: 0, want: "sunflower"},
		{score: 6, pick: 4, want: "lily"},
		{score: 5, pick: 2, want: "zz_plant"},
		{score: 2, pick: 0, want: "succulent"},
		{score: 1, pick: 3, want: "lithops"},
	}

	for _, testCase := range cases {
		garden := &fakeGardenStore{}
		service := newTestGardenService(garden)
		service.pick = func(n int) int { return testCase.pick }

		result, err := service.LogMood(1, MoodLogInput{MoodScore: testCase.score}, time.Now())
		if err != nil {
			t.Fatalf("log mood for score %d: %v", testCase.score, err)
		}
		if result.NewPlant == nil || result.NewPlant.PlantType != testCase.want {
			t.Fatalf("score %d pick %d: expected %s, got %+v",
				testCase.score, testCase.pick, testCase.want, result.NewPlant)
		}
	}
}

func TestLogMood_RecordsActivitiesWithDefaultPoints(t *testing.T) {
	t.Parallel()

	garden := &fakeGardenStore{}
	service := newTestGardenService(garden)

	moodDate := mustParseTime(t, "2026-06-10T09:00:00Z")
	_, err := service.LogMood(1, MoodLogInput{
		MoodScore: 6,
		Date:      &moodDate,
		CompletedActivities: []CompletedActivity{
			{Type: "yoga", Points: 12},
			{Type: "walk"},
		},
	}, time.Now())
	if err != nil {
		t.Fatalf("log mood: %v", err)
	}

	if len(garden.activities) != 2 {
		t.Fatalf("expected 2 recorded activities, got %d", len(garden.activities))
	}
	if garden.activities[0].PointsEarned != 12 {
		t.Fatalf("expected explicit points kept, got %d", garden.activities[0].PointsEarned)
	}
	if garden.activities[1].PointsEarned != defaultActivityPoints {
		t.Fatalf("expected default points %d, got %d", defaultActivityPoints, garden.activities[1].PointsEarned)
	}
	if !garden.activities[1].Date.Equal(moodDate) {
		t.Fatalf("expected activities dated with the mood log")
	}
}

func TestBuildMoodTrends(t *testing.T) {
	t.Parallel()

	empty := BuildMoodTrends(nil)
	if empty.AverageMood != 0 {
		t.Fatalf("expected zero average for an empty garden, got %v", empty.AverageMood)
	}

	trends := BuildMoodTrends([]models.Plant{
		{MoodScore: 8},
		{MoodScore: 6},
		{MoodScore: 3},
	})
	if math.Abs(trends.AverageMood-5.7) > 1e-9 {
		t.Fatalf("expected average mood 5.7, got %v", trends.AverageMood)
	}
	if trends.MoodDistribution.High != 1 || trends.MoodDistribution.Medium != 1 || trends.MoodDistribution.Low != 1 {
		t.Fatalf("expected distribution 1/1/1, got %+v", trends.MoodDistribution)
	}
}
