package api

import (
	"github.com/calyxhealth/calyx/internal/db"
	"github.com/calyxhealth/calyx/internal/services"
	"gorm.io/gorm"
)

func NewHandler(database *gorm.DB, secretKey string, mlPredictor services.MLPredictor) *Handler {
	repositories := db.NewRepositories(database)
	locks := services.NewUserLocks()

	handler := &Handler{
		secretKey:    []byte(secretKey),
		repositories: repositories,
		mlPredictor:  mlPredictor,
	}
	handler.authService = services.NewAuthService(repositories.Users)
	handler.profileService = services.NewProfileService(repositories.Users)
	handler.patternService = services.NewPainPatternService(repositories.Users, locks)
	handler.patternWorker = services.NewPatternWorker(handler.patternService, 0)
	handler.cycleService = services.NewCycleService(repositories.Users, repositories.Cycles, repositories.Symptoms, locks)
	handler.symptomService = services.NewSymptomService(repositories.Users, repositories.Symptoms, repositories.Cycles, handler.patternWorker)
	handler.gardenService = services.NewGardenService(repositories.Users, repositories.Garden, locks)
	handler.wellnessService = services.NewWellnessService(repositories.Users, repositories.Wellness, repositories.Garden, locks)
	handler.settingsService = services.NewSettingsService(repositories.Users)
	return handler
}

// PatternWorker exposes the background smoothing worker so callers can tie it
// to the process lifecycle.
func (handler *Handler) PatternWorker() *services.PatternWorker {
	return handler.patternWorker
}
