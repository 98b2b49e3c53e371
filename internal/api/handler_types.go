package api

import (
	"time"

	"github.com/calyxhealth/calyx/internal/db"
	"github.com/calyxhealth/calyx/internal/services"
	"github.com/golang-jwt/jwt/v5"
)

type Handler struct {
	secretKey []byte

	repositories *db.Repositories

	authService     *services.AuthService
	profileService  *services.ProfileService
	cycleService    *services.CycleService
	symptomService  *services.SymptomService
	patternService  *services.PainPatternService
	patternWorker   *services.PatternWorker
	gardenService   *services.GardenService
	wellnessService *services.WellnessService
	settingsService *services.SettingsService

	mlPredictor services.MLPredictor
}

const authTokenTTL = 7 * 24 * time.Hour

type authClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}
