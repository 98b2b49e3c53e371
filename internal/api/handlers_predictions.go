package api

import (
	"log"

	"github.com/calyxhealth/calyx/internal/services"
	"github.com/gofiber/fiber/v2"
)

type painForecastPayload struct {
	UseML bool `json:"use_ml"`
}

// GetPainForecast serves the observed-pattern forecast by default; with
// use_ml=true and a configured predictor it serves the model forecast
// instead, falling back to the simple one when the model fails.
func (handler *Handler) GetPainForecast(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := painForecastPayload{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid payload")
		}
	}

	if payload.UseML && handler.mlPredictor != nil {
		prediction, err := handler.mlPredictor.PredictPain(user.ID)
		if err == nil {
			return c.JSON(services.ForecastFromML(prediction, user.AverageCycleLength))
		}
		log.Printf("ml prediction failed for user %d, using simple forecast: %v", user.ID, err)
	}

	forecast, err := handler.patternService.Forecast(user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(forecast)
}
