package api

import (
	"time"

	"github.com/calyxhealth/calyx/internal/services"
	"github.com/gofiber/fiber/v2"
)

type biosensorPayload struct {
	PainLevel       *float64           `json:"pain_level"`
	BodyTemperature *float64           `json:"body_temperature"`
	HeartRate       *int               `json:"heart_rate"`
	OtherMetrics    map[string]float64 `json:"other_metrics"`
	Date            *time.Time         `json:"date"`
}

type meditationPayload struct {
	MeditationID    uint       `json:"meditation_id"`
	DurationMinutes int        `json:"duration_minutes"`
	Date            *time.Time `json:"date"`
}

func (handler *Handler) RecordBiosensor(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := biosensorPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	input := services.BiosensorInput{
		PainLevel:       payload.PainLevel,
		BodyTemperature: payload.BodyTemperature,
		HeartRate:       payload.HeartRate,
		OtherMetrics:    payload.OtherMetrics,
		Date:            payload.Date,
	}
	recordedAt, err := handler.wellnessService.RecordBiosensor(user.ID, input, time.Now())
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"recorded_at": recordedAt})
}

func (handler *Handler) TrackMeditation(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := meditationPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := handler.wellnessService.TrackMeditation(user.ID, payload.MeditationID, payload.DurationMinutes, payload.Date, time.Now())
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

func (handler *Handler) GetWellnessStats(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	stats, err := handler.wellnessService.Stats(user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(stats)
}
