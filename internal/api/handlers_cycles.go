package api

import (
	"time"

	"github.com/calyxhealth/calyx/internal/services"
	"github.com/gofiber/fiber/v2"
)

type cycleStartPayload struct {
	StartDate *time.Time            `json:"start_date"`
	Notes     string                `json:"notes"`
	Symptoms  []cycleSymptomPayload `json:"symptoms"`
}

type cycleSymptomPayload struct {
	Type      string     `json:"type"`
	Intensity int        `json:"intensity"`
	Date      *time.Time `json:"date"`
	Notes     string     `json:"notes"`
}

type cycleEndPayload struct {
	CycleID *uint      `json:"cycle_id"`
	EndDate *time.Time `json:"end_date"`
}

func (handler *Handler) StartCycle(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := cycleStartPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	startDate := time.Now()
	if payload.StartDate != nil {
		startDate = *payload.StartDate
	}

	observations := make([]services.SymptomObservation, 0, len(payload.Symptoms))
	for _, symptom := range payload.Symptoms {
		observations = append(observations, services.SymptomObservation{
			Type:      symptom.Type,
			Intensity: symptom.Intensity,
			Date:      symptom.Date,
			Notes:     symptom.Notes,
		})
	}

	result, err := handler.cycleService.Start(user.ID, startDate, observations, payload.Notes)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

func (handler *Handler) EndCycle(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := cycleEndPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := handler.cycleService.End(user.ID, payload.CycleID, payload.EndDate, time.Now())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(result)
}

func (handler *Handler) GetCurrentCycle(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	stats, err := handler.cycleService.CurrentStats(user.ID, time.Now())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(stats)
}

func (handler *Handler) GetCycleHistory(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	limit := c.QueryInt("limit")
	cycles, err := handler.cycleService.History(user.ID, limit)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"cycles": cycles})
}
