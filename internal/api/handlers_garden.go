package api

import (
	"time"

	"github.com/calyxhealth/calyx/internal/services"
	"github.com/gofiber/fiber/v2"
)

type moodLogPayload struct {
	MoodScore           int                        `json:"mood_score"`
	Notes               string                     `json:"notes"`
	Date                *time.Time                 `json:"date"`
	CompletedActivities []completedActivityPayload `json:"completed_activities"`
}

type completedActivityPayload struct {
	Type   string `json:"type"`
	Points int    `json:"points"`
}

func (handler *Handler) LogMood(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := moodLogPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	activities := make([]services.CompletedActivity, 0, len(payload.CompletedActivities))
	for _, activity := range payload.CompletedActivities {
		activities = append(activities, services.CompletedActivity{
			Type:   activity.Type,
			Points: activity.Points,
		})
	}

	input := services.MoodLogInput{
		MoodScore:           payload.MoodScore,
		Notes:               payload.Notes,
		Date:                payload.Date,
		CompletedActivities: activities,
	}
	result, err := handler.gardenService.LogMood(user.ID, input, time.Now())
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

func (handler *Handler) GetGarden(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	summary, err := handler.gardenService.Summary(user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(summary)
}
