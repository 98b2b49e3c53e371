package api

import (
	"github.com/calyxhealth/calyx/internal/services"
	"github.com/gofiber/fiber/v2"
)

type settingsPayload struct {
	NotificationPreferences *map[string]bool `json:"notification_preferences"`
	HeatTherapyEnabled      *bool            `json:"heat_therapy_enabled"`
	GamificationEnabled     *bool            `json:"gamification_enabled"`
}

func (handler *Handler) GetSettings(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	settings, err := handler.settingsService.Get(user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(settings)
}

func (handler *Handler) UpdateSettings(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := settingsPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	input := services.SettingsUpdateInput{
		NotificationPreferences: payload.NotificationPreferences,
		HeatTherapyEnabled:      payload.HeatTherapyEnabled,
		GamificationEnabled:     payload.GamificationEnabled,
	}
	updatedFields, err := handler.settingsService.Update(user.ID, input)
	if err != nil {
		return serviceError(c, err)
	}

	settings, err := handler.settingsService.Get(user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"updated_fields": updatedFields,
		"settings":       settings,
	})
}
