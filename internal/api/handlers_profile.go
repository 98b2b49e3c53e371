package api

import (
	"time"

	"github.com/calyxhealth/calyx/internal/services"
	"github.com/gofiber/fiber/v2"
)

type profileUpdatePayload struct {
	FullName            *string    `json:"full_name"`
	BirthDate           *time.Time `json:"birth_date"`
	LastPeriodStart     *time.Time `json:"last_period_start"`
	AverageCycleLength  *int       `json:"average_cycle_length"`
	AveragePeriodLength *int       `json:"average_period_length"`
}

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(profileView(user))
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := profileUpdatePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	input := services.ProfileUpdateInput{
		FullName:            payload.FullName,
		BirthDate:           payload.BirthDate,
		LastPeriodStart:     payload.LastPeriodStart,
		AverageCycleLength:  payload.AverageCycleLength,
		AveragePeriodLength: payload.AveragePeriodLength,
	}
	if err := handler.profileService.Update(user.ID, input, time.Now()); err != nil {
		return serviceError(c, err)
	}

	updated, err := handler.profileService.Get(user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(profileView(&updated))
}
