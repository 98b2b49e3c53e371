package api

import (
	"time"

	"github.com/calyxhealth/calyx/internal/models"
	"github.com/gofiber/fiber/v2"
)

type registerPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	payload := registerPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	user, err := handler.authService.Register(payload.Email, payload.Password, payload.FullName, time.Now())
	if err != nil {
		return serviceError(c, err)
	}

	token, err := handler.buildToken(&user, authTokenTTL)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to issue token")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  profileView(&user),
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	payload := loginPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	user, err := handler.authService.Login(payload.Email, payload.Password)
	if err != nil {
		return serviceError(c, err)
	}

	token, err := handler.buildToken(&user, authTokenTTL)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to issue token")
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  profileView(&user),
	})
}

func profileView(user *models.User) fiber.Map {
	return fiber.Map{
		"id":                    user.ID,
		"email":                 user.Email,
		"full_name":             user.FullName,
		"birth_date":            user.BirthDate,
		"average_cycle_length":  user.AverageCycleLength,
		"average_period_length": user.AveragePeriodLength,
		"last_period_start":     user.LastPeriodStart,
		"current_cycle_id":      user.CurrentCycleID,
		"created_at":            user.CreatedAt,
	}
}
