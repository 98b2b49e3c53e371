package api

import (
	"time"

	"github.com/calyxhealth/calyx/internal/services"
	"github.com/gofiber/fiber/v2"
)

type symptomLogPayload struct {
	CycleID   *uint      `json:"cycle_id"`
	Type      string     `json:"type"`
	Intensity int        `json:"intensity"`
	Date      *time.Time `json:"date"`
	Notes     string     `json:"notes"`
}

func (handler *Handler) LogSymptom(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := symptomLogPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	input := services.SymptomLogInput{
		CycleID:   payload.CycleID,
		Type:      payload.Type,
		Intensity: payload.Intensity,
		Date:      payload.Date,
		Notes:     payload.Notes,
	}
	entryID, err := handler.symptomService.Log(user.ID, input, time.Now())
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"symptom_id": entryID})
}

func (handler *Handler) GetSymptoms(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	filter := services.SymptomHistoryFilter{
		Type:  c.Query("type"),
		Limit: c.QueryInt("limit"),
	}
	if from, err := parseDateQuery(c, "from"); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid from date")
	} else if from != nil {
		filter.From = from
	}
	if to, err := parseDateQuery(c, "to"); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid to date")
	} else if to != nil {
		filter.To = to
	}

	entries, err := handler.symptomService.History(user.ID, filter)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"symptoms": entries})
}

func (handler *Handler) GetSymptomAnalysis(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	analysis, err := handler.symptomService.Analyze(user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(analysis)
}

func parseDateQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		parsed, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, err
		}
	}
	return &parsed, nil
}
