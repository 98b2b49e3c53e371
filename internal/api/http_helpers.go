package api

import (
	"errors"
	"log"

	"github.com/calyxhealth/calyx/internal/services"
	"github.com/gofiber/fiber/v2"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// serviceError translates a service failure into the matching HTTP response.
// Internal details are logged, not leaked.
func serviceError(c *fiber.Ctx, err error) error {
	kind := services.KindOf(err)
	if kind == services.KindInternal {
		log.Printf("%s %s failed: %v", c.Method(), c.Path(), err)
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}

	message := err.Error()
	var typed *services.Error
	if errors.As(err, &typed) {
		message = typed.Message
	}
	return apiError(c, statusForKind(kind), message)
}

func statusForKind(kind services.ErrorKind) int {
	switch kind {
	case services.KindUnauthenticated:
		return fiber.StatusUnauthorized
	case services.KindInvalidArgument:
		return fiber.StatusBadRequest
	case services.KindNotFound:
		return fiber.StatusNotFound
	case services.KindPreconditionFailed:
		return fiber.StatusPreconditionFailed
	default:
		return fiber.StatusInternalServerError
	}
}
