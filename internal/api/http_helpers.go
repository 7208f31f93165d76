package api

import (
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/tripplanner/internal/services"
)

var kindStatuses = map[services.ErrorKind]int{
	services.KindValidation:          fiber.StatusBadRequest,
	services.KindForbidden:           fiber.StatusForbidden,
	services.KindNotFound:            fiber.StatusNotFound,
	services.KindInsufficientCredits: fiber.StatusPaymentRequired,
	services.KindAIGenerationFailed:  fiber.StatusBadGateway,
	services.KindInviteNotActionable: fiber.StatusConflict,
	services.KindEmailMismatch:       fiber.StatusForbidden,
	services.KindConflict:            fiber.StatusConflict,
	services.KindInvalidOrExpired:    fiber.StatusGone,
}

func statusForKind(kind services.ErrorKind) int {
	if status, ok := kindStatuses[kind]; ok {
		return status
	}
	return fiber.StatusInternalServerError
}

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// respondServiceError writes the error kind and a client-safe message. Internal
// failures are logged with the request path and never echoed back.
func respondServiceError(c *fiber.Ctx, err error) error {
	kind := services.KindOf(err)
	if kind == services.KindInternal {
		log.Printf("api: %s %s failed: %v", c.Method(), c.Path(), err)
	}
	return c.Status(statusForKind(kind)).JSON(fiber.Map{
		"error": services.PublicMessage(err),
		"kind":  kind,
	})
}

func parseIDParam(c *fiber.Ctx, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Params(name))
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}

func invalidIDError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "invalid id",
		"kind":  services.KindValidation,
	})
}

func invalidInputError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "invalid input",
		"kind":  services.KindValidation,
	})
}
