package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) GetCredits(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	balance, err := handler.credits.Balance(actor.UserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"credits":      balance.Credits,
		"free_credits": balance.FreeCredits,
		"total":        balance.Total(),
	})
}
