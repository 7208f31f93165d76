package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/tripplanner/internal/models"
	"github.com/terraincognita07/tripplanner/internal/services"
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}

func currentActor(c *fiber.Ctx) (services.Actor, bool) {
	user, ok := currentUser(c)
	if !ok || user == nil {
		return services.Actor{}, false
	}
	return services.Actor{UserID: user.ID, Email: user.Email}, true
}
