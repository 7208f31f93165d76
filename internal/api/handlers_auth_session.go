package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/tripplanner/internal/models"
	"github.com/terraincognita07/tripplanner/internal/services"
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	credentials, err := parseCredentials(c)
	if err != nil {
		return invalidInputError(c)
	}

	user, err := handler.authService.Register(credentials.Email, credentials.Password, credentials.DisplayName)
	if err != nil {
		return respondServiceError(c, err)
	}
	return handler.respondWithSession(c, &user, fiber.StatusCreated)
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	credentials, err := parseCredentials(c)
	if err != nil {
		return invalidInputError(c)
	}

	now := handler.now()
	limiterKey := clientKey(c) + "|" + strings.ToLower(strings.TrimSpace(credentials.Email))
	if handler.loginLimiter.blocked(limiterKey, now) {
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts")
	}

	user, err := handler.authService.Authenticate(credentials.Email, credentials.Password)
	if err != nil {
		if errors.Is(err, services.ErrAuthCredentialsInvalid) {
			handler.loginLimiter.fail(limiterKey, now)
			return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
		}
		return respondServiceError(c, err)
	}

	handler.loginLimiter.clear(limiterKey)
	return handler.respondWithSession(c, &user, fiber.StatusOK)
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(fiber.Map{"user": user})
}

func (handler *Handler) respondWithSession(c *fiber.Ctx, user *models.User, status int) error {
	token, expiresAt, err := handler.buildToken(user, handler.tokenTTL)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.Status(status).JSON(authResponse{Token: token, ExpiresAt: expiresAt, User: *user})
}
