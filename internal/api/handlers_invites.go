package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/tripplanner/internal/services"
)

func (handler *Handler) CreateInvite(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	planID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidIDError(c)
	}

	payload := createInviteInput{}
	if err := c.BodyParser(&payload); err != nil {
		return invalidInputError(c)
	}

	invite, err := handler.invites.CreateInvite(planID, payload.Email, actor)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"invite": invite})
}

func (handler *Handler) ListInvites(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	planID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidIDError(c)
	}

	invites, err := handler.invites.ListInvites(planID, actor.UserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"invites": invites})
}

func (handler *Handler) ListAccess(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	planID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidIDError(c)
	}

	accesses, err := handler.invites.ListAccess(planID, actor.UserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"access": accesses})
}

func (handler *Handler) AcceptInvite(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := inviteTokenInput{}
	if err := c.BodyParser(&payload); err != nil {
		return invalidInputError(c)
	}
	if handler.inviteTokenGuessingBlocked(c) {
		return apiError(c, fiber.StatusTooManyRequests, "too many invite attempts")
	}

	access, err := handler.invites.AcceptInvite(payload.Token, actor)
	if err != nil {
		handler.recordInviteTokenMiss(c, err)
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"access": access})
}

// RejectInvite needs no session: holding the token is enough to decline.
func (handler *Handler) RejectInvite(c *fiber.Ctx) error {
	payload := inviteTokenInput{}
	if err := c.BodyParser(&payload); err != nil {
		return invalidInputError(c)
	}

	if handler.inviteTokenGuessingBlocked(c) {
		return apiError(c, fiber.StatusTooManyRequests, "too many invite attempts")
	}

	if err := handler.invites.RejectInvite(payload.Token); err != nil {
		handler.recordInviteTokenMiss(c, err)
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) CancelInvite(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	inviteID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidIDError(c)
	}

	if err := handler.invites.CancelInvite(inviteID, actor); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) ResendInvite(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	inviteID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidIDError(c)
	}

	invite, err := handler.invites.ResendInvite(inviteID, actor)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"invite": invite})
}

func (handler *Handler) inviteTokenGuessingBlocked(c *fiber.Ctx) bool {
	return handler.inviteMisses.blocked(clientKey(c), handler.now())
}

// recordInviteTokenMiss counts lookups of unknown or expired tokens per client.
func (handler *Handler) recordInviteTokenMiss(c *fiber.Ctx, err error) {
	if services.KindOf(err) == services.KindInvalidOrExpired {
		handler.inviteMisses.fail(clientKey(c), handler.now())
	}
}
