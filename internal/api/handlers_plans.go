package api

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/tripplanner/internal/services"
)

func (handler *Handler) CreatePlan(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := createPlanInput{}
	if err := c.BodyParser(&payload); err != nil {
		return invalidInputError(c)
	}
	trip, err := payload.Trip.toTripDetails()
	if err != nil {
		return respondServiceError(c, fmt.Errorf("%w: %v", services.ErrValidation, err))
	}

	plan, err := handler.plans.CreatePlan(c.UserContext(), services.CreatePlanInput{
		OwnerID:     actor.UserID,
		Destination: payload.Destination,
		Intent:      payload.Intent,
		Trip:        trip,
		UseAI:       payload.UseAI,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(planResponse{Plan: plan, Role: services.PlanRoleOwner})
}

func (handler *Handler) ListPlans(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	plans, err := handler.plans.ListOwnedPlans(actor.UserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"plans": plans})
}

func (handler *Handler) ListSharedPlans(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	plans, err := handler.plans.ListSharedPlans(actor.UserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"plans": plans})
}

func (handler *Handler) GetPlan(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	planID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidIDError(c)
	}

	plan, role, err := handler.plans.GetPlan(planID, actor.UserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(planResponse{Plan: plan, Role: role})
}

func (handler *Handler) UpdatePlan(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	planID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidIDError(c)
	}

	payload := updatePlanInput{}
	if err := c.BodyParser(&payload); err != nil {
		return invalidInputError(c)
	}
	patch := services.PlanPatch{
		Destination:     payload.Destination,
		Intent:          payload.Intent,
		AboutPlace:      payload.AboutPlace,
		Activities:      payload.Activities,
		TopPlaces:       payload.TopPlaces,
		Itinerary:       payload.Itinerary,
		Cuisine:         payload.Cuisine,
		PackingList:     payload.PackingList,
		BestTimeToVisit: payload.BestTimeToVisit,
	}
	if payload.Trip != nil {
		trip, err := payload.Trip.toTripDetails()
		if err != nil {
			return respondServiceError(c, fmt.Errorf("%w: %v", services.ErrValidation, err))
		}
		patch.Trip = &trip
	}

	plan, role, err := handler.plans.UpdatePlan(planID, patch, actor.UserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(planResponse{Plan: plan, Role: role})
}

func (handler *Handler) DeletePlan(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	planID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidIDError(c)
	}

	if err := handler.plans.DeletePlan(planID, actor.UserID); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
