package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Get("/me", handler.AuthRequired, handler.Me)

	api.Get("/credits", handler.AuthRequired, handler.GetCredits)

	plans := api.Group("/plans", handler.AuthRequired)
	plans.Post("", handler.CreatePlan)
	plans.Get("", handler.ListPlans)
	plans.Get("/shared", handler.ListSharedPlans)
	plans.Get("/:id", handler.GetPlan)
	plans.Patch("/:id", handler.UpdatePlan)
	plans.Delete("/:id", handler.DeletePlan)
	plans.Post("/:id/invites", handler.CreateInvite)
	plans.Get("/:id/invites", handler.ListInvites)
	plans.Get("/:id/access", handler.ListAccess)

	invites := api.Group("/invites")
	invites.Post("/reject", handler.RejectInvite)
	invites.Post("/accept", handler.AuthRequired, handler.AcceptInvite)
	invites.Post("/:id/cancel", handler.AuthRequired, handler.CancelInvite)
	invites.Post("/:id/resend", handler.AuthRequired, handler.ResendInvite)
}
