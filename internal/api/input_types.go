package api

import (
	"time"

	"github.com/terraincognita07/tripplanner/internal/models"
)

type credentialsInput struct {
	Email       string `json:"email" form:"email"`
	Password    string `json:"password" form:"password"`
	DisplayName string `json:"display_name" form:"display_name"`
}

type tripInput struct {
	StartDate     string   `json:"start_date"`
	EndDate       string   `json:"end_date"`
	BudgetMin     int      `json:"budget_min"`
	BudgetMax     int      `json:"budget_max"`
	Currency      string   `json:"currency"`
	TravelStyle   string   `json:"travel_style"`
	GroupSize     int      `json:"group_size"`
	Interests     []string `json:"interests"`
	Accommodation string   `json:"accommodation"`
	Transport     string   `json:"transport"`
}

type createPlanInput struct {
	Destination string    `json:"destination"`
	Intent      string    `json:"intent"`
	UseAI       bool      `json:"use_ai"`
	Trip        tripInput `json:"trip"`
}

type updatePlanInput struct {
	Destination     *string                `json:"destination"`
	Intent          *string                `json:"intent"`
	Trip            *tripInput             `json:"trip"`
	AboutPlace      *string                `json:"about_place"`
	Activities      *[]string              `json:"activities"`
	TopPlaces       *[]models.TopPlace     `json:"top_places"`
	Itinerary       *[]models.ItineraryDay `json:"itinerary"`
	Cuisine         *[]string              `json:"cuisine"`
	PackingList     *[]string              `json:"packing_list"`
	BestTimeToVisit *string                `json:"best_time_to_visit"`
}

type createInviteInput struct {
	Email string `json:"email" form:"email"`
}

type inviteTokenInput struct {
	Token string `json:"token" form:"token"`
}

type authResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      models.User `json:"user"`
}

type planResponse struct {
	Plan models.Plan `json:"plan"`
	Role string      `json:"role"`
}
