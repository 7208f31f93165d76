package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/terraincognita07/tripplanner/internal/ai"
	"github.com/terraincognita07/tripplanner/internal/db"
	"github.com/terraincognita07/tripplanner/internal/models"
	"gorm.io/datatypes"
)

const (
	PlanRoleOwner = "owner"
	slugAttempts  = 3
)

type PlanRepository interface {
	Create(plan *models.Plan) error
	FindByID(planID uint) (models.Plan, error)
	ListByOwner(ownerID uint) ([]models.Plan, error)
	ListSharedWith(userID uint) ([]models.Plan, error)
	Save(plan *models.Plan) error
	UpdateWeather(plan models.Plan) error
	DeleteWithDependents(planID uint) error
}

type PlanAccessRepository interface {
	FindByPlanAndUser(planID uint, userID uint) (models.Access, bool, error)
}

type CreditLedger interface {
	HasCredit(userID uint) (bool, error)
	Deduct(userID uint) (models.CreditBalance, error)
}

type ContentGenerator interface {
	Generate(ctx context.Context, request ai.TripRequest) (ai.Result, error)
}

type WeatherEnricher interface {
	Enrich(ctx context.Context, destination string) *models.WeatherSnapshot
}

// CreditPolicy decides whether AI content that came from the fallback template
// still costs the user a credit.
type CreditPolicy struct {
	ChargeOnFallback bool
}

type PlanService struct {
	plans     PlanRepository
	accesses  PlanAccessRepository
	credits   CreditLedger
	generator ContentGenerator
	weather   WeatherEnricher
	policy    CreditPolicy
}

func NewPlanService(plans PlanRepository, accesses PlanAccessRepository, credits CreditLedger, generator ContentGenerator, weather WeatherEnricher, policy CreditPolicy) *PlanService {
	return &PlanService{
		plans:     plans,
		accesses:  accesses,
		credits:   credits,
		generator: generator,
		weather:   weather,
		policy:    policy,
	}
}

// CreatePlan runs the creation flow. The AI path is all-or-nothing up to
// persistence: nothing is stored unless the generator answered. The credit is
// deducted only after the plan is stored, and a failed deduction does not undo it.
func (service *PlanService) CreatePlan(ctx context.Context, input CreatePlanInput) (models.Plan, error) {
	input, err := NormalizeCreatePlanInput(input)
	if err != nil {
		return models.Plan{}, err
	}

	if input.UseAI {
		hasCredit, err := service.credits.HasCredit(input.OwnerID)
		if err != nil {
			return models.Plan{}, err
		}
		if !hasCredit {
			return models.Plan{}, fmt.Errorf("%w: ai generation needs a free or paid credit", ErrInsufficientCredits)
		}
	}

	plan := models.NewManualPlan(input.OwnerID, input.Destination, input.Intent, input.Trip)

	var generated ai.Result
	if input.UseAI {
		generated, err = service.generator.Generate(ctx, ai.TripRequest{
			Destination: input.Destination,
			Intent:      input.Intent,
			Trip:        input.Trip,
		})
		if err != nil {
			log.Printf("plan: ai generation for user %d failed: %v", input.OwnerID, err)
			return models.Plan{}, fmt.Errorf("%w: the content service is unavailable, try again later", ErrAIGenerationFailed)
		}
		plan.ApplyGeneratedContent(generated.Content)
	}

	if err := service.persistNewPlan(&plan); err != nil {
		return models.Plan{}, err
	}

	if input.UseAI {
		service.chargeForGeneration(plan, generated)
	}

	service.attachWeather(ctx, &plan)
	return plan, nil
}

func (service *PlanService) persistNewPlan(plan *models.Plan) error {
	var lastErr error
	for attempt := 0; attempt < slugAttempts; attempt++ {
		plan.ID = 0
		plan.Slug = newPlanSlug(plan.Destination)
		err := service.plans.Create(plan)
		if err == nil {
			return nil
		}
		lastErr = err
		if !db.IsUniqueViolation(err) {
			break
		}
	}
	return fmt.Errorf("%w: create plan: %v", ErrStorage, lastErr)
}

func (service *PlanService) chargeForGeneration(plan models.Plan, generated ai.Result) {
	if generated.UsedFallback && !service.policy.ChargeOnFallback {
		log.Printf("plan: plan %d used fallback content, credit not charged to user %d", plan.ID, plan.OwnerID)
		return
	}
	if _, err := service.credits.Deduct(plan.OwnerID); err != nil {
		log.Printf("plan: RECONCILE credit deduction failed for user %d after plan %d was stored: %v", plan.OwnerID, plan.ID, err)
	}
}

func (service *PlanService) attachWeather(ctx context.Context, plan *models.Plan) {
	if service.weather == nil {
		return
	}
	snapshot := service.weather.Enrich(ctx, plan.Destination)
	if snapshot == nil {
		return
	}

	enriched := *plan
	enriched.AttachWeather(snapshot)
	if err := service.plans.UpdateWeather(enriched); err != nil {
		log.Printf("plan: store weather for plan %d: %v", plan.ID, err)
		return
	}
	*plan = enriched
}

func newPlanSlug(destination string) string {
	base := slug.Make(destination)
	if base == "" {
		base = "trip"
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return base + "-" + suffix
}

// GetPlan returns the plan with the actor's role on it.
func (service *PlanService) GetPlan(planID uint, actorID uint) (models.Plan, string, error) {
	return service.authorize(planID, actorID)
}

func (service *PlanService) ListOwnedPlans(actorID uint) ([]models.Plan, error) {
	plans, err := service.plans.ListByOwner(actorID)
	if err != nil {
		return nil, fmt.Errorf("%w: list plans: %v", ErrStorage, err)
	}
	return plans, nil
}

func (service *PlanService) ListSharedPlans(actorID uint) ([]models.Plan, error) {
	plans, err := service.plans.ListSharedWith(actorID)
	if err != nil {
		return nil, fmt.Errorf("%w: list shared plans: %v", ErrStorage, err)
	}
	return plans, nil
}

func (service *PlanService) UpdatePlan(planID uint, patch PlanPatch, actorID uint) (models.Plan, string, error) {
	plan, role, err := service.authorize(planID, actorID)
	if err != nil {
		return models.Plan{}, "", err
	}
	if role != PlanRoleOwner && !models.CanEditWithRole(role) {
		return models.Plan{}, "", fmt.Errorf("%w: viewers cannot edit this plan", ErrForbidden)
	}

	if err := patch.applyTo(&plan); err != nil {
		return models.Plan{}, "", err
	}
	if err := service.plans.Save(&plan); err != nil {
		return models.Plan{}, "", fmt.Errorf("%w: save plan: %v", ErrStorage, err)
	}
	return plan, role, nil
}

func (service *PlanService) DeletePlan(planID uint, actorID uint) error {
	plan, err := service.findPlan(planID)
	if err != nil {
		return err
	}
	if plan.OwnerID != actorID {
		return fmt.Errorf("%w: only the owner can delete this plan", ErrForbidden)
	}
	if err := service.plans.DeleteWithDependents(plan.ID); err != nil {
		if db.IsNotFound(err) {
			return fmt.Errorf("%w: plan", ErrNotFound)
		}
		return fmt.Errorf("%w: delete plan: %v", ErrStorage, err)
	}
	return nil
}

func (service *PlanService) authorize(planID uint, actorID uint) (models.Plan, string, error) {
	plan, err := service.findPlan(planID)
	if err != nil {
		return models.Plan{}, "", err
	}
	if plan.OwnerID == actorID {
		return plan, PlanRoleOwner, nil
	}

	access, found, err := service.accesses.FindByPlanAndUser(plan.ID, actorID)
	if err != nil {
		return models.Plan{}, "", fmt.Errorf("%w: load access: %v", ErrStorage, err)
	}
	if !found {
		return models.Plan{}, "", fmt.Errorf("%w: no access to this plan", ErrForbidden)
	}
	return plan, access.Role, nil
}

func (service *PlanService) findPlan(planID uint) (models.Plan, error) {
	plan, err := service.plans.FindByID(planID)
	if err != nil {
		if db.IsNotFound(err) {
			return models.Plan{}, fmt.Errorf("%w: plan", ErrNotFound)
		}
		return models.Plan{}, fmt.Errorf("%w: load plan: %v", ErrStorage, err)
	}
	return plan, nil
}

var errEmptyPatch = errors.New("patch has no changes")

// PlanPatch carries owner edits. Nil fields are left unchanged. Edits never
// touch the generation state: a section counts as generated only when a
// generation step filled it.
type PlanPatch struct {
	Destination     *string
	Intent          *string
	Trip            *models.TripDetails
	AboutPlace      *string
	Activities      *[]string
	TopPlaces       *[]models.TopPlace
	Itinerary       *[]models.ItineraryDay
	Cuisine         *[]string
	PackingList     *[]string
	BestTimeToVisit *string
}

func (patch PlanPatch) isEmpty() bool {
	return patch.Destination == nil && patch.Intent == nil && patch.Trip == nil &&
		patch.AboutPlace == nil && patch.Activities == nil && patch.TopPlaces == nil &&
		patch.Itinerary == nil && patch.Cuisine == nil && patch.PackingList == nil &&
		patch.BestTimeToVisit == nil
}

func (patch PlanPatch) applyTo(plan *models.Plan) error {
	if patch.isEmpty() {
		return fmt.Errorf("%w: %v", ErrValidation, errEmptyPatch)
	}

	if patch.Destination != nil {
		destination := strings.TrimSpace(*patch.Destination)
		if err := validateDestination(destination); err != nil {
			return err
		}
		plan.Destination = destination
	}
	if patch.Intent != nil {
		intent := strings.TrimSpace(*patch.Intent)
		if err := validateIntent(intent); err != nil {
			return err
		}
		plan.Intent = intent
	}
	if patch.Trip != nil {
		trip, err := NormalizeTripDetails(*patch.Trip)
		if err != nil {
			return err
		}
		plan.Trip = datatypes.NewJSONType(trip)
	}
	if patch.AboutPlace != nil {
		plan.AboutPlace = strings.TrimSpace(*patch.AboutPlace)
	}
	if patch.Activities != nil {
		plan.Activities = datatypes.NewJSONType(nonNilStrings(*patch.Activities))
	}
	if patch.TopPlaces != nil {
		places := *patch.TopPlaces
		if places == nil {
			places = []models.TopPlace{}
		}
		plan.TopPlaces = datatypes.NewJSONType(places)
	}
	if patch.Itinerary != nil {
		days := *patch.Itinerary
		if days == nil {
			days = []models.ItineraryDay{}
		}
		plan.Itinerary = datatypes.NewJSONType(days)
	}
	if patch.Cuisine != nil {
		plan.Cuisine = datatypes.NewJSONType(nonNilStrings(*patch.Cuisine))
	}
	if patch.PackingList != nil {
		plan.PackingList = datatypes.NewJSONType(nonNilStrings(*patch.PackingList))
	}
	if patch.BestTimeToVisit != nil {
		plan.BestTimeToVisit = strings.TrimSpace(*patch.BestTimeToVisit)
	}
	return nil
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
