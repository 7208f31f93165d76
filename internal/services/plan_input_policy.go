package services

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/terraincognita07/tripplanner/internal/models"
)

const (
	MinIntentLength      = 10
	MaxIntentLength      = 2000
	MaxDestinationLength = 120
	MaxGroupSize         = 50
	maxInterests         = 15
)

type CreatePlanInput struct {
	OwnerID     uint
	Destination string
	Intent      string
	Trip        models.TripDetails
	UseAI       bool
}

// NormalizeCreatePlanInput trims the input and rejects anything the client has to correct.
func NormalizeCreatePlanInput(input CreatePlanInput) (CreatePlanInput, error) {
	input.Destination = strings.TrimSpace(input.Destination)
	input.Intent = strings.TrimSpace(input.Intent)

	if err := validateDestination(input.Destination); err != nil {
		return CreatePlanInput{}, err
	}
	if err := validateIntent(input.Intent); err != nil {
		return CreatePlanInput{}, err
	}

	trip, err := NormalizeTripDetails(input.Trip)
	if err != nil {
		return CreatePlanInput{}, err
	}
	input.Trip = trip
	return input, nil
}

func validateDestination(destination string) error {
	if destination == "" {
		return fmt.Errorf("%w: destination is required", ErrValidation)
	}
	if utf8.RuneCountInString(destination) > MaxDestinationLength {
		return fmt.Errorf("%w: destination is too long", ErrValidation)
	}
	return nil
}

func validateIntent(intent string) error {
	length := utf8.RuneCountInString(intent)
	if length == 0 {
		return fmt.Errorf("%w: intent is required", ErrValidation)
	}
	if length < MinIntentLength {
		return fmt.Errorf("%w: intent must be at least %d characters", ErrValidation, MinIntentLength)
	}
	if length > MaxIntentLength {
		return fmt.Errorf("%w: intent is too long", ErrValidation)
	}
	return nil
}

func NormalizeTripDetails(trip models.TripDetails) (models.TripDetails, error) {
	if trip.StartDate != nil && trip.EndDate != nil && trip.EndDate.Before(*trip.StartDate) {
		return models.TripDetails{}, fmt.Errorf("%w: end date is before start date", ErrValidation)
	}
	if trip.BudgetMin < 0 || trip.BudgetMax < 0 {
		return models.TripDetails{}, fmt.Errorf("%w: budget must be non-negative", ErrValidation)
	}
	if trip.BudgetMax > 0 && trip.BudgetMin > trip.BudgetMax {
		return models.TripDetails{}, fmt.Errorf("%w: budget minimum exceeds maximum", ErrValidation)
	}
	if trip.GroupSize < 0 || trip.GroupSize > MaxGroupSize {
		return models.TripDetails{}, fmt.Errorf("%w: group size must be between 1 and %d", ErrValidation, MaxGroupSize)
	}

	trip.StartDate = dateOnly(trip.StartDate)
	trip.EndDate = dateOnly(trip.EndDate)
	trip.Currency = strings.ToUpper(strings.TrimSpace(trip.Currency))
	trip.TravelStyle = strings.TrimSpace(trip.TravelStyle)
	trip.Accommodation = strings.TrimSpace(trip.Accommodation)
	trip.Transport = strings.TrimSpace(trip.Transport)

	interests := make([]string, 0, len(trip.Interests))
	seen := make(map[string]struct{}, len(trip.Interests))
	for _, interest := range trip.Interests {
		trimmed := strings.TrimSpace(interest)
		key := strings.ToLower(trimmed)
		if trimmed == "" {
			continue
		}
		if _, duplicate := seen[key]; duplicate {
			continue
		}
		seen[key] = struct{}{}
		interests = append(interests, trimmed)
	}
	if len(interests) > maxInterests {
		return models.TripDetails{}, fmt.Errorf("%w: at most %d interests are allowed", ErrValidation, maxInterests)
	}
	trip.Interests = interests
	return trip, nil
}

func dateOnly(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	day := time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
	return &day
}
