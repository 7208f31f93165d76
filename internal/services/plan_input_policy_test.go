package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/tripplanner/internal/models"
)

func TestNormalizeCreatePlanInput(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, time.June, 3, 15, 30, 0, 0, time.UTC)
	end := time.Date(2026, time.June, 9, 8, 0, 0, 0, time.UTC)

	input, err := NormalizeCreatePlanInput(CreatePlanInput{
		Destination: "  Oaxaca ",
		Intent:      "  Mezcal, markets and mountain villages  ",
		Trip: models.TripDetails{
			StartDate: &start,
			EndDate:   &end,
			Currency:  " mxn ",
			Interests: []string{"food", " Food ", "", "hiking"},
			GroupSize: 2,
		},
	})
	if err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}
	if input.Destination != "Oaxaca" {
		t.Fatalf("expected trimmed destination, got %q", input.Destination)
	}
	if input.Trip.Currency != "MXN" {
		t.Fatalf("expected uppercased currency, got %q", input.Trip.Currency)
	}
	if len(input.Trip.Interests) != 2 {
		t.Fatalf("expected deduplicated interests, got %v", input.Trip.Interests)
	}
	if input.Trip.StartDate.Hour() != 0 {
		t.Fatalf("expected start date truncated to day, got %s", input.Trip.StartDate)
	}
}

func TestNormalizeCreatePlanInputRejects(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, time.June, 9, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.June, 3, 0, 0, 0, 0, time.UTC)
	validIntent := "A long weekend of galleries"

	tests := []struct {
		name  string
		input CreatePlanInput
	}{
		{name: "blank destination", input: CreatePlanInput{Destination: "  ", Intent: validIntent}},
		{name: "long destination", input: CreatePlanInput{Destination: strings.Repeat("a", MaxDestinationLength+1), Intent: validIntent}},
		{name: "short intent", input: CreatePlanInput{Destination: "Rome", Intent: "art"}},
		{name: "end before start", input: CreatePlanInput{Destination: "Rome", Intent: validIntent, Trip: models.TripDetails{StartDate: &start, EndDate: &end}}},
		{name: "budget inverted", input: CreatePlanInput{Destination: "Rome", Intent: validIntent, Trip: models.TripDetails{BudgetMin: 900, BudgetMax: 100}}},
		{name: "group too large", input: CreatePlanInput{Destination: "Rome", Intent: validIntent, Trip: models.TripDetails{GroupSize: MaxGroupSize + 1}}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			if _, err := NormalizeCreatePlanInput(testCase.input); !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestErrorKindMapping(t *testing.T) {
	t.Parallel()

	if got := KindOf(ErrInsufficientCredits); got != KindInsufficientCredits {
		t.Fatalf("expected insufficient_credits, got %q", got)
	}
	if got := KindOf(errors.New("disk on fire")); got != KindInternal {
		t.Fatalf("expected internal for unknown errors, got %q", got)
	}
	if got := PublicMessage(ErrStorage); got != "internal error" {
		t.Fatalf("expected storage details to be hidden, got %q", got)
	}
}
