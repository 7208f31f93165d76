package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/tripplanner/internal/models"
)

const tripDateLayout = "2006-01-02"

var errInvalidTripDate = errors.New("trip dates must use YYYY-MM-DD")

func parseCredentials(c *fiber.Ctx) (credentialsInput, error) {
	credentials := credentialsInput{}
	if err := c.BodyParser(&credentials); err != nil {
		return credentialsInput{}, err
	}
	return credentials, nil
}

func (input tripInput) toTripDetails() (models.TripDetails, error) {
	startDate, err := parseOptionalTripDate(input.StartDate)
	if err != nil {
		return models.TripDetails{}, err
	}
	endDate, err := parseOptionalTripDate(input.EndDate)
	if err != nil {
		return models.TripDetails{}, err
	}
	return models.TripDetails{
		StartDate:     startDate,
		EndDate:       endDate,
		BudgetMin:     input.BudgetMin,
		BudgetMax:     input.BudgetMax,
		Currency:      input.Currency,
		TravelStyle:   input.TravelStyle,
		GroupSize:     input.GroupSize,
		Interests:     input.Interests,
		Accommodation: input.Accommodation,
		Transport:     input.Transport,
	}, nil
}

func parseOptionalTripDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(tripDateLayout, raw)
	if err != nil {
		return nil, errInvalidTripDate
	}
	return &parsed, nil
}
