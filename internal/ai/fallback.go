package ai

import (
	"fmt"
	"strings"

	"github.com/terraincognita07/tripplanner/internal/models"
)

// FallbackContent is the fixed generic template used when a model response
// cannot be parsed. It always satisfies validateContent.
func FallbackContent(destination string) models.PlanContent {
	place := strings.TrimSpace(destination)
	if place == "" {
		place = "your destination"
	}

	return models.PlanContent{
		AboutPlace: fmt.Sprintf("%s rewards travellers who take time to wander its neighbourhoods, sample the local food and talk to the people who live there. Use this outline as a starting point and adjust it to your pace.", place),
		Activities: []string{
			"Take a guided walking tour of the historic centre",
			"Visit the main museum or cultural centre",
			"Explore a local market",
			"Watch the sunset from a viewpoint",
		},
		TopPlaces: []models.TopPlace{
			{Name: place + " old town"},
			{Name: place + " central market"},
			{Name: place + " main viewpoint"},
		},
		Itinerary: []models.ItineraryDay{
			{
				Title:     "Day 1: Arrival and orientation",
				Morning:   []models.ItineraryItem{{Item: "Check in", Description: "Settle into your accommodation and pick up a local transit card."}},
				Afternoon: []models.ItineraryItem{{Item: "Walking tour", Description: "Get your bearings with a walk through the centre."}},
				Evening:   []models.ItineraryItem{{Item: "Local dinner", Description: "Try a well-reviewed restaurant near your stay."}},
			},
			{
				Title:     "Day 2: Culture and food",
				Morning:   []models.ItineraryItem{{Item: "Museum visit", Description: "Spend the morning at the main museum."}},
				Afternoon: []models.ItineraryItem{{Item: "Market lunch", Description: "Eat your way through the central market."}},
				Evening:   []models.ItineraryItem{{Item: "Sunset viewpoint", Description: "Finish the day with a view over the city."}},
			},
		},
		Cuisine: []string{
			"Regional street food",
			"A traditional sit-down dinner",
			"Local desserts and pastries",
		},
		PackingList: []string{
			"Comfortable walking shoes",
			"Weather-appropriate layers",
			"Travel documents and copies",
			"Reusable water bottle",
		},
		BestTimeToVisit: "Spring and autumn usually offer mild weather and fewer crowds. Check local holidays before booking.",
	}
}
