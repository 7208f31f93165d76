package ai

import (
	"fmt"
	"strings"
)

const responseSchema = `{
  "about_place": "string, two or three paragraphs about the destination",
  "activities": ["at least 3 short activity descriptions"],
  "top_places": [{"name": "string", "coordinates": {"lat": 0.0, "lng": 0.0}}],
  "packing_list": ["at least 3 items"],
  "cuisine": ["at least 3 dishes or food experiences"],
  "best_time_to_visit": "string",
  "itinerary": [
    {
      "title": "Day 1: ...",
      "morning": [{"item": "string", "description": "string"}],
      "afternoon": [{"item": "string", "description": "string"}],
      "evening": [{"item": "string", "description": "string"}]
    }
  ]
}`

const systemInstruction = "You are a travel planning assistant. Answer with a single JSON object that follows the schema you are given. Do not add commentary."

// BuildPrompt assembles the single structured prompt sent to the model.
func BuildPrompt(request TripRequest) string {
	var builder strings.Builder

	builder.WriteString("Plan a trip.\n")
	fmt.Fprintf(&builder, "Destination: %s\n", strings.TrimSpace(request.Destination))
	fmt.Fprintf(&builder, "Traveller intent: %s\n", strings.TrimSpace(request.Intent))

	trip := request.Trip
	if trip.StartDate != nil && trip.EndDate != nil {
		days := int(trip.EndDate.Sub(*trip.StartDate).Hours()/24) + 1
		fmt.Fprintf(&builder, "Dates: %s to %s (%d days)\n",
			trip.StartDate.Format("2006-01-02"), trip.EndDate.Format("2006-01-02"), days)
	} else if trip.StartDate != nil {
		fmt.Fprintf(&builder, "Start date: %s\n", trip.StartDate.Format("2006-01-02"))
	}
	if trip.BudgetMin > 0 || trip.BudgetMax > 0 {
		currency := strings.TrimSpace(trip.Currency)
		if currency == "" {
			currency = "USD"
		}
		fmt.Fprintf(&builder, "Budget: %d-%d %s\n", trip.BudgetMin, trip.BudgetMax, currency)
	}
	writeOptional(&builder, "Travel style", trip.TravelStyle)
	if trip.GroupSize > 0 {
		fmt.Fprintf(&builder, "Group size: %d\n", trip.GroupSize)
	}
	if len(trip.Interests) > 0 {
		fmt.Fprintf(&builder, "Interests: %s\n", strings.Join(trip.Interests, ", "))
	}
	writeOptional(&builder, "Accommodation preference", trip.Accommodation)
	writeOptional(&builder, "Transport preference", trip.Transport)

	builder.WriteString("\nRespond with JSON matching this schema exactly:\n")
	builder.WriteString(responseSchema)
	builder.WriteString("\n")
	return builder.String()
}

func writeOptional(builder *strings.Builder, label string, value string) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return
	}
	fmt.Fprintf(builder, "%s: %s\n", label, trimmed)
}
