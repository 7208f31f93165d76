package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/tripplanner/internal/models"
)

const minListEntries = 3

var (
	errNoJSONObject   = errors.New("response has no JSON object")
	errMissingSection = errors.New("response is missing a required section")
	errSectionInvalid = errors.New("response section is invalid")
)

var requiredKeys = []string{
	"about_place",
	"activities",
	"top_places",
	"packing_list",
	"cuisine",
	"best_time_to_visit",
	"itinerary",
}

// ParseContent extracts the JSON object from a model response, possibly wrapped
// in prose or markdown fences, and validates it against the content schema.
func ParseContent(raw string) (models.PlanContent, error) {
	payload, err := extractJSONObject(raw)
	if err != nil {
		return models.PlanContent{}, err
	}

	keys := map[string]json.RawMessage{}
	if err := json.Unmarshal([]byte(payload), &keys); err != nil {
		return models.PlanContent{}, fmt.Errorf("decode response: %w", err)
	}
	for _, key := range requiredKeys {
		value, ok := keys[key]
		if !ok || isJSONNull(value) {
			return models.PlanContent{}, fmt.Errorf("%w: %s", errMissingSection, key)
		}
	}

	var content models.PlanContent
	if err := json.Unmarshal([]byte(payload), &content); err != nil {
		return models.PlanContent{}, fmt.Errorf("decode response sections: %w", err)
	}

	content = normalizeContent(content)
	if err := validateContent(content); err != nil {
		return models.PlanContent{}, err
	}
	return content, nil
}

func extractJSONObject(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if fenceStart := strings.Index(text, "```"); fenceStart >= 0 {
		inner := text[fenceStart+3:]
		if newline := strings.IndexByte(inner, '\n'); newline >= 0 {
			inner = inner[newline+1:]
		}
		if fenceEnd := strings.Index(inner, "```"); fenceEnd >= 0 {
			inner = inner[:fenceEnd]
		}
		text = strings.TrimSpace(inner)
	}

	// Decode exactly one value from each opening brace so prose around the
	// object, braces included, is ignored.
	var firstErr error
	for offset := strings.IndexByte(text, '{'); offset >= 0; {
		var object json.RawMessage
		err := json.NewDecoder(strings.NewReader(text[offset:])).Decode(&object)
		if err == nil {
			return string(object), nil
		}
		if firstErr == nil {
			firstErr = err
		}
		next := strings.IndexByte(text[offset+1:], '{')
		if next < 0 {
			break
		}
		offset += next + 1
	}
	if firstErr != nil {
		return "", fmt.Errorf("decode response: %w", firstErr)
	}
	return "", errNoJSONObject
}

func isJSONNull(value json.RawMessage) bool {
	return strings.TrimSpace(string(value)) == "null"
}

func normalizeContent(content models.PlanContent) models.PlanContent {
	content.AboutPlace = strings.TrimSpace(content.AboutPlace)
	content.BestTimeToVisit = strings.TrimSpace(content.BestTimeToVisit)
	content.Activities = compactStrings(content.Activities)
	content.Cuisine = compactStrings(content.Cuisine)
	content.PackingList = compactStrings(content.PackingList)

	places := make([]models.TopPlace, 0, len(content.TopPlaces))
	for _, place := range content.TopPlaces {
		place.Name = strings.TrimSpace(place.Name)
		if place.Name == "" {
			continue
		}
		if place.Coordinates != nil && place.Coordinates.Lat == 0 && place.Coordinates.Lng == 0 {
			place.Coordinates = nil
		}
		places = append(places, place)
	}
	content.TopPlaces = places

	days := make([]models.ItineraryDay, 0, len(content.Itinerary))
	for _, day := range content.Itinerary {
		day.Title = strings.TrimSpace(day.Title)
		day.Morning = compactItems(day.Morning)
		day.Afternoon = compactItems(day.Afternoon)
		day.Evening = compactItems(day.Evening)
		days = append(days, day)
	}
	content.Itinerary = days
	return content
}

func validateContent(content models.PlanContent) error {
	switch {
	case content.AboutPlace == "":
		return fmt.Errorf("%w: about_place is empty", errSectionInvalid)
	case content.BestTimeToVisit == "":
		return fmt.Errorf("%w: best_time_to_visit is empty", errSectionInvalid)
	case len(content.Activities) < minListEntries:
		return fmt.Errorf("%w: activities has %d entries", errSectionInvalid, len(content.Activities))
	case len(content.TopPlaces) < minListEntries:
		return fmt.Errorf("%w: top_places has %d entries", errSectionInvalid, len(content.TopPlaces))
	case len(content.PackingList) < minListEntries:
		return fmt.Errorf("%w: packing_list has %d entries", errSectionInvalid, len(content.PackingList))
	case len(content.Cuisine) < minListEntries:
		return fmt.Errorf("%w: cuisine has %d entries", errSectionInvalid, len(content.Cuisine))
	case len(content.Itinerary) == 0:
		return fmt.Errorf("%w: itinerary is empty", errSectionInvalid)
	}

	for _, place := range content.TopPlaces {
		if place.Coordinates == nil {
			continue
		}
		if place.Coordinates.Lat < -90 || place.Coordinates.Lat > 90 || place.Coordinates.Lng < -180 || place.Coordinates.Lng > 180 {
			return fmt.Errorf("%w: %s has out-of-range coordinates", errSectionInvalid, place.Name)
		}
	}
	for index, day := range content.Itinerary {
		if day.Title == "" {
			return fmt.Errorf("%w: itinerary day %d has no title", errSectionInvalid, index+1)
		}
		if len(day.Morning)+len(day.Afternoon)+len(day.Evening) == 0 {
			return fmt.Errorf("%w: itinerary day %d has no items", errSectionInvalid, index+1)
		}
	}
	return nil
}

func compactStrings(values []string) []string {
	compacted := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed != "" {
			compacted = append(compacted, trimmed)
		}
	}
	return compacted
}

func compactItems(items []models.ItineraryItem) []models.ItineraryItem {
	compacted := make([]models.ItineraryItem, 0, len(items))
	for _, item := range items {
		item.Item = strings.TrimSpace(item.Item)
		item.Description = strings.TrimSpace(item.Description)
		if item.Item == "" {
			continue
		}
		compacted = append(compacted, item)
	}
	return compacted
}
