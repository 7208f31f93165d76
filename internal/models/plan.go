package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	SectionAboutPlace      = "about_place"
	SectionActivities      = "activities"
	SectionTopPlaces       = "top_places"
	SectionItinerary       = "itinerary"
	SectionCuisine         = "cuisine"
	SectionPackingList     = "packing_list"
	SectionBestTimeToVisit = "best_time_to_visit"
	SectionWeather         = "weather"
)

// ContentSections lists the eight plan content sections in display order.
func ContentSections() []string {
	return []string{
		SectionAboutPlace,
		SectionActivities,
		SectionTopPlaces,
		SectionItinerary,
		SectionCuisine,
		SectionPackingList,
		SectionBestTimeToVisit,
		SectionWeather,
	}
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// TopPlace.Coordinates is nil when the location is unknown.
type TopPlace struct {
	Name        string       `json:"name"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

type ItineraryItem struct {
	Item        string `json:"item"`
	Description string `json:"description"`
}

type ItineraryDay struct {
	Title     string          `json:"title"`
	Morning   []ItineraryItem `json:"morning"`
	Afternoon []ItineraryItem `json:"afternoon"`
	Evening   []ItineraryItem `json:"evening"`
}

// GenerationState tracks which content sections were filled by a generation step.
type GenerationState struct {
	AboutPlace      bool `json:"about_place"`
	Activities      bool `json:"activities"`
	TopPlaces       bool `json:"top_places"`
	Itinerary       bool `json:"itinerary"`
	Cuisine         bool `json:"cuisine"`
	PackingList     bool `json:"packing_list"`
	BestTimeToVisit bool `json:"best_time_to_visit"`
	Weather         bool `json:"weather"`
}

func CompleteGenerationState() GenerationState {
	return GenerationState{
		AboutPlace:      true,
		Activities:      true,
		TopPlaces:       true,
		Itinerary:       true,
		Cuisine:         true,
		PackingList:     true,
		BestTimeToVisit: true,
		Weather:         true,
	}
}

func (state GenerationState) AsMap() map[string]bool {
	return map[string]bool{
		SectionAboutPlace:      state.AboutPlace,
		SectionActivities:      state.Activities,
		SectionTopPlaces:       state.TopPlaces,
		SectionItinerary:       state.Itinerary,
		SectionCuisine:         state.Cuisine,
		SectionPackingList:     state.PackingList,
		SectionBestTimeToVisit: state.BestTimeToVisit,
		SectionWeather:         state.Weather,
	}
}

func (state GenerationState) AllGenerated() bool {
	for _, generated := range state.AsMap() {
		if !generated {
			return false
		}
	}
	return true
}

func (state GenerationState) NoneGenerated() bool {
	for _, generated := range state.AsMap() {
		if generated {
			return false
		}
	}
	return true
}

// PlanContent is the validated output of one generation batch.
type PlanContent struct {
	AboutPlace      string         `json:"about_place"`
	Activities      []string       `json:"activities"`
	TopPlaces       []TopPlace     `json:"top_places"`
	Itinerary       []ItineraryDay `json:"itinerary"`
	Cuisine         []string       `json:"cuisine"`
	PackingList     []string       `json:"packing_list"`
	BestTimeToVisit string         `json:"best_time_to_visit"`
}

type TripDetails struct {
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	BudgetMin     int        `json:"budget_min,omitempty"`
	BudgetMax     int        `json:"budget_max,omitempty"`
	Currency      string     `json:"currency,omitempty"`
	TravelStyle   string     `json:"travel_style,omitempty"`
	GroupSize     int        `json:"group_size,omitempty"`
	Interests     []string   `json:"interests,omitempty"`
	Accommodation string     `json:"accommodation,omitempty"`
	Transport     string     `json:"transport,omitempty"`
}

type Plan struct {
	ID                 uint                                 `gorm:"primaryKey" json:"id"`
	OwnerID            uint                                 `gorm:"not null;index" json:"owner_id"`
	Slug               string                               `gorm:"uniqueIndex;not null" json:"slug"`
	Destination        string                               `gorm:"not null" json:"destination"`
	Intent             string                               `gorm:"not null" json:"intent"`
	Trip               datatypes.JSONType[TripDetails]      `gorm:"column:trip;not null" json:"trip"`
	IsGeneratedUsingAI bool                                 `gorm:"column:is_generated_using_ai;not null;default:false" json:"is_generated_using_ai"`
	AboutPlace         string                               `gorm:"not null;default:''" json:"about_place"`
	Activities         datatypes.JSONType[[]string]         `gorm:"not null" json:"activities"`
	TopPlaces          datatypes.JSONType[[]TopPlace]       `gorm:"not null" json:"top_places"`
	Itinerary          datatypes.JSONType[[]ItineraryDay]   `gorm:"not null" json:"itinerary"`
	Cuisine            datatypes.JSONType[[]string]         `gorm:"not null" json:"cuisine"`
	PackingList        datatypes.JSONType[[]string]         `gorm:"not null" json:"packing_list"`
	BestTimeToVisit    string                               `gorm:"not null;default:''" json:"best_time_to_visit"`
	Weather            datatypes.JSONType[*WeatherSnapshot] `gorm:"not null" json:"weather"`
	GenerationState    datatypes.JSONType[GenerationState]  `gorm:"column:generation_state;not null" json:"content_generation_state"`
	CreatedAt          time.Time                            `json:"created_at"`
	UpdatedAt          time.Time                            `json:"updated_at"`
}

// NewManualPlan returns a plan with every content section empty and no generation flags set.
func NewManualPlan(ownerID uint, destination string, intent string, trip TripDetails) Plan {
	return Plan{
		OwnerID:         ownerID,
		Destination:     destination,
		Intent:          intent,
		Trip:            datatypes.NewJSONType(trip),
		Activities:      datatypes.NewJSONType([]string{}),
		TopPlaces:       datatypes.NewJSONType([]TopPlace{}),
		Itinerary:       datatypes.NewJSONType([]ItineraryDay{}),
		Cuisine:         datatypes.NewJSONType([]string{}),
		PackingList:     datatypes.NewJSONType([]string{}),
		Weather:         datatypes.NewJSONType[*WeatherSnapshot](nil),
		GenerationState: datatypes.NewJSONType(GenerationState{}),
	}
}

// ApplyGeneratedContent merges one complete generation batch and marks its
// content sections as generated. The weather flag is set by AttachWeather.
func (plan *Plan) ApplyGeneratedContent(content PlanContent) {
	plan.IsGeneratedUsingAI = true
	plan.AboutPlace = content.AboutPlace
	plan.Activities = datatypes.NewJSONType(content.Activities)
	plan.TopPlaces = datatypes.NewJSONType(content.TopPlaces)
	plan.Itinerary = datatypes.NewJSONType(content.Itinerary)
	plan.Cuisine = datatypes.NewJSONType(content.Cuisine)
	plan.PackingList = datatypes.NewJSONType(content.PackingList)
	plan.BestTimeToVisit = content.BestTimeToVisit
	state := CompleteGenerationState()
	state.Weather = false
	plan.GenerationState = datatypes.NewJSONType(state)
}

// AttachWeather stores the snapshot. On generated plans the weather flag
// follows whether a snapshot is present.
func (plan *Plan) AttachWeather(snapshot *WeatherSnapshot) {
	plan.Weather = datatypes.NewJSONType(snapshot)
	if !plan.IsGeneratedUsingAI {
		return
	}
	state := plan.GenerationState.Data()
	state.Weather = snapshot != nil
	plan.GenerationState = datatypes.NewJSONType(state)
}

func (plan Plan) Content() PlanContent {
	return PlanContent{
		AboutPlace:      plan.AboutPlace,
		Activities:      plan.Activities.Data(),
		TopPlaces:       plan.TopPlaces.Data(),
		Itinerary:       plan.Itinerary.Data(),
		Cuisine:         plan.Cuisine.Data(),
		PackingList:     plan.PackingList.Data(),
		BestTimeToVisit: plan.BestTimeToVisit,
	}
}
