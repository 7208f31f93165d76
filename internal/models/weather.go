package models

import "time"

const (
	WeatherSourceUpstream  = "upstream"
	WeatherSourceSynthetic = "synthetic"
)

type WeatherConditions struct {
	TemperatureC float64 `json:"temperature_c"`
	FeelsLikeC   float64 `json:"feels_like_c"`
	Humidity     int     `json:"humidity"`
	WindSpeedMS  float64 `json:"wind_speed_ms"`
	Description  string  `json:"description"`
}

type ForecastDay struct {
	Date        string  `json:"date"`
	MinC        float64 `json:"min_c"`
	MaxC        float64 `json:"max_c"`
	Description string  `json:"description"`
}

type SeasonalGuidance struct {
	Region     string `json:"region"`
	BestMonths string `json:"best_months"`
	Summary    string `json:"summary"`
}

type WeatherSnapshot struct {
	Destination string            `json:"destination"`
	Source      string            `json:"source"`
	Current     WeatherConditions `json:"current"`
	Forecast    []ForecastDay     `json:"forecast"`
	Seasonal    SeasonalGuidance  `json:"seasonal"`
	FetchedAt   time.Time         `json:"fetched_at"`
}
