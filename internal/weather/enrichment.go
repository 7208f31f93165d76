package weather

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/terraincognita07/tripplanner/internal/models"
)

// Service annotates a destination with weather data. Enrich never fails: any
// upstream problem is replaced by synthetic, schema-valid conditions.
type Service struct {
	fetcher Fetcher
	timeout time.Duration
	now     func() time.Time
}

func NewService(fetcher Fetcher, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{
		fetcher: fetcher,
		timeout: timeout,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (service *Service) Enrich(ctx context.Context, destination string) *models.WeatherSnapshot {
	destination = strings.TrimSpace(destination)
	now := service.now()
	snapshot := &models.WeatherSnapshot{
		Destination: destination,
		Seasonal:    SeasonalGuidanceFor(destination),
		FetchedAt:   now,
	}

	current, forecast, err := service.fetch(ctx, destination)
	if err != nil {
		log.Printf("weather: using synthetic data for %q: %v", destination, err)
		snapshot.Source = models.WeatherSourceSynthetic
		snapshot.Current, snapshot.Forecast = syntheticConditions(destination, now)
		return snapshot
	}

	snapshot.Source = models.WeatherSourceUpstream
	snapshot.Current = current
	snapshot.Forecast = forecast
	return snapshot
}

func (service *Service) fetch(ctx context.Context, destination string) (models.WeatherConditions, []models.ForecastDay, error) {
	if service.fetcher == nil {
		return models.WeatherConditions{}, nil, errMissingAPIKey
	}

	fetchCtx, cancel := context.WithTimeout(ctx, service.timeout)
	defer cancel()

	current, err := service.fetcher.FetchCurrent(fetchCtx, destination)
	if err != nil {
		return models.WeatherConditions{}, nil, err
	}
	forecast, err := service.fetcher.FetchForecast(fetchCtx, destination)
	if err != nil {
		return models.WeatherConditions{}, nil, err
	}
	return current, forecast, nil
}
