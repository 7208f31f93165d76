package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/tripplanner/internal/models"
)

const (
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"
	DefaultTimeout = 4 * time.Second
	forecastDays   = 5
)

var errMissingAPIKey = errors.New("weather api key is not configured")

// Fetcher reads live conditions from a weather upstream.
type Fetcher interface {
	FetchCurrent(ctx context.Context, destination string) (models.WeatherConditions, error)
	FetchForecast(ctx context.Context, destination string) ([]models.ForecastDay, error)
}

// OpenWeatherFetcher talks to the OpenWeatherMap REST API through fiber's HTTP client.
type OpenWeatherFetcher struct {
	baseURL string
	apiKey  string
	timeout time.Duration
}

func NewOpenWeatherFetcher(baseURL string, apiKey string, timeout time.Duration) *OpenWeatherFetcher {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &OpenWeatherFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  strings.TrimSpace(apiKey),
		timeout: timeout,
	}
}

type weatherDescription struct {
	Description string `json:"description"`
}

type currentPayload struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []weatherDescription `json:"weather"`
}

type forecastPayload struct {
	List []struct {
		DateText string `json:"dt_txt"`
		Main     struct {
			TempMin float64 `json:"temp_min"`
			TempMax float64 `json:"temp_max"`
		} `json:"main"`
		Weather []weatherDescription `json:"weather"`
	} `json:"list"`
}

func (fetcher *OpenWeatherFetcher) FetchCurrent(ctx context.Context, destination string) (models.WeatherConditions, error) {
	var payload currentPayload
	if err := fetcher.getJSON(ctx, "weather", destination, &payload); err != nil {
		return models.WeatherConditions{}, err
	}
	return models.WeatherConditions{
		TemperatureC: roundTenth(payload.Main.Temp),
		FeelsLikeC:   roundTenth(payload.Main.FeelsLike),
		Humidity:     payload.Main.Humidity,
		WindSpeedMS:  roundTenth(payload.Wind.Speed),
		Description:  firstDescription(payload.Weather),
	}, nil
}

// FetchForecast folds the three-hourly forecast into per-day minimum and maximum.
func (fetcher *OpenWeatherFetcher) FetchForecast(ctx context.Context, destination string) ([]models.ForecastDay, error) {
	var payload forecastPayload
	if err := fetcher.getJSON(ctx, "forecast", destination, &payload); err != nil {
		return nil, err
	}

	byDate := make(map[string]*models.ForecastDay)
	for _, entry := range payload.List {
		date, _, _ := strings.Cut(entry.DateText, " ")
		if date == "" {
			continue
		}
		day, exists := byDate[date]
		if !exists {
			byDate[date] = &models.ForecastDay{
				Date:        date,
				MinC:        roundTenth(entry.Main.TempMin),
				MaxC:        roundTenth(entry.Main.TempMax),
				Description: firstDescription(entry.Weather),
			}
			continue
		}
		if entry.Main.TempMin < day.MinC {
			day.MinC = roundTenth(entry.Main.TempMin)
		}
		if entry.Main.TempMax > day.MaxC {
			day.MaxC = roundTenth(entry.Main.TempMax)
		}
	}
	if len(byDate) == 0 {
		return nil, errors.New("weather forecast is empty")
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	if len(dates) > forecastDays {
		dates = dates[:forecastDays]
	}

	forecast := make([]models.ForecastDay, 0, len(dates))
	for _, date := range dates {
		forecast = append(forecast, *byDate[date])
	}
	return forecast, nil
}

func (fetcher *OpenWeatherFetcher) getJSON(ctx context.Context, resource string, destination string, target any) error {
	if fetcher.apiKey == "" {
		return errMissingAPIKey
	}
	timeout, err := fetcher.requestTimeout(ctx)
	if err != nil {
		return err
	}

	query := url.Values{}
	query.Set("q", strings.TrimSpace(destination))
	query.Set("units", "metric")
	query.Set("appid", fetcher.apiKey)
	endpoint := fmt.Sprintf("%s/%s?%s", fetcher.baseURL, resource, query.Encode())

	agent := fiber.Get(endpoint)
	agent.Timeout(timeout)
	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("weather %s request: %w", resource, errors.Join(errs...))
	}
	if status != fiber.StatusOK {
		return fmt.Errorf("weather %s request: unexpected status %d", resource, status)
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("decode weather %s: %w", resource, err)
	}
	return nil
}

// requestTimeout caps the per-request timeout by whatever is left of the
// caller's deadline.
func (fetcher *OpenWeatherFetcher) requestTimeout(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	timeout := fetcher.timeout
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return 0, context.DeadlineExceeded
		}
		if remaining < timeout {
			timeout = remaining
		}
	}
	return timeout, nil
}

func firstDescription(descriptions []weatherDescription) string {
	for _, description := range descriptions {
		if trimmed := strings.TrimSpace(description.Description); trimmed != "" {
			return trimmed
		}
	}
	return "unknown"
}
