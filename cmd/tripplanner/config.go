package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/tripplanner/internal/ai"
	"github.com/terraincognita07/tripplanner/internal/models"
	"github.com/terraincognita07/tripplanner/internal/weather"
)

const minSecretKeyLength = 32

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

type config struct {
	Port              string
	DBPath            string
	SecretKey         string
	Location          *time.Location
	GeminiAPIKey      string
	GeminiModel       string
	AITimeout         time.Duration
	ChargeOnFallback  bool
	WeatherAPIKey     string
	WeatherBaseURL    string
	WeatherTimeout    time.Duration
	InviteTTL         time.Duration
	SignupFreeCredits int
}

func loadConfig() (config, error) {
	secretKey, err := resolveSecretKey()
	if err != nil {
		return config{}, err
	}
	port, err := resolvePort()
	if err != nil {
		return config{}, err
	}

	cfg := config{
		Port:           port,
		DBPath:         resolveDBPath(),
		SecretKey:      secretKey,
		Location:       mustLoadLocation(getEnv("TZ", "UTC")),
		GeminiAPIKey:   strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:    getEnv("GEMINI_MODEL", ai.DefaultGeminiModel),
		WeatherAPIKey:  strings.TrimSpace(os.Getenv("WEATHER_API_KEY")),
		WeatherBaseURL: getEnv("WEATHER_BASE_URL", weather.DefaultBaseURL),
	}

	if cfg.AITimeout, err = durationEnv("AI_TIMEOUT", ai.DefaultTimeout); err != nil {
		return config{}, err
	}
	if cfg.WeatherTimeout, err = durationEnv("WEATHER_TIMEOUT", weather.DefaultTimeout); err != nil {
		return config{}, err
	}
	if cfg.InviteTTL, err = durationEnv("INVITE_TTL", models.DefaultInviteTTL); err != nil {
		return config{}, err
	}
	if cfg.ChargeOnFallback, err = boolEnv("AI_CHARGE_ON_FALLBACK", false); err != nil {
		return config{}, err
	}
	if cfg.SignupFreeCredits, err = intEnv("SIGNUP_FREE_CREDITS", models.DefaultSignupFreeCredits); err != nil {
		return config{}, err
	}
	if cfg.SignupFreeCredits < 0 {
		return config{}, errors.New("SIGNUP_FREE_CREDITS must not be negative")
	}
	return cfg, nil
}

func resolveSecretKey() (string, error) {
	secretKey := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secretKey == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secretKey)]; insecure {
		return "", errors.New("SECRET_KEY uses a placeholder value")
	}
	if len(secretKey) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secretKey, nil
}

func resolvePort() (string, error) {
	raw := getEnv("PORT", "8080")
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("invalid PORT %q", raw)
	}
	return strconv.Itoa(port), nil
}

func resolveDBPath() string {
	return getEnv("DB_PATH", filepath.Join("data", "tripplanner.db"))
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return value, nil
}

func intEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return value, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q", key, raw)
	}
	return value, nil
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
