package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"aynamodaapi/models"

	"github.com/getsentry/sentry-go"
)

type WeatherServiceProvider interface {
	GetCurrentWeather(ctx context.Context, userID uint) (models.WeatherContext, error)
}

type CalendarServiceProvider interface {
	// nil context is a valid, common case: no occasion constraint applies
	GetCalendarContext(ctx context.Context, userID uint) (*models.CalendarContext, error)
}

// FallbackWeatherContext is the documented substitute when the weather
// provider fails: moderate temperature, cloudy.
func FallbackWeatherContext() models.WeatherContext {
	return models.WeatherContext{
		Temperature: 68,
		Condition:   models.ConditionCloudy,
		Humidity:    50,
		Location:    "unknown",
		Timestamp:   time.Now().UTC(),
	}
}

// HTTPWeatherService fetches current conditions from the weather backend
// configured via WEATHER_API_URL.
type HTTPWeatherService struct {
	Client *http.Client
}

type weatherAPIResponse struct {
	Temperature float64 `json:"temperature"`
	Condition   string  `json:"condition"`
	Humidity    int     `json:"humidity"`
	Location    string  `json:"location"`
}

func (s *HTTPWeatherService) GetCurrentWeather(ctx context.Context, userID uint) (models.WeatherContext, error) {
	baseURL := GetEnv("WEATHER_API_URL", "")
	if baseURL == "" {
		return models.WeatherContext{}, fmt.Errorf("WEATHER_API_URL is not configured")
	}

	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/current?user=%d", baseURL, userID), nil)
	if err != nil {
		return models.WeatherContext{}, fmt.Errorf("failed to create weather request: %v", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return models.WeatherContext{}, fmt.Errorf("weather request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.WeatherContext{}, fmt.Errorf("weather backend returned status %d", resp.StatusCode)
	}

	var payload weatherAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.WeatherContext{}, fmt.Errorf("failed to decode weather response: %v", err)
	}
	return models.WeatherContext{
		Temperature: payload.Temperature,
		Condition:   models.WeatherCondition(payload.Condition),
		Humidity:    payload.Humidity,
		Location:    payload.Location,
		Timestamp:   time.Now().UTC(),
	}, nil
}

// CurrentWeatherOrFallback is what the recommendation flow actually calls:
// provider failures degrade to the fallback context instead of propagating.
func CurrentWeatherOrFallback(ctx context.Context, provider WeatherServiceProvider, userID uint) models.WeatherContext {
	if provider == nil {
		return FallbackWeatherContext()
	}
	weather, err := provider.GetCurrentWeather(ctx, userID)
	if err != nil {
		log.Printf("[Weather] provider failed for user %d: %v, using fallback", userID, err)
		sentry.CaptureException(err)
		return FallbackWeatherContext()
	}
	return weather
}

// NoCalendarService is the default calendar collaborator: the app has no
// calendar integration wired, so no occasion constraint is ever applied.
type NoCalendarService struct{}

func (NoCalendarService) GetCalendarContext(ctx context.Context, userID uint) (*models.CalendarContext, error) {
	return nil, nil
}
