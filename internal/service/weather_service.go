package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/simpleweather/backend/internal/domain"
)

// DefaultOpenWeatherBaseURL is the OpenWeatherMap 2.5 API root
const DefaultOpenWeatherBaseURL = "https://api.openweathermap.org/data/2.5"

// WeatherService handles weather data fetching
type WeatherService struct {
	apiKey     string
	baseURL    string
	units      string
	httpClient *http.Client
}

// NewWeatherService creates a new weather service. Without an API key it
// answers from built-in mock data.
func NewWeatherService(apiKey, baseURL, units string) *WeatherService {
	if baseURL == "" {
		baseURL = DefaultOpenWeatherBaseURL
	}
	if units == "" {
		units = "metric"
	}
	return &WeatherService{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		units:      units,
		httpClient: &http.Client{},
	}
}

// openWeatherError is the body OpenWeatherMap sends alongside non-200 codes
type openWeatherError struct {
	Cod     any    `json:"cod"`
	Message string `json:"message"`
}

// Fetch performs one request for the given city. Every failure other than
// context expiry is reported as domain.ErrCityNotFound.
func (s *WeatherService) Fetch(ctx context.Context, city string) (*domain.WeatherResponse, error) {
	if s.apiKey == "" {
		return s.getMockWeather(city)
	}

	q := url.Values{}
	q.Set("q", city)
	q.Set("units", s.units)
	q.Set("appid", s.apiKey)
	endpoint := s.baseURL + "/weather?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("weather: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("weather: request for %q aborted: %w", city, ctxErr)
		}
		return nil, fmt.Errorf("weather: request for %q failed: %v: %w", city, err, domain.ErrCityNotFound)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr openWeatherError
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		log.Printf("weather: %q returned status %d: %s", city, resp.StatusCode, apiErr.Message)
		return nil, fmt.Errorf("weather: status %d for %q: %w", resp.StatusCode, city, domain.ErrCityNotFound)
	}

	var owResp domain.WeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&owResp); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("weather: reading response for %q: %w", city, err)
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("weather: field %s has wrong type for %q: %v: %w", typeErr.Field, city, err, domain.ErrMalformedResponse)
		}
		return nil, fmt.Errorf("weather: failed to decode response: %v: %w", err, domain.ErrCityNotFound)
	}

	return &owResp, nil
}

// mockCities are served when no API key is configured
var mockCities = map[string]struct {
	name, country, description string
	id                         int
	temp, humidity, pressure   float64
}{
	"sydney":    {"Sydney", "AU", "clear sky", 800, 22.4, 60, 1016},
	"london":    {"London", "GB", "light rain", 500, 11.2, 81, 1012},
	"almaty":    {"Almaty", "KZ", "light snow", 600, -8, 75, 1020},
	"reykjavik": {"Reykjavik", "IS", "mist", 701, 3.5, 93, 998},
	"tokyo":     {"Tokyo", "JP", "broken clouds", 803, 18.9, 65, 1009},
}

// getMockWeather returns simulated weather for a handful of known cities
func (s *WeatherService) getMockWeather(city string) (*domain.WeatherResponse, error) {
	key := strings.ToLower(strings.TrimSpace(city))
	if i := strings.IndexByte(key, ','); i >= 0 {
		key = strings.TrimSpace(key[:i])
	}

	m, ok := mockCities[key]
	if !ok {
		return nil, fmt.Errorf("weather: mock has no data for %q: %w", city, domain.ErrCityNotFound)
	}

	now := time.Now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	sunrise := day.Add(6 * time.Hour).Unix()
	sunset := day.Add(19 * time.Hour).Unix()
	dt := now.Unix()

	return &domain.WeatherResponse{
		Name: &m.name,
		Sys: &domain.SysBlock{
			Country: &m.country,
			Sunrise: &sunrise,
			Sunset:  &sunset,
		},
		Weather: []domain.Condition{{ID: &m.id, Description: &m.description}},
		Main: &domain.MainBlock{
			Temp:     &m.temp,
			Humidity: &m.humidity,
			Pressure: &m.pressure,
		},
		Dt: &dt,
	}, nil
}
