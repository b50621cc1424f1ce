package domain

import (
	"errors"
	"time"
)

// DefaultCity is used until the user picks a city
const DefaultCity = "Sydney, AU"

// CityPreferenceKey is the preference key holding the last chosen city
const CityPreferenceKey = "city"

var (
	// ErrCityNotFound covers both unknown cities and network/parse failures;
	// the remote API does not let us tell them apart.
	ErrCityNotFound = errors.New("city not found")

	// ErrMalformedResponse means a field needed for rendering was absent.
	ErrMalformedResponse = errors.New("malformed weather response")

	// ErrFetchTimeout means the fetch did not finish within its deadline.
	ErrFetchTimeout = errors.New("weather fetch timed out")
)

// WeatherResponse is the subset of the OpenWeatherMap current weather
// document we read. Pointer fields let the renderer detect absence.
type WeatherResponse struct {
	Name    *string     `json:"name"`
	Sys     *SysBlock   `json:"sys"`
	Weather []Condition `json:"weather"`
	Main    *MainBlock  `json:"main"`
	Dt      *int64      `json:"dt"`
}

// SysBlock holds country and sun times (unix seconds)
type SysBlock struct {
	Country *string `json:"country"`
	Sunrise *int64  `json:"sunrise"`
	Sunset  *int64  `json:"sunset"`
}

// Condition is a single entry of the "weather" array
type Condition struct {
	ID          *int    `json:"id"`
	Description *string `json:"description"`
}

// MainBlock holds the measurements
type MainBlock struct {
	Temp     *float64 `json:"temp"`
	Humidity *float64 `json:"humidity"`
	Pressure *float64 `json:"pressure"`
}

// Icon identifies a weather glyph
type Icon string

const (
	IconNone       Icon = ""
	IconSunny      Icon = "sunny"
	IconClearNight Icon = "clear_night"
	IconThunder    Icon = "thunder"
	IconDrizzle    Icon = "drizzle"
	IconRainy      Icon = "rainy"
	IconSnowy      Icon = "snowy"
	IconFoggy      Icon = "foggy"
	IconCloudy     Icon = "cloudy"
)

// Glyph returns the weather-icons font code point for the icon
func (i Icon) Glyph() string {
	switch i {
	case IconSunny:
		return "\uf00d"
	case IconClearNight:
		return "\uf02e"
	case IconThunder:
		return "\uf01e"
	case IconDrizzle:
		return "\uf01c"
	case IconRainy:
		return "\uf019"
	case IconSnowy:
		return "\uf01b"
	case IconFoggy:
		return "\uf014"
	case IconCloudy:
		return "\uf013"
	default:
		return ""
	}
}

// FetchState is the controller state shown alongside the display model
type FetchState string

const (
	StateIdle        FetchState = "idle"
	StateFetching    FetchState = "fetching"
	StateRendered    FetchState = "rendered"
	StateFetchFailed FetchState = "fetch_failed"
	StateTimedOut    FetchState = "timed_out"
	StateMalformed   FetchState = "malformed"
)

// DisplayModel is what the display surface shows after a successful fetch
type DisplayModel struct {
	City        string `json:"city"`
	Details     string `json:"details"`
	Temperature string `json:"temperature"`
	Updated     string `json:"updated"`
	Icon        Icon   `json:"icon"`
}

// RenderRecord is a persisted successful render
type RenderRecord struct {
	ID         string       `json:"id"`
	City       string       `json:"city"`
	Model      DisplayModel `json:"model"`
	RenderedAt time.Time    `json:"rendered_at"`
}

// DisplaySnapshot is a read-only copy of the display surface
type DisplaySnapshot struct {
	State     FetchState    `json:"state"`
	City      string        `json:"city"`
	Model     *DisplayModel `json:"model,omitempty"`
	Notice    string        `json:"notice,omitempty"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// WeatherSnapshotResponse wraps the display snapshot with metadata
type WeatherSnapshotResponse struct {
	Data    DisplaySnapshot `json:"data"`
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
}
