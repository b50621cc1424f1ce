package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simpleweather/backend/internal/domain"
)

func TestRender(t *testing.T) {
	now := time.Date(2015, 10, 26, 12, 0, 0, 0, time.UTC)

	model, err := Render(sampleResponse(), now, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, "LONDON, GB", model.City)
	assert.Equal(t, "LIGHT RAIN\nHumidity: 81%\nPressure: 1012 hPa", model.Details)
	assert.Equal(t, "15.50 °F", model.Temperature)
	assert.Equal(t, "Last update: Oct 26, 2015 12:00:00 AM", model.Updated)
	assert.Equal(t, domain.IconRainy, model.Icon)
}

func TestRenderTemperatureIsNotConverted(t *testing.T) {
	resp := sampleResponse()
	resp.Main.Temp = ptr(288.15)

	model, err := Render(resp, time.Now(), time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "288.15 °F", model.Temperature)
}

func TestRenderFractionalPressure(t *testing.T) {
	resp := sampleResponse()
	resp.Main.Pressure = ptr(1012.5)

	model, err := Render(resp, time.Now(), time.UTC)
	require.NoError(t, err)
	assert.Contains(t, model.Details, "Pressure: 1012.5 hPa")
}

func TestRenderUsesLocation(t *testing.T) {
	loc := time.FixedZone("AEDT", 11*60*60)

	model, err := Render(sampleResponse(), time.Now(), loc)
	require.NoError(t, err)
	assert.Equal(t, "Last update: Oct 26, 2015 11:00:00 AM", model.Updated)
}

func TestRenderClearSkyDayAndNight(t *testing.T) {
	resp := sampleResponse()
	resp.Weather[0].ID = ptr(800)

	day, err := Render(resp, time.Date(2015, 10, 26, 12, 0, 0, 0, time.UTC), time.UTC)
	require.NoError(t, err)
	assert.Equal(t, domain.IconSunny, day.Icon)

	night, err := Render(resp, time.Date(2015, 10, 26, 17, 0, 0, 0, time.UTC), time.UTC)
	require.NoError(t, err)
	assert.Equal(t, domain.IconClearNight, night.Icon)
}

func TestRenderMissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *domain.WeatherResponse)
	}{
		{"main", func(r *domain.WeatherResponse) { r.Main = nil }},
		{"name", func(r *domain.WeatherResponse) { r.Name = nil }},
		{"sys", func(r *domain.WeatherResponse) { r.Sys = nil }},
		{"country", func(r *domain.WeatherResponse) { r.Sys.Country = nil }},
		{"sunrise", func(r *domain.WeatherResponse) { r.Sys.Sunrise = nil }},
		{"sunset", func(r *domain.WeatherResponse) { r.Sys.Sunset = nil }},
		{"weather", func(r *domain.WeatherResponse) { r.Weather = nil }},
		{"description", func(r *domain.WeatherResponse) { r.Weather[0].Description = nil }},
		{"condition id", func(r *domain.WeatherResponse) { r.Weather[0].ID = nil }},
		{"temp", func(r *domain.WeatherResponse) { r.Main.Temp = nil }},
		{"humidity", func(r *domain.WeatherResponse) { r.Main.Humidity = nil }},
		{"pressure", func(r *domain.WeatherResponse) { r.Main.Pressure = nil }},
		{"dt", func(r *domain.WeatherResponse) { r.Dt = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := sampleResponse()
			tt.mutate(resp)

			model, err := Render(resp, time.Now(), time.UTC)
			require.ErrorIs(t, err, domain.ErrMalformedResponse)
			assert.Equal(t, domain.DisplayModel{}, model)
		})
	}
}

func TestRenderNilResponse(t *testing.T) {
	_, err := Render(nil, time.Now(), time.UTC)
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestSelectIcon(t *testing.T) {
	const sunrise, sunset = int64(1_000), int64(5_000)

	tests := []struct {
		name string
		id   int
		now  int64
		want domain.Icon
	}{
		{"clear at sunrise", 800, sunrise, domain.IconSunny},
		{"clear midday", 800, 3_000, domain.IconSunny},
		{"clear at sunset", 800, sunset, domain.IconClearNight},
		{"clear before sunrise", 800, 999, domain.IconClearNight},
		{"thunderstorm", 211, 3_000, domain.IconThunder},
		{"drizzle", 311, 3_000, domain.IconDrizzle},
		{"rain", 502, 3_000, domain.IconRainy},
		{"snow", 601, 3_000, domain.IconSnowy},
		{"fog", 741, 3_000, domain.IconFoggy},
		{"clouds", 804, 3_000, domain.IconCloudy},
		{"clouds ignore daylight", 801, 9_000, domain.IconCloudy},
		{"unknown band 4", 404, 3_000, domain.IconNone},
		{"unknown band 9", 901, 3_000, domain.IconNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectIcon(tt.id, sunrise, sunset, tt.now))
		})
	}
}
