package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simpleweather/backend/internal/domain"
)

const londonJSON = `{
	"coord": {"lon": -0.13, "lat": 51.51},
	"weather": [{"id": 300, "main": "Drizzle", "description": "light intensity drizzle", "icon": "09d"}],
	"main": {"temp": 280.32, "pressure": 1012, "humidity": 81, "temp_min": 279.15, "temp_max": 281.15},
	"dt": 1485789600,
	"sys": {"type": 1, "id": 5091, "country": "GB", "sunrise": 1485762037, "sunset": 1485794875},
	"id": 2643743,
	"name": "London",
	"cod": 200
}`

func TestFetchDecodesResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		assert.Equal(t, "London, GB", r.URL.Query().Get("q"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "secret", r.URL.Query().Get("appid"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(londonJSON))
	}))
	defer ts.Close()

	svc := NewWeatherService("secret", ts.URL, "")
	resp, err := svc.Fetch(context.Background(), "London, GB")
	require.NoError(t, err)
	require.NotNil(t, resp)

	model, err := Render(resp, time.Unix(1485780000, 0), time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "LONDON, GB", model.City)
	assert.Equal(t, "LIGHT INTENSITY DRIZZLE\nHumidity: 81%\nPressure: 1012 hPa", model.Details)
	assert.Equal(t, "280.32 °F", model.Temperature)
	assert.Equal(t, domain.IconDrizzle, model.Icon)
}

func TestFetchUnknownCity(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	}))
	defer ts.Close()

	svc := NewWeatherService("secret", ts.URL, "metric")
	resp, err := svc.Fetch(context.Background(), "Atlantis")
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrCityNotFound)
}

func TestFetchInvalidJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	}))
	defer ts.Close()

	svc := NewWeatherService("secret", ts.URL, "metric")
	_, err := svc.Fetch(context.Background(), "London")
	assert.ErrorIs(t, err, domain.ErrCityNotFound)
}

func TestFetchWrongTypedFieldIsMalformed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"London","dt":"oops"}`))
	}))
	defer ts.Close()

	svc := NewWeatherService("secret", ts.URL, "metric")
	resp, err := svc.Fetch(context.Background(), "London")
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
	assert.NotErrorIs(t, err, domain.ErrCityNotFound)
}

func TestFetchNetworkError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	svc := NewWeatherService("secret", url, "metric")
	_, err := svc.Fetch(context.Background(), "London")
	assert.ErrorIs(t, err, domain.ErrCityNotFound)
}

func TestFetchHonoursContextDeadline(t *testing.T) {
	unblock := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-unblock:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(unblock)

	svc := NewWeatherService("secret", ts.URL, "metric")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := svc.Fetch(ctx, "London")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.False(t, errors.Is(err, domain.ErrCityNotFound))
}

func TestFetchMockWithoutAPIKey(t *testing.T) {
	svc := NewWeatherService("", "", "")

	resp, err := svc.Fetch(context.Background(), "Sydney, AU")
	require.NoError(t, err)
	model, err := Render(resp, time.Now(), time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "SYDNEY, AU", model.City)
	assert.Equal(t, "22.40 °F", model.Temperature)

	_, err = svc.Fetch(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, domain.ErrCityNotFound)
}
