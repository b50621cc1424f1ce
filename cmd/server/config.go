package main

import (
	"log"
	"os"
	"time"

	"github.com/simpleweather/backend/internal/service"
)

type Config struct {
	DatabaseURL        string
	PreferencesDB      string
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string
	OpenWeatherUnits   string
	FetchTimeout       time.Duration
	Location           *time.Location
	Port               string
	Env                string
}

func loadConfig() *Config {
	return &Config{
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		PreferencesDB:      getEnv("PREFERENCES_DB", "simpleweather.db"),
		OpenWeatherAPIKey:  getEnv("OPENWEATHER_API_KEY", ""),
		OpenWeatherBaseURL: getEnv("OPENWEATHER_BASE_URL", service.DefaultOpenWeatherBaseURL),
		OpenWeatherUnits:   getEnv("OPENWEATHER_UNITS", "metric"),
		FetchTimeout:       getEnvDuration("FETCH_TIMEOUT", service.DefaultFetchTimeout),
		Location:           getEnvLocation("DISPLAY_TZ", time.Local),
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("GO_ENV", "development"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("Invalid %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

func getEnvLocation(key string, defaultValue *time.Location) *time.Location {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	loc, err := time.LoadLocation(value)
	if err != nil {
		log.Printf("Invalid %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return loc
}
