package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/simpleweather/backend/internal/delivery/http"
	"github.com/simpleweather/backend/internal/display"
	"github.com/simpleweather/backend/internal/domain"
	"github.com/simpleweather/backend/internal/repository/postgres"
	"github.com/simpleweather/backend/internal/repository/sqlite"
	"github.com/simpleweather/backend/internal/service"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	cfg := loadConfig()

	repo := openRepository(cfg)
	defer repo.Close()

	// Dependency Injection: Services
	weatherSvc := service.NewWeatherService(cfg.OpenWeatherAPIKey, cfg.OpenWeatherBaseURL, cfg.OpenWeatherUnits)
	if cfg.OpenWeatherAPIKey == "" {
		log.Println("OPENWEATHER_API_KEY is not set, serving mock weather")
	}
	surface := display.NewSurface()
	controller := service.NewWeatherController(repo, weatherSvc, repo, surface, service.ControllerConfig{
		FetchTimeout: cfg.FetchTimeout,
		Location:     cfg.Location,
	})

	runCtx, stopRun := context.WithCancel(context.Background())
	go func() {
		if err := controller.Run(runCtx); err != nil && err != context.Canceled {
			log.Printf("Display loop stopped: %v", err)
		}
	}()

	// Initial load for the stored city
	controller.Load(runCtx)

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "SimpleWeather API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: http.ErrorHandler,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Routes
	http.SetupRoutes(app, controller, surface, repo)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	stopRun()
	controller.Close()
	log.Println("Server exited gracefully")
}

// openRepository picks PostgreSQL, then a local SQLite file, then memory
func openRepository(cfg *Config) domain.DataRepository {
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err == nil {
			err = pool.Ping(ctx)
		}
		if err == nil {
			repo := postgres.NewPostgresRepository(pool)
			if err = repo.Migrate(ctx); err == nil {
				log.Println("Connected to PostgreSQL")
				return repo
			}
		}
		if pool != nil {
			pool.Close()
		}
		log.Printf("Warning: Could not use PostgreSQL: %v", err)
	}

	if cfg.PreferencesDB != "" {
		store, err := sqlite.Open(cfg.PreferencesDB)
		if err == nil {
			log.Printf("Using SQLite preferences at %s", cfg.PreferencesDB)
			return store
		}
		log.Printf("Warning: Could not open SQLite preferences: %v", err)
	}

	log.Println("Running with in-memory preferences only")
	return postgres.NewMockRepository()
}
