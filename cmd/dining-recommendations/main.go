package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	httpapi "github.com/rfedorina/dining-recommendations/internal/api/http"
	"github.com/rfedorina/dining-recommendations/internal/catalog"
	"github.com/rfedorina/dining-recommendations/internal/config"
	"github.com/rfedorina/dining-recommendations/internal/notify"
	"github.com/rfedorina/dining-recommendations/internal/places"
	"github.com/rfedorina/dining-recommendations/internal/recommend"
	"github.com/rfedorina/dining-recommendations/internal/scheduler"
	"github.com/rfedorina/dining-recommendations/internal/userdata"
	"github.com/rfedorina/dining-recommendations/internal/weather"
)

func main() {
	// Load configuration. Missing third-party credentials select degraded
	// mode, never a startup failure.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound third-party calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Venue catalog and user stores: Postgres when a DSN is configured,
	// in-memory otherwise.
	var (
		venueCatalog catalog.Finder
		locations    userdata.LocationResolver
		history      userdata.HistoryReader
	)
	if cfg.DatabaseDSN != "" {
		db, err := sqlx.Connect("postgres", cfg.DatabaseDSN)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer db.Close()

		venueCatalog = catalog.NewPostgresCatalog(db)
		store := userdata.NewPostgresStore(db)
		locations = store
		history = store
	} else {
		log.Println("INFO: DATABASE_DSN not set, using in-memory stores")
		venueCatalog = catalog.NewMemoryCatalog()
		store := userdata.NewMemoryStore()
		locations = store
		history = store
	}

	// Long-lived, stateless adapters shared across requests.
	weatherAdapter := weather.NewAdapter(httpClient, cfg.OpenWeatherAPIKey, weather.DefaultFallback())
	placesAdapter := places.NewAdapter(httpClient, cfg.PlacesAPIKey)

	// Core aggregator/scorer.
	service := recommend.NewService(locations, history, venueCatalog, placesAdapter, weatherAdapter, cfg.Weights)

	// Notification trigger with its delivery webhook.
	delivery := notify.NewWebhookDelivery(httpClient, cfg.PushWebhookURL)
	trigger := notify.NewTrigger(service, delivery, cfg.NotifyRadiusM)

	// Optional daily meal-time notification jobs.
	sched := scheduler.New(cfg.MealSchedule, trigger, locations)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "dining-recommendations",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "dining-recommendations",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, trigger, httpapi.Defaults{
		MaxDistanceMeters: cfg.DefaultMaxDistanceM,
		Limit:             cfg.DefaultLimit,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
