package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rfedorina/dining-recommendations/internal/recommend"
	"github.com/rfedorina/dining-recommendations/internal/scheduler"
)

type AppConfig struct {
	// Third-party credentials. Absence selects degraded mode for the
	// corresponding adapter and is a valid runtime configuration.
	OpenWeatherAPIKey string
	PlacesAPIKey      string

	// Postgres DSN; empty runs on the in-memory catalog and user stores.
	DatabaseDSN string

	// Push-delivery webhook endpoint; empty makes every push report failure.
	PushWebhookURL string

	// HTTPTimeout bounds the shared outbound HTTP client.
	HTTPTimeout time.Duration

	// Request defaults for the recommendations endpoint.
	DefaultMaxDistanceM float64
	DefaultLimit        int

	// NotifyRadiusM bounds the notification trigger's search.
	NotifyRadiusM float64

	// MealSchedule drives the daily notification jobs; empty disables them.
	MealSchedule []scheduler.MealTime

	// Weights is the scoring point split, optionally overridden by a YAML
	// file.
	Weights recommend.Weights

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.PlacesAPIKey = os.Getenv("GOOGLE_PLACES_API_KEY")
	cfg.DatabaseDSN = os.Getenv("DATABASE_DSN")
	cfg.PushWebhookURL = os.Getenv("PUSH_WEBHOOK_URL")
	cfg.Port = getenvDefault("PORT", "8080")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.DefaultMaxDistanceM = float64(getenvInt("DEFAULT_MAX_DISTANCE", 2000))
	cfg.DefaultLimit = getenvInt("DEFAULT_LIMIT", 10)
	cfg.NotifyRadiusM = float64(getenvInt("NOTIFY_RADIUS", 2000))

	schedule, err := parseMealSchedule(os.Getenv("MEAL_SCHEDULE"))
	if err != nil {
		return nil, err
	}
	cfg.MealSchedule = schedule

	weights, err := loadWeights(os.Getenv("SCORING_WEIGHTS_FILE"))
	if err != nil {
		return nil, err
	}
	cfg.Weights = weights

	return cfg, nil
}

// parseMealSchedule parses "breakfast=08:00,lunch=12:30,dinner=19:00". Empty
// input disables scheduling.
func parseMealSchedule(raw string) ([]scheduler.MealTime, error) {
	if raw == "" {
		return nil, nil
	}

	var schedule []scheduler.MealTime
	for _, part := range strings.Split(raw, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("invalid MEAL_SCHEDULE entry %q", part)
		}

		mealType := strings.TrimSpace(kv[0])
		if !recommend.ValidMealType(mealType) {
			return nil, fmt.Errorf("invalid MEAL_SCHEDULE meal type %q", mealType)
		}

		at := strings.TrimSpace(kv[1])
		if _, err := time.Parse("15:04", at); err != nil {
			return nil, fmt.Errorf("invalid MEAL_SCHEDULE time %q: %w", at, err)
		}

		schedule = append(schedule, scheduler.MealTime{MealType: mealType, At: at})
	}
	return schedule, nil
}

// loadWeights reads the optional YAML scoring-weights file; defaults apply
// when the path is empty.
func loadWeights(path string) (recommend.Weights, error) {
	weights := recommend.DefaultWeights()
	if path == "" {
		return weights, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return weights, fmt.Errorf("read scoring weights %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, &weights); err != nil {
		return weights, fmt.Errorf("parse scoring weights %s: %w", path, err)
	}

	if !weights.Valid() {
		return weights, fmt.Errorf("scoring weights in %s must all be positive", path)
	}
	return weights, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
