package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/rfedorina/dining-recommendations/internal/geo"
	"github.com/rfedorina/dining-recommendations/internal/httpx"
)

// FallbackStrategy produces the synthetic snapshot used when live weather data
// is unavailable. Injected so tests and deployments get deterministic output.
type FallbackStrategy interface {
	Snapshot(coord geo.Coordinate) Snapshot
}

// FixedFallback always returns the same configured snapshot, marked Fallback.
type FixedFallback struct {
	Snap Snapshot
}

func (f FixedFallback) Snapshot(geo.Coordinate) Snapshot {
	snap := f.Snap
	snap.Fallback = true
	return snap
}

// DefaultFallback is a mild, outdoor-friendly snapshot: neutral enough that a
// missing weather source never dominates scoring one way or the other.
func DefaultFallback() FallbackStrategy {
	return FixedFallback{Snap: Snapshot{
		Condition:      ConditionCloudy,
		TemperatureC:   18,
		HumidityPct:    60,
		Description:    "weather data unavailable, assuming mild conditions",
		GoodForOutdoor: true,
	}}
}

// Adapter fetches current weather for a coordinate from OpenWeatherMap.
// Missing configuration and transport failures degrade to the fallback
// snapshot instead of failing the caller. Safe for concurrent use.
type Adapter struct {
	apiKey   string
	baseURL  string
	httpCfg  httpx.ClientConfig
	circuit  *gobreaker.CircuitBreaker
	fallback FallbackStrategy
}

// NewAdapter builds a weather adapter. An empty apiKey is valid and selects
// permanent degraded mode.
func NewAdapter(client *http.Client, apiKey string, fallback FallbackStrategy) *Adapter {
	if fallback == nil {
		fallback = DefaultFallback()
	}

	return &Adapter{
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5/weather",
		httpCfg: httpx.ClientConfig{
			Client: client,
			Backoff: httpx.BackoffConfig{
				MaxRetries:      2,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     2 * time.Second,
			},
		},
		circuit:  httpx.NewBreaker("openweather"),
		fallback: fallback,
	}
}

// SetBaseURL overrides the upstream endpoint; used by tests.
func (a *Adapter) SetBaseURL(u string) { a.baseURL = u }

// Current returns the current-weather snapshot for a coordinate. It never
// returns an error: any failure yields the fallback snapshot.
func (a *Adapter) Current(ctx context.Context, coord geo.Coordinate) Snapshot {
	if a.apiKey == "" {
		return a.fallback.Snapshot(coord)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("appid", a.apiKey)
		values.Set("units", "metric")
		values.Set("lat", fmt.Sprintf("%f", coord.Lat))
		values.Set("lon", fmt.Sprintf("%f", coord.Lng))

		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", a.baseURL, values.Encode()), nil)
	}

	resp, err := httpx.DoWithResilience(ctx, a.httpCfg, a.circuit, buildRequest)
	if err != nil {
		log.Printf("weather: fetch failed, using fallback: %v", err)
		return a.fallback.Snapshot(coord)
	}
	defer resp.Body.Close()

	var payload struct {
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("weather: decode failed, using fallback: %v", err)
		return a.fallback.Snapshot(coord)
	}

	cond := mapOpenWeatherCondition(payload.Weather)
	desc := ""
	if len(payload.Weather) > 0 {
		desc = payload.Weather[0].Description
	}

	snap := Snapshot{
		Condition:    cond,
		TemperatureC: payload.Main.Temp,
		HumidityPct:  payload.Main.Humidity,
		Description:  desc,
	}
	snap.GoodForOutdoor = goodForOutdoor(snap)
	return snap
}

func mapOpenWeatherCondition(items []struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}) Condition {
	if len(items) == 0 {
		return ConditionCloudy
	}
	switch items[0].Main {
	case "Clear":
		return ConditionClear
	case "Clouds", "Mist", "Fog", "Haze":
		return ConditionCloudy
	case "Rain", "Drizzle":
		return ConditionRainy
	case "Snow":
		return ConditionSnowy
	case "Thunderstorm":
		return ConditionStormy
	default:
		return ConditionCloudy
	}
}

func goodForOutdoor(s Snapshot) bool {
	switch s.Condition {
	case ConditionRainy, ConditionSnowy, ConditionStormy:
		return false
	}
	return s.TemperatureC > 10 && s.TemperatureC < 32
}
