package places

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/rfedorina/dining-recommendations/internal/geo"
	"github.com/rfedorina/dining-recommendations/internal/httpx"
)

// Adapter queries the Google Places nearby-search API for dining venues.
// Missing configuration and transport failures degrade to an empty result
// instead of failing the caller. Safe for concurrent use.
type Adapter struct {
	apiKey  string
	baseURL string
	httpCfg httpx.ClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewAdapter builds a places adapter. An empty apiKey is valid and selects
// permanent degraded mode.
func NewAdapter(client *http.Client, apiKey string) *Adapter {
	return &Adapter{
		apiKey:  apiKey,
		baseURL: "https://maps.googleapis.com/maps/api/place/nearbysearch/json",
		httpCfg: httpx.ClientConfig{
			Client: client,
			Backoff: httpx.BackoffConfig{
				MaxRetries:      2,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     3 * time.Second,
			},
		},
		circuit: httpx.NewBreaker("googleplaces"),
	}
}

// SetBaseURL overrides the upstream endpoint; used by tests.
func (a *Adapter) SetBaseURL(u string) { a.baseURL = u }

type placesPayload struct {
	Results []struct {
		PlaceID  string `json:"place_id"`
		Name     string `json:"name"`
		Vicinity string `json:"vicinity"`
		Geometry *struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		Rating           float64  `json:"rating"`
		UserRatingsTotal int      `json:"user_ratings_total"`
		PriceLevel       *int     `json:"price_level"`
		Types            []string `json:"types"`
		OpeningHours     *struct {
			OpenNow bool `json:"open_now"`
		} `json:"opening_hours"`
	} `json:"results"`
	Status string `json:"status"`
}

// NearbyDining returns directory venues around a coordinate filtered for the
// meal type. It never returns an error: any failure yields an empty slice.
func (a *Adapter) NearbyDining(ctx context.Context, coord geo.Coordinate, radiusMeters float64, mealType string) []Venue {
	if a.apiKey == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filters := categoryFilter(mealType)

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("key", a.apiKey)
		values.Set("location", fmt.Sprintf("%f,%f", coord.Lat, coord.Lng))
		values.Set("radius", fmt.Sprintf("%d", int(radiusMeters)))
		values.Set("type", filters[0])
		values.Set("keyword", strings.Join(filters, "|"))

		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", a.baseURL, values.Encode()), nil)
	}

	resp, err := httpx.DoWithResilience(ctx, a.httpCfg, a.circuit, buildRequest)
	if err != nil {
		log.Printf("places: nearby search failed, degrading to empty: %v", err)
		return nil
	}
	defer resp.Body.Close()

	var payload placesPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("places: decode failed, degrading to empty: %v", err)
		return nil
	}

	if payload.Status != "OK" && payload.Status != "ZERO_RESULTS" {
		log.Printf("places: upstream status %q, degrading to empty", payload.Status)
		return nil
	}

	venues := make([]Venue, 0, len(payload.Results))
	for _, r := range payload.Results {
		if r.Name == "" || r.Geometry == nil {
			continue
		}

		venueCoord := geo.Coordinate{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng}
		dist := geo.DistanceMeters(coord, venueCoord)
		if dist > radiusMeters {
			continue
		}

		venues = append(venues, Venue{
			ID:               r.PlaceID,
			Name:             r.Name,
			Address:          r.Vicinity,
			Coordinate:       venueCoord,
			DistanceMeters:   dist,
			Rating:           r.Rating,
			UserRatingsTotal: r.UserRatingsTotal,
			PriceLevel:       normalizePriceLevel(r.PriceLevel),
			Open:             r.OpeningHours != nil && r.OpeningHours.OpenNow,
			Types:            r.Types,
			Description:      describeTypes(r.Types),
			Suitability:      suitabilityFor(r.Types),
		})
	}

	return venues
}

// normalizePriceLevel maps the directory's 0-4 price enum onto 1-4; missing or
// out-of-range values default to 2.
func normalizePriceLevel(level *int) int {
	if level == nil {
		return 2
	}
	switch {
	case *level <= 1:
		return 1
	case *level >= 4:
		return 4
	default:
		return *level
	}
}

func describeTypes(types []string) string {
	kept := make([]string, 0, 2)
	for _, t := range types {
		if t == "point_of_interest" || t == "establishment" || t == "food" {
			continue
		}
		kept = append(kept, strings.ReplaceAll(t, "_", " "))
		if len(kept) == 2 {
			break
		}
	}
	return strings.Join(kept, ", ")
}
