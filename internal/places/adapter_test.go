package places

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/rfedorina/dining-recommendations/internal/geo"
)

var origin = geo.Coordinate{Lat: 49.2827, Lng: -123.1207}

func TestCategoryFilter(t *testing.T) {
	cases := []struct {
		mealType string
		want     []string
	}{
		{"breakfast", []string{"cafe", "bakery", "breakfast_restaurant"}},
		{"lunch", []string{"restaurant", "meal_takeaway", "sandwich_shop", "pizza_restaurant"}},
		{"dinner", []string{"restaurant", "meal_delivery", "fine_dining_restaurant", "pizza_restaurant"}},
		{"brunch", []string{"restaurant", "cafe"}},
		{"", []string{"restaurant", "cafe"}},
	}

	for _, tc := range cases {
		if got := categoryFilter(tc.mealType); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("categoryFilter(%q) = %v, want %v", tc.mealType, got, tc.want)
		}
	}
}

func TestSuitabilityKeywordRules(t *testing.T) {
	bakery := suitabilityFor([]string{"bakery", "food", "establishment"})
	if bakery.Breakfast < 8 {
		t.Fatalf("bakery should score high for breakfast, got %d", bakery.Breakfast)
	}
	if bakery.Dinner >= bakery.Breakfast {
		t.Fatalf("bakery dinner score %d should be below breakfast %d", bakery.Dinner, bakery.Breakfast)
	}

	grill := suitabilityFor([]string{"bar", "grill", "restaurant"})
	if grill.Dinner != 10 {
		t.Fatalf("grill should score 10 for dinner, got %d", grill.Dinner)
	}

	unknown := suitabilityFor([]string{"laundromat"})
	if unknown.Breakfast != neutralSuitability || unknown.Lunch != neutralSuitability || unknown.Dinner != neutralSuitability {
		t.Fatalf("unmatched types should get the neutral default, got %+v", unknown)
	}
}

func TestNormalizePriceLevel(t *testing.T) {
	intPtr := func(v int) *int { return &v }

	if got := normalizePriceLevel(nil); got != 2 {
		t.Fatalf("missing price level should default to 2, got %d", got)
	}
	if got := normalizePriceLevel(intPtr(0)); got != 1 {
		t.Fatalf("price level 0 should clamp to 1, got %d", got)
	}
	if got := normalizePriceLevel(intPtr(3)); got != 3 {
		t.Fatalf("price level 3 should pass through, got %d", got)
	}
	if got := normalizePriceLevel(intPtr(9)); got != 4 {
		t.Fatalf("price level 9 should clamp to 4, got %d", got)
	}
}

func TestNearbyDiningWithoutAPIKey(t *testing.T) {
	adapter := NewAdapter(http.DefaultClient, "")
	if got := adapter.NearbyDining(context.Background(), origin, 1000, "lunch"); len(got) != 0 {
		t.Fatalf("expected empty result without api key, got %d venues", len(got))
	}
}

func TestNearbyDiningDegradesOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	adapter := NewAdapter(srv.Client(), "test-key")
	adapter.SetBaseURL(srv.URL)

	if got := adapter.NearbyDining(context.Background(), origin, 1000, "dinner"); got != nil {
		t.Fatalf("expected nil result on upstream failure, got %v", got)
	}
}

func TestNearbyDiningNormalizesAndFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// One good cafe, one nameless result, one missing geometry, one
		// far beyond the radius.
		fmt.Fprint(w, `{
			"status": "OK",
			"results": [
				{
					"place_id": "p1",
					"name": "Google Places Cafe",
					"vicinity": "123 Water St",
					"geometry": {"location": {"lat": 49.28295, "lng": -123.12135}},
					"rating": 4.4,
					"user_ratings_total": 210,
					"types": ["cafe", "food", "establishment"],
					"opening_hours": {"open_now": true}
				},
				{
					"place_id": "p2",
					"geometry": {"location": {"lat": 49.2828, "lng": -123.1208}}
				},
				{
					"place_id": "p3",
					"name": "No Geometry Diner"
				},
				{
					"place_id": "p4",
					"name": "Far Away Grill",
					"geometry": {"location": {"lat": 49.5, "lng": -123.5}},
					"types": ["restaurant"]
				}
			]
		}`)
	}))
	defer srv.Close()

	adapter := NewAdapter(srv.Client(), "test-key")
	adapter.SetBaseURL(srv.URL)

	venues := adapter.NearbyDining(context.Background(), origin, 1000, "breakfast")
	if len(venues) != 1 {
		t.Fatalf("expected exactly one venue after filtering, got %d", len(venues))
	}

	v := venues[0]
	if v.ID != "p1" || v.Name != "Google Places Cafe" {
		t.Fatalf("unexpected venue kept: %+v", v)
	}
	if v.DistanceMeters <= 0 || v.DistanceMeters > 1000 {
		t.Fatalf("distance out of bounds: %f", v.DistanceMeters)
	}
	if v.PriceLevel != 2 {
		t.Fatalf("missing price level should default to 2, got %d", v.PriceLevel)
	}
	if !v.Open {
		t.Fatal("open_now should map to Open=true")
	}
	if v.Suitability.Breakfast < 8 {
		t.Fatalf("cafe should be highly suitable for breakfast, got %d", v.Suitability.Breakfast)
	}
}
