package catalog

import (
	"context"

	"github.com/rfedorina/dining-recommendations/internal/geo"
)

// Venue is a user-curated location marker. The recommendation core treats it
// read-only.
type Venue struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Coordinate  geo.Coordinate `json:"coordinate"`
	Upvotes     int            `json:"upvotes"`
	Downvotes   int            `json:"downvotes"`
}

// Finder is the internal-catalog contract the recommendation core consumes.
// Errors from a Finder are genuine infrastructure faults and propagate to the
// caller, unlike the degraded third-party adapters.
type Finder interface {
	FindNearby(ctx context.Context, coord geo.Coordinate, radiusMeters float64, mealType string) ([]Venue, error)
}

// mealCategories lists the curated-marker categories considered for each meal
// type. A marker whose category matches no meal list is dining-unrelated and
// never surfaces.
func mealCategories(mealType string) []string {
	switch mealType {
	case "breakfast":
		return []string{"cafe", "bakery", "breakfast", "brunch"}
	case "lunch":
		return []string{"restaurant", "cafe", "deli", "food_truck", "pizzeria"}
	case "dinner":
		return []string{"restaurant", "bar", "pub", "steakhouse", "pizzeria"}
	default:
		return []string{"restaurant", "cafe"}
	}
}
