package recommend

import (
	"math"
	"strings"

	"github.com/rfedorina/dining-recommendations/internal/catalog"
	"github.com/rfedorina/dining-recommendations/internal/common"
	"github.com/rfedorina/dining-recommendations/internal/places"
)

// neutralFraction is the share of a factor's budget awarded when no signal
// exists (no vote history, indoor-neutral weather, unrated venue). Absence of
// signal must never zero out a candidate.
const neutralFraction = 0.5

// internalRelevance maps a curated-marker category to a 0-1 relevance per meal
// type. Categories missing from a meal's table get the neutral fraction.
var internalRelevance = map[string]map[string]float64{
	MealBreakfast: {
		"cafe": 1.0, "bakery": 0.95, "breakfast": 1.0, "brunch": 0.9,
		"restaurant": 0.5, "deli": 0.45,
	},
	MealLunch: {
		"restaurant": 0.9, "deli": 0.9, "food_truck": 0.85, "pizzeria": 0.8,
		"cafe": 0.65, "bakery": 0.5,
	},
	MealDinner: {
		"restaurant": 0.95, "steakhouse": 1.0, "bar": 0.85, "pub": 0.85,
		"pizzeria": 0.85, "cafe": 0.3,
	},
}

// scoreContext bundles the per-request inputs shared by every candidate.
type scoreContext struct {
	weights       Weights
	mealType      string
	maxDistance   float64
	preferOutdoor bool
	affinity      map[string]float64
}

func (sc scoreContext) proximity(distance float64) float64 {
	if sc.maxDistance <= 0 {
		return 0
	}
	frac := 1 - distance/sc.maxDistance
	if frac < 0 {
		frac = 0
	}
	return sc.weights.Proximity * frac
}

func (sc scoreContext) preference(category string) float64 {
	if v, ok := sc.affinity[category]; ok {
		return sc.weights.UserPreference * clamp01(v)
	}
	return sc.weights.UserPreference * neutralFraction
}

// weatherFactor boosts outdoor-capable venues when the weather favors sitting
// outside; everyone else gets the smaller neutral contribution. Never
// negative.
func (sc scoreContext) weatherFactor(outdoorCapable bool) float64 {
	if sc.preferOutdoor && outdoorCapable {
		return sc.weights.Weather
	}
	return sc.weights.Weather * neutralFraction
}

func scoreInternal(sc scoreContext, v catalog.Venue, distance float64) (float64, Factors) {
	relevance, ok := internalRelevance[sc.mealType][v.Category]
	if !ok {
		relevance = neutralFraction
	}

	f := Factors{
		Proximity:      sc.proximity(distance),
		MealRelevance:  sc.weights.MealRelevance * relevance,
		UserPreference: sc.preference(v.Category),
		Weather:        sc.weatherFactor(outdoorCapable(v.Category + " " + v.Description)),
		Popularity:     internalPopularity(sc.weights.Popularity, v.Upvotes, v.Downvotes),
	}
	return roundScore(f.Proximity + f.MealRelevance + f.UserPreference + f.Weather + f.Popularity), roundFactors(f)
}

func scoreExternal(sc scoreContext, v places.Venue) (float64, Factors) {
	suitability := float64(v.Suitability.ForMeal(sc.mealType)) / 10

	f := Factors{
		Proximity:      sc.proximity(v.DistanceMeters),
		MealRelevance:  sc.weights.MealRelevance * suitability,
		UserPreference: sc.preference(primaryCategory(v.Types)),
		Weather:        sc.weatherFactor(outdoorCapable(strings.Join(v.Types, " ") + " " + v.Description)),
		Popularity:     externalPopularity(sc.weights.Popularity, v.Rating, v.UserRatingsTotal),
	}
	return roundScore(f.Proximity + f.MealRelevance + f.UserPreference + f.Weather + f.Popularity), roundFactors(f)
}

// internalPopularity blends upvote share with vote volume. No votes at all is
// the neutral share with zero volume credit.
func internalPopularity(budget float64, ups, downs int) float64 {
	total := ups + downs
	share := neutralFraction
	if total > 0 {
		share = float64(ups) / float64(total)
	}
	volume := math.Min(1, float64(total)/25)
	return budget * (share*0.7 + volume*0.3)
}

// externalPopularity blends the directory rating with review volume. Unrated
// venues get the neutral share.
func externalPopularity(budget float64, rating float64, ratingsTotal int) float64 {
	share := neutralFraction
	if rating > 0 {
		share = clamp01(rating / 5)
	}
	volume := math.Min(1, float64(ratingsTotal)/200)
	return budget * (share*0.7 + volume*0.3)
}

// outdoorCapable guesses from category/type keywords whether a venue offers
// outdoor seating.
func outdoorCapable(descriptor string) bool {
	return common.HasAny(strings.ToLower(descriptor),
		"patio", "terrace", "rooftop", "garden", "park", "outdoor", "food_truck", "food truck", "beer_garden")
}

// primaryCategory maps directory types onto the curated-category vocabulary so
// external venues can share the user's affinity history.
func primaryCategory(types []string) string {
	for _, t := range types {
		switch t {
		case "cafe", "bakery", "bar", "restaurant":
			return t
		case "meal_takeaway", "meal_delivery":
			return "restaurant"
		}
	}
	if len(types) > 0 {
		return types[0]
	}
	return ""
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func roundScore(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundFactors(f Factors) Factors {
	f.Proximity = roundScore(f.Proximity)
	f.MealRelevance = roundScore(f.MealRelevance)
	f.UserPreference = roundScore(f.UserPreference)
	f.Weather = roundScore(f.Weather)
	f.Popularity = roundScore(f.Popularity)
	return f
}
