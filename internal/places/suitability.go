package places

import (
	"strings"

	"github.com/rfedorina/dining-recommendations/internal/common"
)

// neutralSuitability is assigned per meal when no keyword rule matches; a
// venue the rules don't recognize stays a viable candidate.
const neutralSuitability = 5

// categoryFilter maps a meal type to the directory type filters used verbatim
// in the nearby search. Unknown meal types get a broad default rather than an
// error.
func categoryFilter(mealType string) []string {
	switch mealType {
	case "breakfast":
		return []string{"cafe", "bakery", "breakfast_restaurant"}
	case "lunch":
		return []string{"restaurant", "meal_takeaway", "sandwich_shop", "pizza_restaurant"}
	case "dinner":
		return []string{"restaurant", "meal_delivery", "fine_dining_restaurant", "pizza_restaurant"}
	default:
		return []string{"restaurant", "cafe"}
	}
}

// suitabilityFor scores how well a set of directory types fits each meal.
// Keyword rules are checked against the joined, lowercased type list; the
// highest matching rule wins per meal.
func suitabilityFor(types []string) MealSuitability {
	joined := strings.ToLower(strings.Join(types, " "))

	return MealSuitability{
		Breakfast: mealScore(joined, []rule{
			{keywords: []string{"breakfast", "brunch"}, score: 10},
			{keywords: []string{"bakery", "cafe", "coffee"}, score: 9},
			{keywords: []string{"juice", "donut", "bagel"}, score: 7},
			{keywords: []string{"bar", "night_club", "fine_dining"}, score: 2},
		}),
		Lunch: mealScore(joined, []rule{
			{keywords: []string{"sandwich", "meal_takeaway", "deli"}, score: 9},
			{keywords: []string{"restaurant", "food_court", "pizza"}, score: 8},
			{keywords: []string{"cafe", "bakery"}, score: 6},
			{keywords: []string{"night_club"}, score: 2},
		}),
		Dinner: mealScore(joined, []rule{
			{keywords: []string{"fine_dining", "steak", "grill"}, score: 10},
			{keywords: []string{"pizza", "bar", "pub"}, score: 9},
			{keywords: []string{"restaurant", "meal_delivery"}, score: 8},
			{keywords: []string{"bakery", "coffee"}, score: 3},
		}),
	}
}

type rule struct {
	keywords []string
	score    int
}

func mealScore(joined string, rules []rule) int {
	best := 0
	matched := false
	for _, r := range rules {
		if common.HasAny(joined, r.keywords...) {
			matched = true
			if r.score > best {
				best = r.score
			}
		}
	}
	if !matched {
		return neutralSuitability
	}
	return best
}
