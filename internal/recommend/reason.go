package recommend

import (
	"fmt"
	"sort"
	"strings"
)

// buildReason produces a short human-readable explanation from the two
// strongest factors, measured as share of each factor's budget.
func buildReason(f Factors, w Weights, mealType string, preferOutdoor bool) string {
	type scored struct {
		phrase string
		share  float64
	}

	weatherPhrase := "a solid indoor choice"
	if preferOutdoor {
		weatherPhrase = "great weather to sit outside"
	}

	candidates := []scored{
		{"close by", share(f.Proximity, w.Proximity)},
		{fmt.Sprintf("great for %s", mealType), share(f.MealRelevance, w.MealRelevance)},
		{"matches places you've liked", share(f.UserPreference, w.UserPreference)},
		{weatherPhrase, share(f.Weather, w.Weather)},
		{"popular with other diners", share(f.Popularity, w.Popularity)},
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].share > candidates[j].share
	})

	first := candidates[0].phrase
	second := candidates[1].phrase
	return strings.ToUpper(first[:1]) + first[1:] + " and " + second
}

func share(value, budget float64) float64 {
	if budget <= 0 {
		return 0
	}
	return value / budget
}
