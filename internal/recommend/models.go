package recommend

// Meal types accepted by the engine. Anything else is a caller error rejected
// at the HTTP boundary.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
)

// ValidMealType reports whether s is one of the three supported meal types.
func ValidMealType(s string) bool {
	return s == MealBreakfast || s == MealLunch || s == MealDinner
}

// Source identifies which venue catalog a recommendation came from.
type Source string

const (
	SourceInternal Source = "internal"
	SourceExternal Source = "external"
)

// Factors is the per-factor breakdown of a composite score. Each factor is
// bounded by its configured budget and never negative.
type Factors struct {
	Proximity      float64 `json:"proximity"`
	MealRelevance  float64 `json:"mealRelevance"`
	UserPreference float64 `json:"userPreference"`
	Weather        float64 `json:"weather"`
	Popularity     float64 `json:"popularity"`
}

// Recommendation is one ranked output item, created for the lifetime of a
// single request and never persisted.
type Recommendation struct {
	Source         Source  `json:"sourceKind"`
	ReferenceID    string  `json:"referenceId"`
	Name           string  `json:"name"`
	DistanceMeters float64 `json:"distanceMeters"`
	Score          float64 `json:"score"`
	Factors        Factors `json:"factors"`
	Reason         string  `json:"reason"`
}
