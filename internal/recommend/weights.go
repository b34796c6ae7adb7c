package recommend

// Weights holds the point budget of each scoring factor. Both venue sources
// are scored against the same budgets so composite scores stay comparable
// across sources.
type Weights struct {
	Proximity      float64 `yaml:"proximity"`
	MealRelevance  float64 `yaml:"mealRelevance"`
	UserPreference float64 `yaml:"userPreference"`
	Weather        float64 `yaml:"weather"`
	Popularity     float64 `yaml:"popularity"`
}

// DefaultWeights returns the standard 100-point split.
func DefaultWeights() Weights {
	return Weights{
		Proximity:      25,
		MealRelevance:  25,
		UserPreference: 20,
		Weather:        15,
		Popularity:     15,
	}
}

// Valid reports whether every budget is positive.
func (w Weights) Valid() bool {
	return w.Proximity > 0 && w.MealRelevance > 0 && w.UserPreference > 0 &&
		w.Weather > 0 && w.Popularity > 0
}
