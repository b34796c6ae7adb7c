package places

import "github.com/rfedorina/dining-recommendations/internal/geo"

// MealSuitability holds per-meal heuristic scores (0-10) derived from the
// venue's directory types.
type MealSuitability struct {
	Breakfast int `json:"breakfast"`
	Lunch     int `json:"lunch"`
	Dinner    int `json:"dinner"`
}

// ForMeal returns the score for one meal type; unknown meal types get the
// neutral default.
func (m MealSuitability) ForMeal(mealType string) int {
	switch mealType {
	case "breakfast":
		return m.Breakfast
	case "lunch":
		return m.Lunch
	case "dinner":
		return m.Dinner
	default:
		return neutralSuitability
	}
}

// Venue is a normalized third-party directory result, computed fresh per
// request.
type Venue struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Address          string          `json:"address"`
	Coordinate       geo.Coordinate  `json:"coordinate"`
	DistanceMeters   float64         `json:"distanceMeters"`
	Rating           float64         `json:"rating"`
	UserRatingsTotal int             `json:"userRatingsTotal"`
	PriceLevel       int             `json:"priceLevel"`
	Open             bool            `json:"isOpen"`
	Types            []string        `json:"types"`
	Description      string          `json:"description"`
	Suitability      MealSuitability `json:"mealSuitability"`
}
