package weather

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionClear  Condition = "clear"
	ConditionCloudy Condition = "cloudy"
	ConditionRainy  Condition = "rainy"
	ConditionSnowy  Condition = "snowy"
	ConditionStormy Condition = "stormy"
)

// Snapshot is the normalized current-weather view for a coordinate, produced
// fresh per request and never persisted.
type Snapshot struct {
	Condition    Condition `json:"condition"`
	TemperatureC float64   `json:"temperatureC"`
	HumidityPct  float64   `json:"humidityPct"`
	Description  string    `json:"description"`

	// GoodForOutdoor summarizes whether current conditions favor outdoor
	// seating.
	GoodForOutdoor bool `json:"isGoodForOutdoor"`

	// Fallback marks a synthetic snapshot produced when live data was
	// unavailable; it is not authoritative.
	Fallback bool `json:"fallback,omitempty"`
}
