package weather

// OutdoorPreference is the dining-context reading of a weather snapshot.
type OutdoorPreference struct {
	PreferOutdoor bool     `json:"preferOutdoor"`
	Suggestions   []string `json:"suggestions"`
}

// DeriveOutdoorPreference applies a fixed rule table to a snapshot. Rules are
// checked in order: precipitation first, then temperature extremes, then the
// outdoor window.
func DeriveOutdoorPreference(s Snapshot) OutdoorPreference {
	switch s.Condition {
	case ConditionRainy, ConditionStormy, ConditionSnowy:
		return OutdoorPreference{
			PreferOutdoor: false,
			Suggestions:   []string{"Better to stay indoors", "Look for covered or indoor seating"},
		}
	}

	if s.TemperatureC < 5 {
		return OutdoorPreference{
			PreferOutdoor: false,
			Suggestions:   []string{"It's cold out", "A warm indoor spot is a good call"},
		}
	}
	if s.TemperatureC > 35 {
		return OutdoorPreference{
			PreferOutdoor: false,
			Suggestions:   []string{"It's very hot", "Pick somewhere air-conditioned"},
		}
	}

	if (s.Condition == ConditionClear || s.Condition == ConditionCloudy) &&
		s.TemperatureC > 15 && s.TemperatureC < 30 {
		return OutdoorPreference{
			PreferOutdoor: true,
			Suggestions:   []string{"Great weather for a patio or terrace"},
		}
	}

	return OutdoorPreference{
		PreferOutdoor: false,
		Suggestions:   []string{"Nice weather, dining out is fine"},
	}
}
