package models

// UserPreferences are the regret-engine sliders, all in [0,1]
type UserPreferences struct {
	Pace                  float64 `json:"pace"`
	CrowdComfort          float64 `json:"crowd_comfort"`
	MorningTolerance      float64 `json:"morning_tolerance"`
	LateNightTolerance    float64 `json:"late_night_tolerance"`
	WalkingEffort         float64 `json:"walking_effort"`
	BudgetComfort         float64 `json:"budget_comfort"`
	PlanningVsSpontaneity float64 `json:"planning_vs_spontaneity"`
	NoiseSensitivity      float64 `json:"noise_sensitivity"`

	DislikeHeat bool `json:"dislike_heat"`
	DislikeCold bool `json:"dislike_cold"`
	DislikeRain bool `json:"dislike_rain"`

	TravelVibe      string `json:"travel_vibe"` // Chill, Adventure, Family, Romantic, Nightlife
	AdditionalNotes string `json:"additional_notes,omitempty"`
}

// Travel vibe constants
const (
	VibeChill     = "Chill"
	VibeAdventure = "Adventure"
	VibeFamily    = "Family"
	VibeRomantic  = "Romantic"
	VibeNightlife = "Nightlife"
)

// NeutralSlider is the value assumed for any slider the client did not send
const NeutralSlider = 0.5

// DefaultUserPreferences returns neutral sliders and no dislikes
func DefaultUserPreferences() UserPreferences {
	return UserPreferences{
		Pace:                  NeutralSlider,
		CrowdComfort:          NeutralSlider,
		MorningTolerance:      NeutralSlider,
		LateNightTolerance:    NeutralSlider,
		WalkingEffort:         NeutralSlider,
		BudgetComfort:         NeutralSlider,
		PlanningVsSpontaneity: NeutralSlider,
		NoiseSensitivity:      NeutralSlider,
		TravelVibe:            VibeChill,
	}
}

// UnmarshalJSON fills absent or wrong-shaped fields with their neutral defaults
func (p *UserPreferences) UnmarshalJSON(data []byte) error {
	type alias UserPreferences
	v := alias(DefaultUserPreferences())
	decodeLenient(data, &v)
	*p = UserPreferences(v)
	return nil
}

// DislikesWeather reports whether any weather dislike flag is set
func (p UserPreferences) DislikesWeather() bool {
	return p.DislikeHeat || p.DislikeCold || p.DislikeRain
}

// ItineraryItem describes one planned activity as seen by the regret engines
type ItineraryItem struct {
	StartHour              float64  `json:"start_hour"`
	EndHour                *float64 `json:"end_hour,omitempty"`
	DurationHours          *float64 `json:"duration_hours,omitempty"`
	WalkingKm              float64  `json:"walking_km"`
	WalkingKmCumulativeDay *float64 `json:"walking_km_cumulative_day,omitempty"`
	CrowdLevel             float64  `json:"crowd_level"`
	OutdoorFraction        float64  `json:"outdoor_fraction"`
	ActivityCountToday     int      `json:"activity_count_today"`
	CostLevel              float64  `json:"cost_level"`
	DayNumber              int      `json:"day_number"`
	IsLateNight            bool     `json:"is_late_night"`
	IsMustSee              bool     `json:"is_must_see"`
	BadWeatherToday        *bool    `json:"bad_weather_today,omitempty"`
}

// DefaultItineraryItem returns a midday, single-activity item with neutral levels
func DefaultItineraryItem() ItineraryItem {
	return ItineraryItem{
		StartHour:          12.0,
		CrowdLevel:         0.5,
		OutdoorFraction:    0.5,
		ActivityCountToday: 1,
		CostLevel:          0.5,
		DayNumber:          1,
	}
}

// UnmarshalJSON fills absent or wrong-shaped fields with their neutral defaults
func (i *ItineraryItem) UnmarshalJSON(data []byte) error {
	type alias ItineraryItem
	v := alias(DefaultItineraryItem())
	decodeLenient(data, &v)
	*i = ItineraryItem(v)
	return nil
}

// Context carries what happened before the item. Every field is optional.
type Context struct {
	PreviousDayWalkingKm *float64 `json:"previous_day_walking_km,omitempty"`
	PreviousDayEndHour   *float64 `json:"previous_day_end_hour,omitempty"`
	SleepWindowStartHour *float64 `json:"sleep_window_start_hour,omitempty"`
	SleepWindowEndHour   *float64 `json:"sleep_window_end_hour,omitempty"`
	RecentPaceScore      *float64 `json:"recent_pace_score,omitempty"`
}

// TravelPreferences are the fit-engine sliders, all in [0,1]
type TravelPreferences struct {
	TripPace              float64 `json:"trip_pace"`
	CrowdComfort          float64 `json:"crowd_comfort"`
	MorningTolerance      float64 `json:"morning_tolerance"`
	LateNightTolerance    float64 `json:"late_night_tolerance"`
	WalkingEffort         float64 `json:"walking_effort"`
	BudgetLevel           float64 `json:"budget_level"`
	PlanningVsSpontaneity float64 `json:"planning_vs_spontaneity"`
	NoiseSensitivity      float64 `json:"noise_sensitivity"`
	EcoPreference         float64 `json:"eco_preference"`
}

// DefaultTravelPreferences returns neutral sliders
func DefaultTravelPreferences() TravelPreferences {
	return TravelPreferences{
		TripPace:              NeutralSlider,
		CrowdComfort:          NeutralSlider,
		MorningTolerance:      NeutralSlider,
		LateNightTolerance:    NeutralSlider,
		WalkingEffort:         NeutralSlider,
		BudgetLevel:           NeutralSlider,
		PlanningVsSpontaneity: NeutralSlider,
		NoiseSensitivity:      NeutralSlider,
		EcoPreference:         NeutralSlider,
	}
}

// UnmarshalJSON fills absent or wrong-shaped fields with their neutral defaults
func (p *TravelPreferences) UnmarshalJSON(data []byte) error {
	type alias TravelPreferences
	v := alias(DefaultTravelPreferences())
	decodeLenient(data, &v)
	*p = TravelPreferences(v)
	return nil
}

// ActivityInput describes a candidate attraction for fit scoring.
// Zero Category and DurationHours mean "outdoor" and one hour.
type ActivityInput struct {
	ID                string   `json:"id,omitempty"`
	Name              string   `json:"name,omitempty"`
	Category          string   `json:"category"`
	DurationHours     float64  `json:"duration_hours"`
	EmissionKg        float64  `json:"emission_kg"`
	PriceUSD          float64  `json:"price_usd"`
	ActivityDensity   *float64 `json:"activity_density,omitempty"`
	TypicalStartHour  *float64 `json:"typical_start_hour,omitempty"`
	TypicalCrowdLevel *float64 `json:"typical_crowd_level,omitempty"`
}

// UnmarshalJSON tolerates wrong-shaped fields, leaving them unset
func (c *Context) UnmarshalJSON(data []byte) error {
	type alias Context
	var v alias
	decodeLenient(data, &v)
	*c = Context(v)
	return nil
}

// UnmarshalJSON tolerates wrong-shaped fields, leaving them unset
func (a *ActivityInput) UnmarshalJSON(data []byte) error {
	type alias ActivityInput
	var v alias
	decodeLenient(data, &v)
	*a = ActivityInput(v)
	return nil
}
