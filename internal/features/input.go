package features

import (
	"math"
	"strings"

	"github.com/plantroute/plantroute-backend-go/internal/models"
)

// Neutral values assumed when an optional field is absent
const (
	DefaultStartHour     = 12.0
	DefaultCrowdLevel    = 0.5
	DefaultDurationHours = 1.0
	DefaultCategory      = "outdoor"
)

// Sliders are the user tolerances shared by all variants, each in [0,1]
type Sliders struct {
	Pace                  float64
	CrowdComfort          float64
	MorningTolerance      float64
	LateNightTolerance    float64
	WalkingEffort         float64
	Budget                float64
	PlanningVsSpontaneity float64
	NoiseSensitivity      float64
	EcoPreference         float64
}

// Item is the union of item attributes read by any variant
type Item struct {
	Category        string
	StartHour       float64
	WalkingKm       float64 // cumulative for the day when known
	CrowdLevel      float64
	OutdoorFraction float64
	ActivityCount   int
	CostLevel       float64
	DurationHours   float64
	EmissionKg      float64
	PriceUSD        float64
	IsLateNight     bool
	BadWeather      bool
}

// Input is everything a builder reads for one item
type Input struct {
	Sliders         Sliders
	DislikesWeather bool
	Interests       []string
	Item            Item
	// PreviousDayEndHour is nil when no context was supplied
	PreviousDayEndHour *float64
}

// FromItineraryItem adapts the regret-engine request shape. A nil context is
// treated as "nothing known about previous days".
func FromItineraryItem(prefs models.UserPreferences, item models.ItineraryItem, ctx *models.Context) Input {
	walk := item.WalkingKm
	if item.WalkingKmCumulativeDay != nil {
		walk = *item.WalkingKmCumulativeDay
	}

	in := Input{
		Sliders: Sliders{
			Pace:                  prefs.Pace,
			CrowdComfort:          prefs.CrowdComfort,
			MorningTolerance:      prefs.MorningTolerance,
			LateNightTolerance:    prefs.LateNightTolerance,
			WalkingEffort:         prefs.WalkingEffort,
			Budget:                prefs.BudgetComfort,
			PlanningVsSpontaneity: prefs.PlanningVsSpontaneity,
			NoiseSensitivity:      prefs.NoiseSensitivity,
			EcoPreference:         models.NeutralSlider,
		},
		DislikesWeather: prefs.DislikesWeather(),
		Item: Item{
			StartHour:       item.StartHour,
			WalkingKm:       walk,
			CrowdLevel:      item.CrowdLevel,
			OutdoorFraction: item.OutdoorFraction,
			ActivityCount:   item.ActivityCountToday,
			CostLevel:       item.CostLevel,
			DurationHours:   DefaultDurationHours,
			IsLateNight:     item.IsLateNight,
			BadWeather:      item.BadWeatherToday != nil && *item.BadWeatherToday,
		},
	}
	if item.DurationHours != nil {
		in.Item.DurationHours = *item.DurationHours
	}
	if ctx != nil {
		in.PreviousDayEndHour = ctx.PreviousDayEndHour
	}

	return in
}

// FromActivity adapts the fit-engine request shape
func FromActivity(travel models.TravelPreferences, interests []string, activity models.ActivityInput) Input {
	category := strings.ToLower(strings.TrimSpace(activity.Category))
	if category == "" {
		category = DefaultCategory
	}

	start := DefaultStartHour
	if activity.TypicalStartHour != nil {
		start = *activity.TypicalStartHour
	}
	crowd := DefaultCrowdLevel
	if activity.TypicalCrowdLevel != nil {
		crowd = *activity.TypicalCrowdLevel
	}
	duration := activity.DurationHours
	if duration <= 0 {
		duration = DefaultDurationHours
	}

	return Input{
		Sliders: Sliders{
			Pace:                  travel.TripPace,
			CrowdComfort:          travel.CrowdComfort,
			MorningTolerance:      travel.MorningTolerance,
			LateNightTolerance:    travel.LateNightTolerance,
			WalkingEffort:         travel.WalkingEffort,
			Budget:                travel.BudgetLevel,
			PlanningVsSpontaneity: travel.PlanningVsSpontaneity,
			NoiseSensitivity:      travel.NoiseSensitivity,
			EcoPreference:         travel.EcoPreference,
		},
		Interests: interests,
		Item: Item{
			Category:      category,
			StartHour:     start,
			CrowdLevel:    crowd,
			ActivityCount: 1,
			DurationHours: duration,
			EmissionKg:    activity.EmissionKg,
			PriceUSD:      activity.PriceUSD,
		},
	}
}

// Signals are the bounded intermediate values every formula reads. Inputs are
// re-clamped here so formulas never see out-of-range sliders.
type Signals struct {
	Sliders Sliders

	StartHour       float64 // [0,24]
	WalkKm          float64 // >= 0
	CrowdLevel      float64
	OutdoorFraction float64
	CostLevel       float64
	ActivitiesNorm  float64 // activity count / 10
	DurationNorm    float64 // hours / 8
	EmissionNorm    float64 // kg / 50
	PriceNorm       float64 // usd / 200

	DislikesWeather    bool
	BadWeather         bool
	IsLateNight        bool
	PreviousDayEndHour *float64

	InterestMatch float64
}

func newSignals(in Input, sim *SimilarityTable) *Signals {
	sl := in.Sliders
	s := &Signals{
		Sliders: Sliders{
			Pace:                  clamp01(sl.Pace),
			CrowdComfort:          clamp01(sl.CrowdComfort),
			MorningTolerance:      clamp01(sl.MorningTolerance),
			LateNightTolerance:    clamp01(sl.LateNightTolerance),
			WalkingEffort:         clamp01(sl.WalkingEffort),
			Budget:                clamp01(sl.Budget),
			PlanningVsSpontaneity: clamp01(sl.PlanningVsSpontaneity),
			NoiseSensitivity:      clamp01(sl.NoiseSensitivity),
			EcoPreference:         clamp01(sl.EcoPreference),
		},
		StartHour:       clamp(finite(in.Item.StartHour, DefaultStartHour), 0, 24),
		WalkKm:          math.Max(0, finite(in.Item.WalkingKm, 0)),
		CrowdLevel:      clamp01(in.Item.CrowdLevel),
		OutdoorFraction: clamp01(in.Item.OutdoorFraction),
		CostLevel:       clamp01(in.Item.CostLevel),
		ActivitiesNorm:  clamp01(float64(in.Item.ActivityCount) / ActivityCountCap),
		DurationNorm:    clamp01(finite(in.Item.DurationHours, DefaultDurationHours) / 8.0),
		EmissionNorm:    clamp01(finite(in.Item.EmissionKg, 0) / 50.0),
		PriceNorm:       clamp01(finite(in.Item.PriceUSD, 0) / 200.0),

		DislikesWeather:    in.DislikesWeather,
		BadWeather:         in.Item.BadWeather,
		IsLateNight:        in.Item.IsLateNight,
		PreviousDayEndHour: in.PreviousDayEndHour,

		InterestMatch: NeutralInterestMatch,
	}

	if sim != nil {
		s.InterestMatch = sim.InterestMatch(in.Interests, in.Item.Category)
	}

	return s
}

func finite(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
