package features

import "math"

// Regret-protection thresholds
const (
	ActivityCountCap = 10.0 // activity count that saturates the pace signals
	WalkComfortKmMin = 1.0
	WalkComfortKmMax = 12.0
	EarlyStartHour   = 8.0
	LateNightHour    = 22.0
	WalkOverScaleKm  = 10.0
	WalkNormKm       = 15.0
)

// Regret-protection column names
const (
	PaceOverage         = "pace_overage"
	WalkOverToleranceKm = "walk_over_tolerance_km"
	EarlyStartViolation = "early_start_violation"
	CrowdMismatch       = "crowd_mismatch"
	BudgetOverrun       = "budget_overrun"
	OutdoorBadWeather   = "outdoor_bad_weather"
	LateNightAfterEarly = "late_night_after_early"
	NoiseMismatch       = "noise_mismatch"
	SpontaneityMismatch = "spontaneity_mismatch"
)

// WalkComfortKm interpolates the comfortable daily walk between 1 and 12 km
func WalkComfortKm(walkingEffort float64) float64 {
	return WalkComfortKmMin + clamp01(walkingEffort)*(WalkComfortKmMax-WalkComfortKmMin)
}

// RegretProtection is the 16-column variant used by the regret engines.
// The first nine columns are mismatch signals, the rest hidden passthroughs.
func RegretProtection() Config {
	return Config{
		Name: "regret_protection",
		Features: []Feature{
			unit(PaceOverage, func(s *Signals) float64 {
				return math.Max(0, s.ActivitiesNorm-s.Sliders.Pace)
			}),
			unit(WalkOverToleranceKm, func(s *Signals) float64 {
				over := math.Max(0, s.WalkKm-WalkComfortKm(s.Sliders.WalkingEffort))
				return over / WalkOverScaleKm
			}),
			unit(EarlyStartViolation, func(s *Signals) float64 {
				return (1 - s.Sliders.MorningTolerance) * math.Max(0, EarlyStartHour-s.StartHour) / 4.0
			}),
			unit(CrowdMismatch, func(s *Signals) float64 {
				return s.CrowdLevel * (1 - s.Sliders.CrowdComfort)
			}),
			unit(BudgetOverrun, func(s *Signals) float64 {
				return math.Max(0, s.CostLevel-s.Sliders.Budget)
			}),
			unit(OutdoorBadWeather, func(s *Signals) float64 {
				if s.DislikesWeather && s.BadWeather {
					return s.OutdoorFraction
				}
				return 0
			}),
			unit(LateNightAfterEarly, func(s *Signals) float64 {
				earlyToday := s.StartHour < EarlyStartHour+1
				lateYesterday := s.PreviousDayEndHour != nil && *s.PreviousDayEndHour >= LateNightHour
				if s.IsLateNight && (earlyToday || lateYesterday) {
					return 1
				}
				return 0
			}),
			unit(NoiseMismatch, func(s *Signals) float64 {
				return s.CrowdLevel * (1 - s.Sliders.NoiseSensitivity)
			}),
			unit(SpontaneityMismatch, func(s *Signals) float64 {
				return s.ActivitiesNorm - (1 - s.Sliders.PlanningVsSpontaneity)
			}),

			unit("_start_hour_norm", func(s *Signals) float64 { return s.StartHour / 24.0 }),
			unit("_walk_km_norm", func(s *Signals) float64 { return s.WalkKm / WalkNormKm }),
			unit("_activities_norm", func(s *Signals) float64 { return s.ActivitiesNorm }),
			unit("_pace", func(s *Signals) float64 { return s.Sliders.Pace }),
			unit("_crowd_comfort", func(s *Signals) float64 { return s.Sliders.CrowdComfort }),
			unit("_morning_tolerance", func(s *Signals) float64 { return s.Sliders.MorningTolerance }),
			unit("_budget_comfort", func(s *Signals) float64 { return s.Sliders.Budget }),
		},
	}
}

// unit declares a column bounded to [0,1]
func unit(name string, value func(s *Signals) float64) Feature {
	return Feature{Name: name, Min: 0, Max: 1, Value: value}
}
