package features

import "math"

// Fit-variant column names
const (
	InterestMatch        = "interest_match"
	EcoPreference        = "eco_preference"
	EmissionFit          = "emission_fit"
	EarlyStartMismatch   = "early_start_mismatch"
	LateNightMismatch    = "late_night_mismatch"
	BudgetMismatch       = "budget_mismatch"
	PaceDurationMismatch = "pace_duration_mismatch"
)

// emissionFitWeight scales how hard an eco-minded user penalises emissions
const emissionFitWeight = 1.15

// PreferenceFit is the 17-column fit variant without eco signals
func PreferenceFit() Config {
	return Config{
		Name:       "preference_fit",
		Features:   fitFeatures(false),
		Similarity: RelatedSimilarity,
	}
}

// PreferenceFitEco adds eco_preference and emission_fit (19 columns)
func PreferenceFitEco() Config {
	return Config{
		Name:       "preference_fit_eco",
		Features:   fitFeatures(true),
		Similarity: GradedSimilarity,
	}
}

func fitFeatures(eco bool) []Feature {
	fs := []Feature{
		unit(InterestMatch, func(s *Signals) float64 { return s.InterestMatch }),
		unit("trip_pace", func(s *Signals) float64 { return s.Sliders.Pace }),
		unit("crowd_comfort", func(s *Signals) float64 { return s.Sliders.CrowdComfort }),
		unit("morning_tolerance", func(s *Signals) float64 { return s.Sliders.MorningTolerance }),
		unit("late_night_tolerance", func(s *Signals) float64 { return s.Sliders.LateNightTolerance }),
		unit("walking_effort", func(s *Signals) float64 { return s.Sliders.WalkingEffort }),
		unit("budget_level", func(s *Signals) float64 { return s.Sliders.Budget }),
		unit("planning_vs_spontaneity", func(s *Signals) float64 { return s.Sliders.PlanningVsSpontaneity }),
		unit("noise_sensitivity", func(s *Signals) float64 { return s.Sliders.NoiseSensitivity }),
	}
	if eco {
		fs = append(fs, unit(EcoPreference, func(s *Signals) float64 { return s.Sliders.EcoPreference }))
	}

	fs = append(fs,
		unit("duration_norm", func(s *Signals) float64 { return s.DurationNorm }),
		unit("emission_norm", func(s *Signals) float64 { return s.EmissionNorm }),
		unit("price_norm", func(s *Signals) float64 { return s.PriceNorm }),
	)
	if eco {
		fs = append(fs, unit(EmissionFit, func(s *Signals) float64 {
			return 1 - math.Min(1, s.Sliders.EcoPreference*s.EmissionNorm*emissionFitWeight)
		}))
	}

	return append(fs,
		unit(CrowdMismatch, func(s *Signals) float64 {
			return s.CrowdLevel * (1 - s.Sliders.CrowdComfort)
		}),
		unit(EarlyStartMismatch, func(s *Signals) float64 {
			return (1 - s.Sliders.MorningTolerance) * math.Max(0, 9-s.StartHour) / 9
		}),
		unit(LateNightMismatch, func(s *Signals) float64 {
			return (1 - s.Sliders.LateNightTolerance) * math.Max(0, s.StartHour-21) / 3
		}),
		unit(BudgetMismatch, func(s *Signals) float64 {
			return math.Max(0, s.PriceNorm-s.Sliders.Budget)
		}),
		unit(PaceDurationMismatch, func(s *Signals) float64 {
			return math.Max(0, s.DurationNorm-s.Sliders.Pace)
		}),
	)
}
