// Package explain ranks the features that pushed a prediction up
package explain

import (
	"math"
	"sort"

	"github.com/plantroute/plantroute-backend-go/internal/classifier"
	"github.com/plantroute/plantroute-backend-go/internal/features"
	"github.com/plantroute/plantroute-backend-go/internal/models"
)

// MaxReasons caps the reasons attached to a regret prediction
const MaxReasons = 4

// ContributionEpsilon filters near-zero contributions out of the ranking
const ContributionEpsilon = 1e-6

// Reason is the user-facing wording of one mismatch feature
type Reason struct {
	Code    string
	Message string
}

// ReasonTable maps feature names to reasons. Features without an entry are never shown.
type ReasonTable map[string]Reason

// RegretReasons is the wording for the regret-protection mismatch features
var RegretReasons = ReasonTable{
	features.PaceOverage:         {"too_packed", "This plan is more packed than you usually like."},
	features.WalkOverToleranceKm: {"too_much_walking", "This plan has more walking than you said is comfortable."},
	features.EarlyStartViolation: {"too_early", "This activity starts earlier than you usually like."},
	features.CrowdMismatch:       {"too_crowded", "This is expected to be very crowded, and you said crowds bother you."},
	features.BudgetOverrun:       {"over_budget", "This is pricier than your comfort zone."},
	features.OutdoorBadWeather:   {"outdoor_bad_weather", "This is mostly outdoors and the weather may not suit you."},
	features.LateNightAfterEarly: {"late_after_early", "Late night after an early start may be tiring."},
	features.NoiseMismatch:       {"too_noisy", "This tends to be noisy and you prefer quieter spots."},
	features.SpontaneityMismatch: {"too_structured", "This day is very structured; you said you like more free time."},
}

type contribution struct {
	name  string
	value float64
}

// Linear ranks features by value × coefficient. Only positive contributions
// with a table entry survive, strongest first, at most limit of them. It returns
// an empty list when the classifier's base estimator is not linear.
func Linear(clf classifier.Classifier, v features.Vector, order []string, table ReasonTable, limit int) []models.RegretReason {
	reasons := []models.RegretReason{}
	if clf == nil {
		return reasons
	}
	lin, ok := clf.BaseEstimator().(classifier.CoefficientExposer)
	if !ok {
		return reasons
	}
	coef := lin.Coefficients()

	var contribs []contribution
	for i, name := range order {
		if i >= len(coef) || features.IsHidden(name) {
			continue
		}
		if _, ok := table[name]; !ok {
			continue
		}
		c := v.Get(name) * coef[i]
		if c > ContributionEpsilon {
			contribs = append(contribs, contribution{name, c})
		}
	}
	sortContributions(contribs)

	for _, c := range contribs {
		if len(reasons) >= limit {
			break
		}
		r := table[c.name]
		reasons = append(reasons, models.RegretReason{
			Code:     r.Code,
			Message:  r.Message,
			Strength: math.Round(math.Min(1, c.value)*1e4) / 1e4,
		})
	}
	return reasons
}

// sortContributions orders by value descending, keeping column order on ties
func sortContributions(cs []contribution) {
	sort.SliceStable(cs, func(i, j int) bool {
		return cs[i].value > cs[j].value
	})
}
