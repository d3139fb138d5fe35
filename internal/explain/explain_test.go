package explain

import (
	"reflect"
	"testing"

	"github.com/plantroute/plantroute-backend-go/internal/classifier"
	"github.com/plantroute/plantroute-backend-go/internal/features"
	"github.com/plantroute/plantroute-backend-go/internal/models"
)

// opaque predicts without exposing coefficients or importances
type opaque struct{}

func (opaque) PredictProba(rows [][]float64) ([]float64, error) {
	return make([]float64, len(rows)), nil
}

func regretVector(prefs models.UserPreferences, item models.ItineraryItem) (features.Vector, []string) {
	b := features.NewBuilder(features.RegretProtection())
	return b.Build(features.FromItineraryItem(prefs, item, nil)), b.FeatureNames()
}

func TestLinearZeroCoefficientsYieldsNoReasons(t *testing.T) {
	v, order := regretVector(models.DefaultUserPreferences(), models.DefaultItineraryItem())
	clf := classifier.NewDirect(classifier.NewLogisticModel(make([]float64, len(order)), 0))

	got := Linear(clf, v, order, RegretReasons, MaxReasons)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", got)
	}
}

func TestLinearRanksPositiveContributions(t *testing.T) {
	prefs := models.DefaultUserPreferences()
	prefs.CrowdComfort = 0
	prefs.NoiseSensitivity = 0
	prefs.BudgetComfort = 0

	item := models.DefaultItineraryItem()
	item.CrowdLevel = 1
	item.CostLevel = 0.9
	v, order := regretVector(prefs, item)

	coef := make([]float64, len(order))
	for i, name := range order {
		switch name {
		case features.CrowdMismatch:
			coef[i] = 3 // contribution 3, capped to strength 1
		case features.BudgetOverrun:
			coef[i] = 0.5 // 0.45
		case features.NoiseMismatch:
			coef[i] = -2 // negative, excluded
		case "_pace":
			coef[i] = 10 // hidden, never surfaced
		}
	}
	clf := classifier.NewDirect(classifier.NewLogisticModel(coef, 0))

	got := Linear(clf, v, order, RegretReasons, MaxReasons)
	want := []models.RegretReason{
		{Code: "too_crowded", Message: RegretReasons[features.CrowdMismatch].Message, Strength: 1},
		{Code: "over_budget", Message: RegretReasons[features.BudgetOverrun].Message, Strength: 0.45},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}
}

func TestLinearCapsAndDropsUntabled(t *testing.T) {
	order := []string{"a", "b", "c", "d", "e", "f"}
	v := features.NewVector(order, []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6})
	clf := classifier.NewDirect(classifier.NewLogisticModel([]float64{1, 1, 1, 1, 1, 1}, 0))
	table := ReasonTable{
		"a": {"a", "A"}, "b": {"b", "B"}, "c": {"c", "C"}, "d": {"d", "D"}, "e": {"e", "E"},
	}

	got := Linear(clf, v, order, table, 4)
	codes := make([]string, len(got))
	for i, r := range got {
		codes[i] = r.Code
	}
	if want := []string{"e", "d", "c", "b"}; !reflect.DeepEqual(codes, want) {
		t.Errorf("got %v, want %v", codes, want)
	}
}

func TestLinearUnwrapsCalibration(t *testing.T) {
	order := []string{features.CrowdMismatch}
	v := features.NewVector(order, []float64{0.5})
	clf := classifier.NewCalibrated(classifier.NewDirect(classifier.NewLogisticModel([]float64{1}, 0)), 1, 0)

	got := Linear(clf, v, order, RegretReasons, MaxReasons)
	if len(got) != 1 || got[0].Code != "too_crowded" || got[0].Strength != 0.5 {
		t.Errorf("unexpected reasons %#v", got)
	}
}

func TestExplanationUnavailable(t *testing.T) {
	v, order := regretVector(models.DefaultUserPreferences(), models.DefaultItineraryItem())
	clf := classifier.NewDirect(opaque{})

	if got := Linear(clf, v, order, RegretReasons, MaxReasons); len(got) != 0 {
		t.Errorf("expected no reasons, got %v", got)
	}
	if got := Importance(clf, v, order, MaxExplanations); len(got) != 0 {
		t.Errorf("expected no explanation, got %v", got)
	}
	if got := Linear(nil, v, order, RegretReasons, MaxReasons); len(got) != 0 {
		t.Errorf("expected no reasons for nil classifier, got %v", got)
	}
}

func TestImportance(t *testing.T) {
	order := []string{"interest_match", "price_norm", "crowd_mismatch", "_raw", "duration_norm"}
	v := features.NewVector(order, []float64{1, 0, 0.5, 1, 0})
	trees, err := classifier.NewTreeEnsemble(
		[]classifier.Tree{{Nodes: []classifier.Node{{Leaf: 0}}}},
		0, len(order),
		[]float64{0.2, 0.35, 0.25, 0.9, 0},
	)
	if err != nil {
		t.Fatal(err)
	}

	// interest_match 0.4, price_norm 0.35, crowd_mismatch 0.375, _raw hidden, duration_norm zero
	got := Importance(classifier.NewDirect(trees), v, order, MaxExplanations)
	want := []string{"interest match", "crowd mismatch", "price norm"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if got := Importance(classifier.NewDirect(trees), v, order, 1); len(got) != 1 {
		t.Errorf("expected cap of 1, got %v", got)
	}
}

func TestHumanize(t *testing.T) {
	tests := map[string]string{
		"interest_match":         "interest match",
		"pace_duration_mismatch": "pace duration mismatch",
		"_start_hour_norm":       "start hour norm",
		"emission":               "emission",
	}
	for in, want := range tests {
		if got := Humanize(in); got != want {
			t.Errorf("Humanize(%q) = %q, want %q", in, got, want)
		}
	}
}
