package carbon

import (
	"reflect"
	"testing"

	"github.com/plantroute/plantroute-backend-go/internal/models"
)

func TestOptimizeAlternativesReplacesShortFlightAndSki(t *testing.T) {
	it := models.Itinerary{Days: []models.Day{
		{
			Transport: []models.TransportSegment{
				{
					ID:          "short",
					Mode:        "flight_short",
					Origin:      models.GeoPoint{Lat: 48.8566, Lng: 2.3522, Name: "Paris"},
					Destination: models.GeoPoint{Lat: 45.7640, Lng: 4.8357, Name: "Lyon"},
				},
				{ID: "long", Mode: "flight_long", DistanceKm: floatPtr(2500)},
				{ID: "stored-short", Mode: "Flight_Short", DistanceKm: floatPtr(799.99)},
			},
			Activities: []models.Activity{
				{ID: "ski", Category: "ski"},
				{ID: "museum", Category: "museum"},
			},
		},
	}}

	result := OptimizeAlternatives(it, models.DefaultTravelPreferences())

	day := result.AlternativeItinerary.Days[0]
	if day.Transport[0].Mode != models.ModeTrain {
		t.Errorf("Paris-Lyon flight should become train, got %q", day.Transport[0].Mode)
	}
	if day.Transport[1].Mode != "flight_long" {
		t.Errorf("long flight should be kept, got %q", day.Transport[1].Mode)
	}
	if day.Transport[2].Mode != models.ModeTrain {
		t.Errorf("stored short flight should become train, got %q", day.Transport[2].Mode)
	}
	if day.Activities[0].Category != "outdoor" {
		t.Errorf("ski should become outdoor, got %q", day.Activities[0].Category)
	}
	if day.Activities[1].Category != "museum" {
		t.Errorf("museum should be untouched, got %q", day.Activities[1].Category)
	}

	if result.AlternativeTotalKg > result.OriginalTotalKg {
		t.Fatalf("alternative %v exceeds original %v", result.AlternativeTotalKg, result.OriginalTotalKg)
	}
	if result.SavingsKg != round(result.OriginalTotalKg-result.AlternativeTotalKg, 3) {
		t.Fatalf("unexpected savings %v", result.SavingsKg)
	}
	if result.RegretScore <= 0 || result.RegretScore > 1 {
		t.Fatalf("regret score out of range: %v", result.RegretScore)
	}
}

func TestOptimizeAlternativesDoesNotMutateInput(t *testing.T) {
	it := parisRome()
	it.Days[0].Transport[0].DistanceKm = floatPtr(500)
	it.Days[0].Activities = append(it.Days[0].Activities, models.Activity{ID: "s", Category: "ski"})

	before := it.Clone()
	result := OptimizeAlternatives(it, models.DefaultTravelPreferences())

	if !reflect.DeepEqual(before, it) {
		t.Fatalf("input itinerary was modified")
	}
	if it.Days[0].Transport[0].Mode != "flight_short" {
		t.Fatalf("input mode changed to %q", it.Days[0].Transport[0].Mode)
	}
	if result.AlternativeItinerary.Days[0].Transport[0].DistanceKm == it.Days[0].Transport[0].DistanceKm {
		t.Fatalf("alternative shares distance pointer with input")
	}
	if result.AlternativeItinerary.Days[0].Hotel == it.Days[0].Hotel {
		t.Fatalf("alternative shares hotel pointer with input")
	}
}

func TestOptimizeAlternativesNoReducibleElements(t *testing.T) {
	// Paris-Rome is longer than the replacement threshold
	it := parisRome()

	result := OptimizeAlternatives(it, models.DefaultTravelPreferences())

	if !reflect.DeepEqual(result.AlternativeItinerary, it) {
		t.Fatalf("alternative itinerary should be structurally unchanged")
	}
	if result.SavingsKg != 0 {
		t.Fatalf("expected zero savings, got %v", result.SavingsKg)
	}
	if result.RegretScore != 0 {
		t.Fatalf("expected zero regret score, got %v", result.RegretScore)
	}
	if result.OriginalTotalKg != result.AlternativeTotalKg {
		t.Fatalf("totals differ: %v vs %v", result.OriginalTotalKg, result.AlternativeTotalKg)
	}
}

func TestOptimizeAlternativesEmptyItinerary(t *testing.T) {
	result := OptimizeAlternatives(models.Itinerary{}, models.DefaultTravelPreferences())
	if result.OriginalTotalKg != 0 || result.RegretScore != 0 || result.SavingsKg != 0 {
		t.Fatalf("unexpected result for empty itinerary: %+v", result)
	}
}

func TestReductionScore(t *testing.T) {
	tests := []struct {
		name        string
		original    float64
		alternative float64
		want        float64
	}{
		{"zero original", 0, 0, 0},
		{"negative original", -10, -20, 0},
		{"half", 100, 50, 0.5},
		{"no change", 100, 100, 0},
		{"increase clamps", 100, 150, 0},
		{"rounds to four places", 3, 1, 0.6667},
		{"everything saved", 42, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReductionScore(tt.original, tt.alternative); got != tt.want {
				t.Errorf("ReductionScore(%v, %v) = %v, want %v", tt.original, tt.alternative, got, tt.want)
			}
		})
	}
}
