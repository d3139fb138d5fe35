package carbon

import (
	"math"
	"strings"

	"github.com/plantroute/plantroute-backend-go/internal/models"
	"github.com/plantroute/plantroute-backend-go/internal/spatial"
)

// ShortFlightReplaceKm is the distance under which a flight is rewritten to train
const ShortFlightReplaceKm = 800.0

const (
	skiCategory     = "ski"
	outdoorCategory = "outdoor"
)

// OptimizeAlternatives rewrites a copy of the itinerary with two single-pass rules:
// flights under ShortFlightReplaceKm become trains and ski activities become outdoor.
// The input itinerary is never modified. Preference hints are accepted for API
// compatibility and do not influence the rewrite.
func OptimizeAlternatives(it models.Itinerary, _ models.TravelPreferences) models.AlternativeResult {
	original := ComputeItineraryEmissions(it).TotalKg

	alt := it.Clone()
	for d := range alt.Days {
		day := &alt.Days[d]

		for s := range day.Transport {
			seg := &day.Transport[s]
			if !IsFlight(seg.Mode) {
				continue
			}
			if rawSegmentDistanceKm(*seg) < ShortFlightReplaceKm {
				seg.Mode = models.ModeTrain
			}
		}

		for a := range day.Activities {
			act := &day.Activities[a]
			if strings.ToLower(strings.TrimSpace(act.Category)) == skiCategory {
				act.Category = outdoorCategory
			}
		}
	}

	alternative := ComputeItineraryEmissions(alt).TotalKg

	return models.AlternativeResult{
		OriginalTotalKg:      original,
		AlternativeTotalKg:   alternative,
		AlternativeItinerary: alt,
		SavingsKg:            round(original-alternative, 3),
		RegretScore:          ReductionScore(original, alternative),
	}
}

// ReductionScore is the fraction of the original footprint saved, clamped to [0,1]
// and rounded to 4 decimals. It is 0 when the original total is not positive.
func ReductionScore(originalKg, alternativeKg float64) float64 {
	if originalKg <= 0 {
		return 0
	}
	score := (originalKg - alternativeKg) / originalKg
	return round(math.Max(0, math.Min(1, score)), 4)
}

// rawSegmentDistanceKm uses the stored distance when present, else the endpoints
func rawSegmentDistanceKm(seg models.TransportSegment) float64 {
	if seg.DistanceKm != nil {
		return *seg.DistanceKm
	}
	return spatial.HaversineKm(seg.Origin.Lat, seg.Origin.Lng, seg.Destination.Lat, seg.Destination.Lng)
}
