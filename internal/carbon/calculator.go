package carbon

import (
	"fmt"
	"math"
	"strings"

	"github.com/plantroute/plantroute-backend-go/internal/models"
	"github.com/plantroute/plantroute-backend-go/internal/spatial"
)

// SegmentDistanceKm returns the stored distance, or the great-circle distance
// between the endpoints when none is stored. Legs with no coordinates at all are 0 km.
func SegmentDistanceKm(seg models.TransportSegment) float64 {
	if seg.DistanceKm != nil {
		return math.Max(0, *seg.DistanceKm)
	}
	if seg.Origin.IsZero() && seg.Destination.IsZero() {
		return 0
	}
	return spatial.HaversineKm(seg.Origin.Lat, seg.Origin.Lng, seg.Destination.Lat, seg.Destination.Lng)
}

// ComputeItineraryEmissions estimates the footprint of every transport leg,
// activity and hotel night, in day order, and their total.
// Missing fields fall back to defaults; it never fails.
func ComputeItineraryEmissions(it models.Itinerary) models.CarbonResult {
	items := make([]models.EmissionItem, 0)

	for _, day := range it.Days {
		for _, seg := range day.Transport {
			items = append(items, transportItem(seg))
		}

		for _, act := range day.Activities {
			name := act.Name
			if name == "" {
				name = "Activity"
			}
			items = append(items, models.EmissionItem{
				ID:          act.ID,
				Type:        models.EmissionTypeActivity,
				Description: name,
				EmissionKg:  round(ActivityEmission(act.Category), 3),
			})
		}

		if day.Hotel != nil {
			name := day.Hotel.Name
			if name == "" {
				name = "Hotel"
			}
			items = append(items, models.EmissionItem{
				ID:          day.Hotel.ID,
				Type:        models.EmissionTypeHotel,
				Description: name,
				EmissionKg:  round(HotelEmission(), 3),
			})
		}
	}

	total := 0.0
	for _, item := range items {
		total += item.EmissionKg
	}

	return models.CarbonResult{
		Items:   items,
		TotalKg: round(total, 3),
	}
}

func transportItem(seg models.TransportSegment) models.EmissionItem {
	mode := NormalizeMode(seg.Mode)

	// the reported distance is the one the emission is computed from
	distance := round(SegmentDistanceKm(seg), 2)
	emission := round(TransportEmission(mode, distance), 3)

	desc := strings.TrimSpace(fmt.Sprintf("%s %s -> %s", mode, seg.Origin.Name, seg.Destination.Name))

	return models.EmissionItem{
		ID:          seg.ID,
		Type:        models.EmissionTypeTransport,
		Description: desc,
		DistanceKm:  &distance,
		EmissionKg:  emission,
	}
}
