package models

// EmissionItem is one line of an itinerary carbon estimate
type EmissionItem struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"` // transport, activity, hotel
	Description string   `json:"description"`
	DistanceKm  *float64 `json:"distance_km"` // transport only, 2 decimals
	EmissionKg  float64  `json:"emission_kg"` // kg CO2e, 3 decimals
}

// Emission item types
const (
	EmissionTypeTransport = "transport"
	EmissionTypeActivity  = "activity"
	EmissionTypeHotel     = "hotel"
)

// CarbonResult is the per-item breakdown and total for one itinerary
type CarbonResult struct {
	Items   []EmissionItem `json:"items"`
	TotalKg float64        `json:"total_kg"`
}

// AlternativeResult compares an itinerary with its low-carbon rewrite.
// RegretScore is the fractional emissions reduction in [0,1]; it is unrelated to
// the RegretProbability returned by the scoring engines.
type AlternativeResult struct {
	OriginalTotalKg      float64   `json:"original_total_kg"`
	AlternativeTotalKg   float64   `json:"alternative_total_kg"`
	AlternativeItinerary Itinerary `json:"alternative_itinerary"`
	SavingsKg            float64   `json:"savings_kg"`
	RegretScore          float64   `json:"regret_score"`
}
