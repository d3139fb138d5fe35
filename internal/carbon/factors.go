package carbon

import (
	"math"
	"strings"

	"github.com/plantroute/plantroute-backend-go/internal/models"
)

// Transport factors in kg CO2e per passenger-km
const (
	FlightShortHaulKm = 1500.0 // below this a flight uses the short-haul factor
	FlightFactorShort = 0.15
	FlightFactorLong  = 0.11
	RadiativeForcing  = 1.9 // applied to every flight
	TrainFactor       = 0.04
	BusFactor         = 0.08
	CarFactor         = 0.20
	FerryFactor       = 0.12
	ActivityDefaultKg = 3.0  // per visit, unknown category
	HotelKgPerNight   = 15.0 // per day with a hotel entry
)

const (
	flightModePrefix        = "flight"
	defaultActivityCategory = "default"
)

var modeFactors = map[string]float64{
	models.ModeTrain: TrainFactor,
	models.ModeBus:   BusFactor,
	models.ModeCar:   CarFactor,
	models.ModeFerry: FerryFactor,
}

// activityFactors are kg CO2e per visit
var activityFactors = map[string]float64{
	"museum":     2.5,
	"restaurant": 4.0,
	"outdoor":    0.5,
	"ski":        18.0,
	"beach":      0.8,
	"nightlife":  3.0,
	"wellness":   2.0,
	"shopping":   5.0,
}

// NormalizeMode lowercases a mode and maps an empty one to car
func NormalizeMode(mode string) string {
	m := strings.ToLower(strings.TrimSpace(mode))
	if m == "" {
		return models.ModeCar
	}
	return m
}

// IsFlight reports whether mode is one of the flight_* modes
func IsFlight(mode string) bool {
	return strings.HasPrefix(NormalizeMode(mode), flightModePrefix)
}

// EmissionFactor returns the effective kg CO2e per km for a mode and trip length.
// Flight factors already include the radiative forcing multiplier.
func EmissionFactor(mode string, distanceKm float64) float64 {
	m := NormalizeMode(mode)
	if strings.HasPrefix(m, flightModePrefix) {
		factor := FlightFactorLong
		if distanceKm < FlightShortHaulKm {
			factor = FlightFactorShort
		}
		return factor * RadiativeForcing
	}

	if factor, ok := modeFactors[m]; ok {
		return factor
	}
	return CarFactor
}

// TransportEmission returns kg CO2e for one leg
func TransportEmission(mode string, distanceKm float64) float64 {
	if distanceKm <= 0 {
		return 0
	}
	return distanceKm * EmissionFactor(mode, distanceKm)
}

// ActivityEmission returns kg CO2e for one visit of the given category
func ActivityEmission(category string) float64 {
	cat := strings.ToLower(strings.TrimSpace(category))
	if cat == "" {
		cat = defaultActivityCategory
	}
	if kg, ok := activityFactors[cat]; ok {
		return kg
	}
	return ActivityDefaultKg
}

// HotelEmission returns the fixed per-day hotel charge
func HotelEmission() float64 {
	return HotelKgPerNight
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
