package models

import (
	"encoding/json"
	"sort"
	"strings"
)

// Itinerary is a client-built trip plan. The core only reads it; optimizers work on a Clone.
type Itinerary struct {
	ID        string `json:"id,omitempty"`
	City      string `json:"city,omitempty"`
	StartDate string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Days      []Day  `json:"days"`

	TotalPriceUSD      float64 `json:"total_price_usd,omitempty"`
	TotalEmissionKg    float64 `json:"total_emission_kg,omitempty"`
	InterestMatchScore float64 `json:"interest_match_score,omitempty"`
}

// Day groups the transport, activities and optional hotel of one itinerary day
type Day struct {
	Date       string             `json:"date,omitempty"`
	Transport  []TransportSegment `json:"transport"`
	Activities []Activity         `json:"activities"`
	Hotel      *Hotel             `json:"hotel,omitempty"`
}

// TransportSegment is one leg between two points
type TransportSegment struct {
	ID              string   `json:"id,omitempty"`
	Mode            string   `json:"mode"` // flight_short, flight_long, train, bus, car, ferry
	Origin          GeoPoint `json:"origin"`
	Destination     GeoPoint `json:"destination"`
	DistanceKm      *float64 `json:"distance_km,omitempty"` // nil means derive from coordinates
	PriceUSD        float64  `json:"price_usd,omitempty"`
	DurationMinutes float64  `json:"duration_minutes,omitempty"`
	Provider        string   `json:"provider,omitempty"`
}

// Activity is a single visit within a day
type Activity struct {
	ID            string   `json:"id,omitempty"`
	Name          string   `json:"name,omitempty"`
	Category      string   `json:"category,omitempty"`
	Location      GeoPoint `json:"location"`
	PriceUSD      float64  `json:"price_usd,omitempty"`
	DurationHours float64  `json:"duration_hours,omitempty"`
}

// Hotel is an overnight stay. Its presence alone is charged once per day.
type Hotel struct {
	ID               string   `json:"id,omitempty"`
	Name             string   `json:"name,omitempty"`
	Location         GeoPoint `json:"location"`
	PricePerNightUSD float64  `json:"price_per_night_usd,omitempty"`
	Stars            float64  `json:"stars,omitempty"`
}

// GeoPoint is a named coordinate. Missing fields stay at the zero value.
type GeoPoint struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Name string  `json:"name"`
}

// Transport mode constants
const (
	ModeFlightShort = "flight_short"
	ModeFlightLong  = "flight_long"
	ModeTrain       = "train"
	ModeBus         = "bus"
	ModeCar         = "car"
	ModeFerry       = "ferry"
)

// IsZero reports whether the point carries no coordinates
func (p GeoPoint) IsZero() bool {
	return p.Lat == 0 && p.Lng == 0
}

// Coordinate aliases in precedence order. The first non-zero value wins.
var (
	latitudeKeys  = []string{"lat", "latitude"}
	longitudeKeys = []string{"lng", "lon", "long", "longitude"}
)

// UnmarshalJSON accepts lat/latitude and lng/lon/longitude in any letter case.
// Values of the wrong shape are ignored rather than rejected.
func (p *GeoPoint) UnmarshalJSON(data []byte) error {
	*p = GeoPoint{}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// null, arrays and scalars degrade to the zero point
		return nil
	}

	byName := make(map[string]json.RawMessage, len(raw))
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	// Exact lower-case keys sort after their mixed-case variants and win
	sort.Strings(keys)
	for _, key := range keys {
		byName[strings.ToLower(key)] = raw[key]
	}

	p.Lat = firstNonZero(byName, latitudeKeys)
	p.Lng = firstNonZero(byName, longitudeKeys)
	if value, ok := byName["name"]; ok {
		var name string
		if json.Unmarshal(value, &name) == nil {
			p.Name = name
		}
	}

	return nil
}

func firstNonZero(byName map[string]json.RawMessage, keys []string) float64 {
	for _, key := range keys {
		if value, ok := byName[key]; ok {
			if f := looseFloat(value); f != 0 {
				return f
			}
		}
	}
	return 0
}

// UnmarshalJSON tolerates wrong-shaped fields, leaving them at the zero value
func (it *Itinerary) UnmarshalJSON(data []byte) error {
	type alias Itinerary
	var v alias
	decodeLenient(data, &v)
	*it = Itinerary(v)
	return nil
}

// UnmarshalJSON tolerates wrong-shaped fields. A null or empty hotel object
// counts as no hotel.
func (d *Day) UnmarshalJSON(data []byte) error {
	type alias Day
	var v alias
	decodeLenient(data, &v)

	var raw map[string]json.RawMessage
	if json.Unmarshal(data, &raw) == nil {
		// Same key the decoder kept: the last case variant in sorted order
		var hotelKey string
		for key := range raw {
			if strings.EqualFold(key, "hotel") && key > hotelKey {
				hotelKey = key
			}
		}
		if hotelKey != "" && isEmptyObject(raw[hotelKey]) {
			v.Hotel = nil
		}
	}

	*d = Day(v)
	return nil
}

// UnmarshalJSON accepts numeric strings and leaves wrong-shaped fields unset,
// so a bad distance_km falls back to the coordinates
func (s *TransportSegment) UnmarshalJSON(data []byte) error {
	type alias TransportSegment
	var v alias
	decodeLenient(data, &v)
	*s = TransportSegment(v)
	return nil
}

// UnmarshalJSON tolerates wrong-shaped fields, leaving them at the zero value
func (a *Activity) UnmarshalJSON(data []byte) error {
	type alias Activity
	var v alias
	decodeLenient(data, &v)
	*a = Activity(v)
	return nil
}

// UnmarshalJSON tolerates wrong-shaped fields, leaving them at the zero value
func (h *Hotel) UnmarshalJSON(data []byte) error {
	type alias Hotel
	var v alias
	decodeLenient(data, &v)
	*h = Hotel(v)
	return nil
}

// Clone returns a deep copy that shares no slices or pointers with it
func (it Itinerary) Clone() Itinerary {
	out := it
	if it.Days == nil {
		return out
	}

	out.Days = make([]Day, len(it.Days))
	for i, day := range it.Days {
		copied := day
		if day.Transport != nil {
			copied.Transport = make([]TransportSegment, len(day.Transport))
			for j, seg := range day.Transport {
				if seg.DistanceKm != nil {
					d := *seg.DistanceKm
					seg.DistanceKm = &d
				}
				copied.Transport[j] = seg
			}
		}
		if day.Activities != nil {
			copied.Activities = make([]Activity, len(day.Activities))
			copy(copied.Activities, day.Activities)
		}
		if day.Hotel != nil {
			h := *day.Hotel
			copied.Hotel = &h
		}
		out.Days[i] = copied
	}

	return out
}
