package models

import "time"

// TripCarbon is one recorded trip footprint, used for the leaderboard
type TripCarbon struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	UserName    string    `json:"user_name,omitempty" db:"user_name"`
	ItineraryID *string   `json:"itinerary_id,omitempty" db:"itinerary_id"`
	EmissionKg  float64   `json:"emission_kg" db:"emission_kg"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// LeaderboardEntry ranks a user by average emissions per trip (lower is better)
type LeaderboardEntry struct {
	Rank          int     `json:"rank"`
	UserID        string  `json:"userId"`
	Name          string  `json:"name"`
	AvgEmissionKg float64 `json:"avgEmissionKg"` // 1 decimal
	TripCount     int     `json:"tripCount"`
}

// RecordCarbonRequest is the body of POST /carbon/record
type RecordCarbonRequest struct {
	EmissionKg  *float64 `json:"emissionKg"`
	ItineraryID *string  `json:"itineraryId"`
}

// LeaderboardFilter limits the leaderboard query
type LeaderboardFilter struct {
	Limit int `form:"limit"`
}
