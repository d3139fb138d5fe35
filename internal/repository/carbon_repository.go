package repository

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/plantroute/plantroute-backend-go/internal/models"
)

// AnonymousName is shown on the leaderboard for users without a display name
const AnonymousName = "Anonymous"

// CarbonRepository handles database operations for recorded trip footprints
type CarbonRepository struct {
	db *sql.DB
}

// NewCarbonRepository creates a new carbon repository
func NewCarbonRepository(db *sql.DB) *CarbonRepository {
	return &CarbonRepository{db: db}
}

// Create stores a trip footprint, assigning its ID and timestamp
func (r *CarbonRepository) Create(record *models.TripCarbon) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO trip_carbon (id, user_id, user_name, itinerary_id, emission_kg, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.Exec(query,
		record.ID, record.UserID, record.UserName, record.ItineraryID,
		record.EmissionKg, record.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip carbon: %w", err)
	}

	return nil
}

// GetByUser returns a user's recorded trips, newest first
func (r *CarbonRepository) GetByUser(userID string) ([]models.TripCarbon, error) {
	query := `SELECT id, user_id, user_name, itinerary_id, emission_kg, created_at
		FROM trip_carbon WHERE user_id = ? ORDER BY created_at DESC, id`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trip carbon: %w", err)
	}
	defer rows.Close()

	records := []models.TripCarbon{}
	for rows.Next() {
		var t models.TripCarbon
		var itineraryID sql.NullString
		var createdAt int64
		if err := rows.Scan(&t.ID, &t.UserID, &t.UserName, &itineraryID, &t.EmissionKg, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan trip carbon: %w", err)
		}
		if itineraryID.Valid {
			t.ItineraryID = &itineraryID.String
		}
		t.CreatedAt = time.Unix(createdAt, 0).UTC()
		records = append(records, t)
	}

	return records, rows.Err()
}

// Leaderboard ranks users by average emissions per trip, lowest first
func (r *CarbonRepository) Leaderboard(filter models.LeaderboardFilter) ([]models.LeaderboardEntry, error) {
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}

	query := `SELECT user_id, MAX(user_name), AVG(emission_kg) AS avg_kg, COUNT(*)
		FROM trip_carbon
		GROUP BY user_id
		ORDER BY avg_kg ASC, user_id ASC
		LIMIT ?`

	rows, err := r.db.Query(query, filter.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	entries := []models.LeaderboardEntry{}
	for rows.Next() {
		var e models.LeaderboardEntry
		var avg float64
		if err := rows.Scan(&e.UserID, &e.Name, &avg, &e.TripCount); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		e.Rank = len(entries) + 1
		e.AvgEmissionKg = math.Round(avg*10) / 10
		if e.Name == "" {
			e.Name = AnonymousName
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
