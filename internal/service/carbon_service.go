package service

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/plantroute/plantroute-backend-go/internal/carbon"
	"github.com/plantroute/plantroute-backend-go/internal/models"
	"github.com/plantroute/plantroute-backend-go/internal/repository"
)

// ErrInvalidEmission is returned when a recorded footprint is missing or negative
var ErrInvalidEmission = errors.New("emissionKg must be a non-negative number")

// CarbonService handles itinerary footprints and recorded trips
type CarbonService struct {
	repo *repository.CarbonRepository
}

// NewCarbonService creates a new carbon service
func NewCarbonService(repo *repository.CarbonRepository) *CarbonService {
	return &CarbonService{repo: repo}
}

// Predict estimates the footprint of an itinerary
func (s *CarbonService) Predict(it models.Itinerary) models.CarbonResult {
	return carbon.ComputeItineraryEmissions(it)
}

// Alternatives proposes a lower-carbon version of an itinerary
func (s *CarbonService) Alternatives(req models.AlternativesRequest) models.AlternativeResult {
	return carbon.OptimizeAlternatives(req.Itinerary, req.UserPreferences)
}

// Record stores a trip footprint for the leaderboard
func (s *CarbonService) Record(userID, userName string, req models.RecordCarbonRequest) (*models.TripCarbon, error) {
	if req.EmissionKg == nil || *req.EmissionKg < 0 || math.IsNaN(*req.EmissionKg) || math.IsInf(*req.EmissionKg, 0) {
		return nil, ErrInvalidEmission
	}

	record := &models.TripCarbon{
		UserID:      userID,
		UserName:    userName,
		ItineraryID: req.ItineraryID,
		EmissionKg:  math.Round(*req.EmissionKg*1000) / 1000,
	}
	if err := s.repo.Create(record); err != nil {
		return nil, fmt.Errorf("failed to record trip carbon: %w", err)
	}

	log.Printf("Recorded trip carbon %s for user %s: %.3f kg", record.ID, userID, record.EmissionKg)
	return record, nil
}

// History lists a user's recorded trips, newest first
func (s *CarbonService) History(userID string) ([]models.TripCarbon, error) {
	return s.repo.GetByUser(userID)
}

// LeaderboardService ranks users by their average trip footprint
type LeaderboardService struct {
	repo *repository.CarbonRepository
}

// NewLeaderboardService creates a new leaderboard service
func NewLeaderboardService(repo *repository.CarbonRepository) *LeaderboardService {
	return &LeaderboardService{repo: repo}
}

// GetLeaderboard returns users ordered by average kg CO2 per trip, lowest first
func (s *LeaderboardService) GetLeaderboard(filter models.LeaderboardFilter) ([]models.LeaderboardEntry, error) {
	return s.repo.Leaderboard(filter)
}
