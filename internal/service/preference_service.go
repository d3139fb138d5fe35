package service

import (
	"github.com/plantroute/plantroute-backend-go/internal/classifier"
	"github.com/plantroute/plantroute-backend-go/internal/features"
	"github.com/plantroute/plantroute-backend-go/internal/models"
	"github.com/plantroute/plantroute-backend-go/internal/predict"
)

// Fit variants
const (
	FitVariantEco  = "eco"
	FitVariantBase = "base"
)

// PreferenceService scores how well activities fit a traveller
type PreferenceService struct {
	registry *classifier.Registry
	scorer   *predict.FitScorer
}

// NewPreferenceService creates a fit service for the given variant ("base" or
// anything else for eco). When modelPath is empty the engine must already be
// registered under Engine().
func NewPreferenceService(registry *classifier.Registry, variant, modelPath string) *PreferenceService {
	cfg := features.PreferenceFitEco()
	if variant == FitVariantBase {
		cfg = features.PreferenceFit()
	}

	s := &PreferenceService{
		registry: registry,
		scorer:   predict.NewFitScorer(cfg),
	}
	if modelPath != "" {
		registry.RegisterFile(s.Engine(), modelPath, s.scorer.FeatureNames())
	}
	return s
}

// Engine is the registry key of the active fit variant
func (s *PreferenceService) Engine() string {
	return s.scorer.Name()
}

// Score rates one activity
func (s *PreferenceService) Score(req models.ScoreRequest) (models.ScoreResult, error) {
	clf, err := s.registry.Get(s.Engine())
	if err != nil {
		return models.ScoreResult{}, err
	}
	return s.scorer.Score(clf, req.Travel, req.Interests, req.Activity)
}

// BatchScore rates many activities with one inference call
func (s *PreferenceService) BatchScore(req models.BatchScoreRequest) (models.BatchScoreResponse, error) {
	if len(req.Activities) == 0 {
		return models.BatchScoreResponse{Scores: []models.ScoreResult{}}, nil
	}

	clf, err := s.registry.Get(s.Engine())
	if err != nil {
		return models.BatchScoreResponse{}, err
	}

	scores, err := s.scorer.ScoreBatch(clf, req.Travel, req.Interests, req.Activities)
	if err != nil {
		return models.BatchScoreResponse{}, err
	}
	return models.BatchScoreResponse{Scores: scores}, nil
}

// Features exposes the vector the fit engine would see for one activity
func (s *PreferenceService) Features(req models.ScoreRequest) features.Vector {
	return s.scorer.Features(req.Travel, req.Interests, req.Activity)
}
