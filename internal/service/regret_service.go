package service

import (
	"fmt"

	"github.com/plantroute/plantroute-backend-go/internal/classifier"
	"github.com/plantroute/plantroute-backend-go/internal/features"
	"github.com/plantroute/plantroute-backend-go/internal/models"
	"github.com/plantroute/plantroute-backend-go/internal/predict"
)

// Regret engine names
const (
	EngineRegretProtection = "regret_protection"
	EnginePreference       = "preference"
)

// RegretService predicts regret for itinerary items. Both engines read the
// same feature columns but are trained separately.
type RegretService struct {
	registry   *classifier.Registry
	predictors map[string]*predict.RegretPredictor
}

// NewRegretService creates a regret service. modelPaths maps engine names to
// artifact files; engines without a path must already be in the registry.
func NewRegretService(registry *classifier.Registry, modelPaths map[string]string) *RegretService {
	s := &RegretService{
		registry: registry,
		predictors: map[string]*predict.RegretPredictor{
			EngineRegretProtection: predict.NewRegretPredictor(features.RegretProtection()),
			EnginePreference:       predict.NewRegretPredictor(features.RegretProtection()),
		},
	}
	for engine, path := range modelPaths {
		if p, ok := s.predictors[engine]; ok && path != "" {
			registry.RegisterFile(engine, path, p.FeatureNames())
		}
	}
	return s
}

// Predict runs one engine; an empty name selects regret_protection
func (s *RegretService) Predict(engine string, req models.PredictRequest) (models.RegretPrediction, error) {
	if engine == "" {
		engine = EngineRegretProtection
	}
	p, ok := s.predictors[engine]
	if !ok {
		return models.RegretPrediction{}, fmt.Errorf("%w: %s", classifier.ErrUnknownEngine, engine)
	}

	clf, err := s.registry.Get(engine)
	if err != nil {
		return models.RegretPrediction{}, err
	}

	return p.Predict(clf, req.UserPreferences, req.ItineraryItem, req.Context)
}

// Features exposes the vector an engine would see, for debugging clients
func (s *RegretService) Features(engine string, req models.PredictRequest) (features.Vector, error) {
	if engine == "" {
		engine = EngineRegretProtection
	}
	p, ok := s.predictors[engine]
	if !ok {
		return features.Vector{}, fmt.Errorf("%w: %s", classifier.ErrUnknownEngine, engine)
	}
	return p.Features(req.UserPreferences, req.ItineraryItem, req.Context), nil
}
