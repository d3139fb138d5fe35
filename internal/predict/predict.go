// Package predict turns preferences and items into regret predictions and fit
// scores using an already-loaded classifier
package predict

import (
	"fmt"
	"math"

	"github.com/plantroute/plantroute-backend-go/internal/classifier"
	"github.com/plantroute/plantroute-backend-go/internal/explain"
	"github.com/plantroute/plantroute-backend-go/internal/features"
	"github.com/plantroute/plantroute-backend-go/internal/models"
)

// Risk bucket upper bounds, inclusive
const (
	LowMax    = 0.33
	MediumMax = 0.66
)

// Bucket classifies an already-rounded probability
func Bucket(p float64) string {
	switch {
	case p <= LowMax:
		return models.RiskLow
	case p <= MediumMax:
		return models.RiskMedium
	default:
		return models.RiskHigh
	}
}

// Probability clamps a classifier output into [0,1] and rounds it to 4 decimals
func Probability(p float64) float64 {
	if math.IsNaN(p) {
		return 0
	}
	return math.Round(math.Max(0, math.Min(1, p))*1e4) / 1e4
}

// FitScore is the complement of a rounded regret probability
func FitScore(p float64) float64 {
	return math.Round((1-p)*1e4) / 1e4
}

func predictRows(clf classifier.Classifier, rows [][]float64) ([]float64, error) {
	if clf == nil {
		return nil, fmt.Errorf("%w: no classifier", classifier.ErrModelNotFound)
	}
	probs, err := clf.PredictProba(rows)
	if err != nil {
		return nil, fmt.Errorf("classifier inference failed: %w", err)
	}
	if len(probs) != len(rows) {
		return nil, fmt.Errorf("%w: %d probabilities for %d rows", classifier.ErrDimension, len(probs), len(rows))
	}
	return probs, nil
}

// RegretPredictor serves the regret engines
type RegretPredictor struct {
	builder    *features.Builder
	reasons    explain.ReasonTable
	maxReasons int
}

// NewRegretPredictor creates a predictor over a regret feature configuration
func NewRegretPredictor(cfg features.Config) *RegretPredictor {
	return &RegretPredictor{
		builder:    features.NewBuilder(cfg),
		reasons:    explain.RegretReasons,
		maxReasons: explain.MaxReasons,
	}
}

// FeatureNames returns the column order the classifier must be trained on
func (p *RegretPredictor) FeatureNames() []string {
	return p.builder.FeatureNames()
}

// Features builds the vector for one item
func (p *RegretPredictor) Features(prefs models.UserPreferences, item models.ItineraryItem, ctx *models.Context) features.Vector {
	return p.builder.Build(features.FromItineraryItem(prefs, item, ctx))
}

// Predict estimates regret for one itinerary item
func (p *RegretPredictor) Predict(clf classifier.Classifier, prefs models.UserPreferences, item models.ItineraryItem, ctx *models.Context) (models.RegretPrediction, error) {
	v := p.Features(prefs, item, ctx)
	order := p.builder.FeatureNames()

	probs, err := predictRows(clf, [][]float64{v.Row(order)})
	if err != nil {
		return models.RegretPrediction{}, err
	}

	prob := Probability(probs[0])
	return models.RegretPrediction{
		RegretProbability: prob,
		RiskBucket:        Bucket(prob),
		Reasons:           explain.Linear(clf, v, order, p.reasons, p.maxReasons),
	}, nil
}

// FitScorer serves the preference-fit engines
type FitScorer struct {
	builder         *features.Builder
	maxExplanations int
}

// NewFitScorer creates a scorer over a fit feature configuration
func NewFitScorer(cfg features.Config) *FitScorer {
	return &FitScorer{
		builder:         features.NewBuilder(cfg),
		maxExplanations: explain.MaxExplanations,
	}
}

// Name returns the feature configuration name
func (s *FitScorer) Name() string {
	return s.builder.Name()
}

// FeatureNames returns the column order the classifier must be trained on
func (s *FitScorer) FeatureNames() []string {
	return s.builder.FeatureNames()
}

// Features builds the vector for one activity
func (s *FitScorer) Features(travel models.TravelPreferences, interests []string, activity models.ActivityInput) features.Vector {
	return s.builder.Build(features.FromActivity(travel, interests, activity))
}

// Score rates one activity
func (s *FitScorer) Score(clf classifier.Classifier, travel models.TravelPreferences, interests []string, activity models.ActivityInput) (models.ScoreResult, error) {
	results, err := s.ScoreBatch(clf, travel, interests, []models.ActivityInput{activity})
	if err != nil {
		return models.ScoreResult{}, err
	}
	return results[0], nil
}

// ScoreBatch rates every activity with a single inference call. Results keep
// the input order. An empty list never reaches the classifier.
func (s *FitScorer) ScoreBatch(clf classifier.Classifier, travel models.TravelPreferences, interests []string, activities []models.ActivityInput) ([]models.ScoreResult, error) {
	results := make([]models.ScoreResult, 0, len(activities))
	if len(activities) == 0 {
		return results, nil
	}

	order := s.builder.FeatureNames()
	vectors := make([]features.Vector, len(activities))
	rows := make([][]float64, len(activities))
	for i, a := range activities {
		vectors[i] = s.Features(travel, interests, a)
		rows[i] = vectors[i].Row(order)
	}

	probs, err := predictRows(clf, rows)
	if err != nil {
		return nil, err
	}

	for i, a := range activities {
		prob := Probability(probs[i])
		results = append(results, models.ScoreResult{
			ActivityID:        a.ID,
			FitScore:          FitScore(prob),
			RegretProbability: prob,
			Explanation:       explain.Importance(clf, vectors[i], order, s.maxExplanations),
		})
	}
	return results, nil
}
