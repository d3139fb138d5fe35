package classifier

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrModelNotFound is returned when a model artifact cannot be located
	ErrModelNotFound = errors.New("model artifact not found")
	// ErrFeatureMismatch is returned when an artifact was trained on another column order
	ErrFeatureMismatch = errors.New("model feature names do not match builder")
	// ErrDimension is returned when a row has the wrong number of columns
	ErrDimension = errors.New("feature row width does not match model")
	// ErrUnknownEngine is returned by the registry for an engine nobody registered
	ErrUnknownEngine = errors.New("unknown engine")
)

// Estimator is the inference capability every model exposes. It must not
// mutate itself so one instance can serve concurrent requests.
type Estimator interface {
	// PredictProba returns the positive-class probability of each row
	PredictProba(rows [][]float64) ([]float64, error)
}

// CoefficientExposer is implemented by linear estimators
type CoefficientExposer interface {
	Coefficients() []float64
}

// ImportanceExposer is implemented by tree ensembles
type ImportanceExposer interface {
	FeatureImportances() []float64
}

// MarginEstimator exposes the raw log-odds before the sigmoid
type MarginEstimator interface {
	DecisionFunction(rows [][]float64) ([]float64, error)
}

// Classifier is either Direct or Calibrated
type Classifier interface {
	Estimator
	// BaseEstimator returns the fitted estimator underneath any calibration layer
	BaseEstimator() Estimator
}

// Direct serves an estimator as is
type Direct struct {
	Estimator Estimator
}

// NewDirect wraps an estimator
func NewDirect(e Estimator) *Direct {
	return &Direct{Estimator: e}
}

// PredictProba delegates to the estimator
func (d *Direct) PredictProba(rows [][]float64) ([]float64, error) {
	return d.Estimator.PredictProba(rows)
}

// BaseEstimator returns the wrapped estimator
func (d *Direct) BaseEstimator() Estimator {
	return d.Estimator
}

// Calibrated applies Platt scaling over the wrapped classifier's log-odds:
// p = sigmoid(Slope*margin + Intercept)
type Calibrated struct {
	Wrapped   Classifier
	Slope     float64
	Intercept float64
}

// NewCalibrated wraps a classifier with a sigmoid calibration
func NewCalibrated(wrapped Classifier, slope, intercept float64) *Calibrated {
	return &Calibrated{Wrapped: wrapped, Slope: slope, Intercept: intercept}
}

// PredictProba returns calibrated probabilities
func (c *Calibrated) PredictProba(rows [][]float64) ([]float64, error) {
	margins, err := c.margins(rows)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(margins))
	for i, m := range margins {
		out[i] = sigmoid(c.Slope*m + c.Intercept)
	}
	return out, nil
}

// BaseEstimator unwraps one calibration level
func (c *Calibrated) BaseEstimator() Estimator {
	return c.Wrapped.BaseEstimator()
}

func (c *Calibrated) margins(rows [][]float64) ([]float64, error) {
	if d, ok := c.Wrapped.(*Direct); ok {
		if m, ok := d.Estimator.(MarginEstimator); ok {
			return m.DecisionFunction(rows)
		}
	}

	probs, err := c.Wrapped.PredictProba(rows)
	if err != nil {
		return nil, fmt.Errorf("calibrated base predict: %w", err)
	}
	out := make([]float64, len(probs))
	for i, p := range probs {
		out[i] = logit(p)
	}
	return out, nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

const probEpsilon = 1e-12

func logit(p float64) float64 {
	p = math.Max(probEpsilon, math.Min(1-probEpsilon, p))
	return math.Log(p / (1 - p))
}

func checkWidth(rows [][]float64, width int) error {
	for i, row := range rows {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d columns, want %d", ErrDimension, i, len(row), width)
		}
	}
	return nil
}
