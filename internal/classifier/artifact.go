package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Model kinds understood by the loader
const (
	KindLogistic     = "logistic"
	KindTreeEnsemble = "tree_ensemble"
)

// Calibration holds Platt scaling parameters
type Calibration struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// Artifact is the on-disk JSON form of a trained model
type Artifact struct {
	Engine       string       `json:"engine"`
	Kind         string       `json:"kind"`
	FeatureNames []string     `json:"feature_names"`
	Coefficients []float64    `json:"coefficients,omitempty"`
	Intercept    float64      `json:"intercept,omitempty"`
	Trees        []Tree       `json:"trees,omitempty"`
	BaseScore    float64      `json:"base_score,omitempty"`
	Importances  []float64    `json:"importances,omitempty"`
	Calibration  *Calibration `json:"calibration,omitempty"`
}

// LoadFile reads an artifact and builds its classifier. featureNames is the
// column order of the builder that will feed it.
func LoadFile(path string, featureNames []string) (Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, path)
		}
		return nil, fmt.Errorf("failed to read model %s: %w", path, err)
	}
	clf, err := Decode(data, featureNames)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}
	return clf, nil
}

// Decode parses artifact JSON and builds its classifier
func Decode(data []byte, featureNames []string) (Classifier, error) {
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to decode model artifact: %w", err)
	}
	return a.Classifier(featureNames)
}

// Classifier validates the artifact against the expected column order and
// builds the estimator, wrapped in Calibrated when a calibration block exists
func (a Artifact) Classifier(featureNames []string) (Classifier, error) {
	if err := matchNames(a.FeatureNames, featureNames); err != nil {
		return nil, err
	}

	var est Estimator
	switch a.Kind {
	case KindLogistic:
		if len(a.Coefficients) != len(featureNames) {
			return nil, fmt.Errorf("%w: %d coefficients for %d features", ErrDimension, len(a.Coefficients), len(featureNames))
		}
		est = NewLogisticModel(a.Coefficients, a.Intercept)
	case KindTreeEnsemble:
		e, err := NewTreeEnsemble(a.Trees, a.BaseScore, len(featureNames), a.Importances)
		if err != nil {
			return nil, err
		}
		est = e
	default:
		return nil, fmt.Errorf("unsupported model kind %q", a.Kind)
	}

	var clf Classifier = NewDirect(est)
	if a.Calibration != nil {
		clf = NewCalibrated(clf, a.Calibration.Slope, a.Calibration.Intercept)
	}
	return clf, nil
}

func matchNames(got, want []string) error {
	if len(got) != len(want) {
		return fmt.Errorf("%w: artifact has %d columns, builder has %d", ErrFeatureMismatch, len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			return fmt.Errorf("%w: column %d is %q, builder expects %q", ErrFeatureMismatch, i, got[i], want[i])
		}
	}
	return nil
}
