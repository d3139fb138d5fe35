package explain

import (
	"math"
	"strings"

	"github.com/plantroute/plantroute-backend-go/internal/classifier"
	"github.com/plantroute/plantroute-backend-go/internal/features"
)

// MaxExplanations caps the lines attached to a fit score
const MaxExplanations = 3

// Importance ranks features by importance × (1 + |value|), so a globally
// important feature counts more when this item's value is extreme. Lines are
// the feature names with underscores turned into spaces. It returns an empty
// list when the base estimator exposes no importances.
func Importance(clf classifier.Classifier, v features.Vector, order []string, limit int) []string {
	lines := []string{}
	if clf == nil {
		return lines
	}
	tree, ok := clf.BaseEstimator().(classifier.ImportanceExposer)
	if !ok {
		return lines
	}
	imp := tree.FeatureImportances()

	var contribs []contribution
	for i, name := range order {
		if i >= len(imp) || features.IsHidden(name) {
			continue
		}
		c := imp[i] * (1 + math.Abs(v.Get(name)))
		if c > 0 {
			contribs = append(contribs, contribution{name, c})
		}
	}
	sortContributions(contribs)

	for _, c := range contribs {
		if len(lines) >= limit {
			break
		}
		lines = append(lines, Humanize(c.name))
	}
	return lines
}

// Humanize turns a feature name into a short readable phrase
func Humanize(name string) string {
	return strings.TrimSpace(strings.ReplaceAll(name, "_", " "))
}
