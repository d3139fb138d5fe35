package classifier

import (
	"errors"
	"fmt"
)

// Node is one node of a binary regression tree. A node with no children is a
// leaf and contributes Leaf to the margin. Rows go left when
// row[Feature] < Threshold.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Leaf      float64 `json:"leaf"`
}

// IsLeaf reports whether the node has no children
func (n Node) IsLeaf() bool {
	return n.Left == 0 && n.Right == 0
}

// Tree is a flat node list rooted at index 0
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// TreeEnsemble is a boosted ensemble of regression trees with a logistic link
type TreeEnsemble struct {
	Trees       []Tree
	BaseScore   float64
	NumFeatures int
	importances []float64
}

// NewTreeEnsemble validates the trees. When importances is empty they are
// derived from split counts.
func NewTreeEnsemble(trees []Tree, baseScore float64, numFeatures int, importances []float64) (*TreeEnsemble, error) {
	if numFeatures <= 0 {
		return nil, errors.New("tree ensemble needs at least one feature")
	}
	for ti, t := range trees {
		if len(t.Nodes) == 0 {
			return nil, fmt.Errorf("tree %d has no nodes", ti)
		}
		for ni, n := range t.Nodes {
			if n.IsLeaf() {
				continue
			}
			// children must come after their parent so traversal always ends
			if n.Left <= ni || n.Right <= ni || n.Left >= len(t.Nodes) || n.Right >= len(t.Nodes) {
				return nil, fmt.Errorf("tree %d node %d has invalid children %d/%d", ti, ni, n.Left, n.Right)
			}
			if n.Feature < 0 || n.Feature >= numFeatures {
				return nil, fmt.Errorf("tree %d node %d splits on feature %d of %d", ti, ni, n.Feature, numFeatures)
			}
		}
	}

	e := &TreeEnsemble{Trees: trees, BaseScore: baseScore, NumFeatures: numFeatures}
	switch {
	case len(importances) == 0:
		e.importances = splitCounts(trees, numFeatures)
	case len(importances) != numFeatures:
		return nil, fmt.Errorf("%w: %d importances for %d features", ErrDimension, len(importances), numFeatures)
	default:
		e.importances = append([]float64(nil), importances...)
	}
	return e, nil
}

// DecisionFunction returns the summed leaf margin per row
func (e *TreeEnsemble) DecisionFunction(rows [][]float64) ([]float64, error) {
	if err := checkWidth(rows, e.NumFeatures); err != nil {
		return nil, err
	}
	out := make([]float64, len(rows))
	for i, row := range rows {
		m := e.BaseScore
		for _, t := range e.Trees {
			m += t.leaf(row)
		}
		out[i] = m
	}
	return out, nil
}

// PredictProba applies the logistic link to the margin
func (e *TreeEnsemble) PredictProba(rows [][]float64) ([]float64, error) {
	m, err := e.DecisionFunction(rows)
	if err != nil {
		return nil, err
	}
	for i := range m {
		m[i] = sigmoid(m[i])
	}
	return m, nil
}

// FeatureImportances returns a copy of the global importances
func (e *TreeEnsemble) FeatureImportances() []float64 {
	return append([]float64(nil), e.importances...)
}

func (t Tree) leaf(row []float64) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.IsLeaf() {
			return n.Leaf
		}
		if row[n.Feature] < n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

func splitCounts(trees []Tree, numFeatures int) []float64 {
	counts := make([]float64, numFeatures)
	total := 0.0
	for _, t := range trees {
		for _, n := range t.Nodes {
			if !n.IsLeaf() {
				counts[n.Feature]++
				total++
			}
		}
	}
	if total > 0 {
		for i := range counts {
			counts[i] /= total
		}
	}
	return counts
}
