package classifier

// LogisticModel is a fitted logistic regression
type LogisticModel struct {
	Coef      []float64
	Intercept float64
}

// NewLogisticModel copies the coefficients so callers cannot mutate a shared model
func NewLogisticModel(coef []float64, intercept float64) *LogisticModel {
	c := make([]float64, len(coef))
	copy(c, coef)
	return &LogisticModel{Coef: c, Intercept: intercept}
}

// DecisionFunction returns w·x + b per row
func (m *LogisticModel) DecisionFunction(rows [][]float64) ([]float64, error) {
	if err := checkWidth(rows, len(m.Coef)); err != nil {
		return nil, err
	}
	out := make([]float64, len(rows))
	for i, row := range rows {
		z := m.Intercept
		for j, x := range row {
			z += m.Coef[j] * x
		}
		out[i] = z
	}
	return out, nil
}

// PredictProba returns sigmoid(w·x + b) per row
func (m *LogisticModel) PredictProba(rows [][]float64) ([]float64, error) {
	z, err := m.DecisionFunction(rows)
	if err != nil {
		return nil, err
	}
	for i := range z {
		z[i] = sigmoid(z[i])
	}
	return z, nil
}

// Coefficients returns a copy of the weights in column order
func (m *LogisticModel) Coefficients() []float64 {
	c := make([]float64, len(m.Coef))
	copy(c, m.Coef)
	return c
}
