package models

// RegretReason is one human-readable justification for a regret prediction
type RegretReason struct {
	Code     string  `json:"code"`
	Message  string  `json:"message"`
	Strength float64 `json:"strength"` // 0~1
}

// RegretPrediction is the regret engines' response for one item
type RegretPrediction struct {
	RegretProbability float64        `json:"regret_probability"` // 0~1, 4 decimals
	RiskBucket        string         `json:"risk_bucket"`        // low, medium, high
	Reasons           []RegretReason `json:"reasons"`
}

// Risk bucket constants
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// ScoreResult is the fit engines' response for one activity
type ScoreResult struct {
	ActivityID        string   `json:"activity_id,omitempty"`
	FitScore          float64  `json:"fit_score"`          // 1 - regret_probability
	RegretProbability float64  `json:"regret_probability"` // 0~1, 4 decimals
	Explanation       []string `json:"explanation,omitempty"`
}
