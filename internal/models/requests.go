package models

// AlternativesRequest is the body of POST /carbon/alternatives
type AlternativesRequest struct {
	Itinerary       Itinerary         `json:"itinerary"`
	UserPreferences TravelPreferences `json:"user_preferences"`
}

// PredictRequest is the body of POST /regret/predict
type PredictRequest struct {
	UserPreferences UserPreferences `json:"user_preferences"`
	ItineraryItem   ItineraryItem   `json:"itinerary_item"`
	Context         *Context        `json:"context"`
}

// PredictResponse wraps a regret prediction
type PredictResponse struct {
	Prediction RegretPrediction `json:"prediction"`
}

// ScoreRequest is the body of POST /preference/score
type ScoreRequest struct {
	Travel    TravelPreferences `json:"travel"`
	Interests []string          `json:"interests"`
	Activity  ActivityInput     `json:"activity"`
}

// BatchScoreRequest is the body of POST /preference/batch_score
type BatchScoreRequest struct {
	Travel     TravelPreferences `json:"travel"`
	Interests  []string          `json:"interests"`
	Activities []ActivityInput   `json:"activities"`
}

// BatchScoreResponse wraps the per-activity scores in request order
type BatchScoreResponse struct {
	Scores []ScoreResult `json:"scores"`
}

// NewPredictRequest returns a request whose nested sections start at their defaults
func NewPredictRequest() PredictRequest {
	return PredictRequest{
		UserPreferences: DefaultUserPreferences(),
		ItineraryItem:   DefaultItineraryItem(),
	}
}

// NewScoreRequest returns a request whose travel sliders start at their defaults
func NewScoreRequest() ScoreRequest {
	return ScoreRequest{Travel: DefaultTravelPreferences()}
}

// NewBatchScoreRequest returns a request whose travel sliders start at their defaults
func NewBatchScoreRequest() BatchScoreRequest {
	return BatchScoreRequest{Travel: DefaultTravelPreferences()}
}

// UnmarshalJSON keeps the preset defaults for any section of the wrong shape
func (r *AlternativesRequest) UnmarshalJSON(data []byte) error {
	type alias AlternativesRequest
	v := alias(*r)
	decodeLenient(data, &v)
	*r = AlternativesRequest(v)
	return nil
}

// UnmarshalJSON keeps the preset defaults for any section of the wrong shape
func (r *PredictRequest) UnmarshalJSON(data []byte) error {
	type alias PredictRequest
	v := alias(*r)
	decodeLenient(data, &v)
	*r = PredictRequest(v)
	return nil
}

// UnmarshalJSON keeps the preset defaults for any section of the wrong shape
func (r *ScoreRequest) UnmarshalJSON(data []byte) error {
	type alias ScoreRequest
	v := alias(*r)
	decodeLenient(data, &v)
	*r = ScoreRequest(v)
	return nil
}

// UnmarshalJSON keeps the preset defaults for any section of the wrong shape
func (r *BatchScoreRequest) UnmarshalJSON(data []byte) error {
	type alias BatchScoreRequest
	v := alias(*r)
	decodeLenient(data, &v)
	*r = BatchScoreRequest(v)
	return nil
}
