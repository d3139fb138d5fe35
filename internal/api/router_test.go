package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/plantroute/plantroute-backend-go/internal/classifier"
	"github.com/plantroute/plantroute-backend-go/internal/config"
	"github.com/plantroute/plantroute-backend-go/internal/database"
	"github.com/plantroute/plantroute-backend-go/internal/features"
	"github.com/plantroute/plantroute-backend-go/internal/middleware"
	"github.com/plantroute/plantroute-backend-go/internal/models"
)

const testSecret = "router-test-secret"

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := database.Open(filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := database.NewMigrationManager(conn, database.Migrations).RunMigrations(); err != nil {
		t.Fatal(err)
	}

	registry := classifier.NewRegistry()

	regretNames := features.NewBuilder(features.RegretProtection()).FeatureNames()
	coef := make([]float64, len(regretNames))
	for i, name := range regretNames {
		if name == features.CrowdMismatch {
			coef[i] = 6
		}
	}
	registry.Register("regret_protection", func() (classifier.Classifier, error) {
		return classifier.NewDirect(classifier.NewLogisticModel(coef, -2)), nil
	})
	registry.RegisterFile("preference", filepath.Join(t.TempDir(), "missing.json"), regretNames)

	fitNames := features.NewBuilder(features.PreferenceFitEco()).FeatureNames()
	imp := make([]float64, len(fitNames))
	imp[0] = 1
	ens, err := classifier.NewTreeEnsemble([]classifier.Tree{{Nodes: []classifier.Node{
		{Feature: 0, Threshold: 0.6, Left: 1, Right: 2},
		{Leaf: 1.5},
		{Leaf: -1.5},
	}}}, 0, len(fitNames), imp)
	if err != nil {
		t.Fatal(err)
	}
	registry.Register("preference_fit_eco", func() (classifier.Classifier, error) {
		return classifier.NewDirect(ens), nil
	})

	cfg := &config.Config{
		JWTSecret:          testSecret,
		FitVariant:         "eco",
		RateLimitPerMinute: 1000,
	}
	return SetupRouter(cfg, conn, registry)
}

func do(t *testing.T, r *gin.Engine, method, path, body, token string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Code != http.StatusNoContent {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s: invalid JSON %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w.Code, env
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

const parisRome = `{
  "days": [{
    "transport": [{
      "mode": "flight_short",
      "origin": {"latitude": "48.8566", "Longitude": 2.3522, "name": "Paris"},
      "destination": {"lat": 41.9028, "lng": 12.4964, "name": "Rome"}
    }],
    "activities": [{"name": "Colosseum", "category": "museum"}],
    "hotel": {"name": "Roma Inn"}
  }]
}`

func TestCarbonPredict(t *testing.T) {
	r := newTestRouter(t)
	code, env := do(t, r, http.MethodPost, "/api/v1/carbon/predict", parisRome, "")
	if code != http.StatusOK || env.Code != 0 {
		t.Fatalf("status %d envelope %+v", code, env)
	}

	var result models.CarbonResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatal(err)
	}
	if len(result.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(result.Items))
	}
	if flight := result.Items[0].EmissionKg; flight < 312 || flight > 318 {
		t.Errorf("flight emission %v outside 315±3", flight)
	}
}

func TestCarbonPredictRejectsInvalidJSON(t *testing.T) {
	r := newTestRouter(t)
	if code, _ := do(t, r, http.MethodPost, "/api/v1/carbon/predict", `{"days":`, ""); code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", code)
	}
}

func TestCarbonAlternatives(t *testing.T) {
	r := newTestRouter(t)
	body := `{"itinerary": {"days": [{"transport": [{"mode": "flight_short", "distance_km": 450}], "activities": [{"category": "ski"}]}]}}`
	code, env := do(t, r, http.MethodPost, "/api/v1/carbon/alternatives", body, "")
	if code != http.StatusOK {
		t.Fatalf("status %d", code)
	}

	var result models.AlternativeResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatal(err)
	}
	day := result.AlternativeItinerary.Days[0]
	if day.Transport[0].Mode != models.ModeTrain || day.Activities[0].Category != "outdoor" {
		t.Errorf("unexpected alternative %+v", day)
	}
	if result.SavingsKg <= 0 || result.RegretScore <= 0 || result.RegretScore > 1 {
		t.Errorf("unexpected savings %v / regret score %v", result.SavingsKg, result.RegretScore)
	}
}

func TestRegretPredict(t *testing.T) {
	r := newTestRouter(t)
	body := `{
	  "user_preferences": {"crowd_comfort": 0},
	  "itinerary_item": {"crowd_level": 1}
	}`
	code, env := do(t, r, http.MethodPost, "/api/v1/regret/predict", body, "")
	if code != http.StatusOK {
		t.Fatalf("status %d: %s", code, env.Message)
	}

	var resp models.PredictResponse
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatal(err)
	}
	p := resp.Prediction
	if p.RiskBucket != models.RiskHigh {
		t.Errorf("bucket = %s, want high (p=%v)", p.RiskBucket, p.RegretProbability)
	}
	if len(p.Reasons) == 0 || p.Reasons[0].Code != "too_crowded" {
		t.Errorf("unexpected reasons %+v", p.Reasons)
	}
}

func TestRegretPredictEngineErrors(t *testing.T) {
	r := newTestRouter(t)
	if code, _ := do(t, r, http.MethodPost, "/api/v1/regret/predict?engine=nope", `{}`, ""); code != http.StatusBadRequest {
		t.Errorf("unknown engine: status = %d, want 400", code)
	}
	if code, _ := do(t, r, http.MethodPost, "/api/v1/regret/predict?engine=preference", `{}`, ""); code != http.StatusServiceUnavailable {
		t.Errorf("missing model: status = %d, want 503", code)
	}
}

func TestRegretFeatures(t *testing.T) {
	r := newTestRouter(t)
	code, env := do(t, r, http.MethodPost, "/api/v1/regret/features", `{}`, "")
	if code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	var data struct {
		Features map[string]float64 `json:"features"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	if len(data.Features) != 16 {
		t.Errorf("expected 16 features, got %d", len(data.Features))
	}
}

func TestPreferenceScoring(t *testing.T) {
	r := newTestRouter(t)

	code, env := do(t, r, http.MethodPost, "/api/v1/preference/score",
		`{"interests": ["museum"], "activity": {"id": "louvre", "category": "museum"}}`, "")
	if code != http.StatusOK {
		t.Fatalf("status %d: %s", code, env.Message)
	}
	var single models.ScoreResult
	if err := json.Unmarshal(env.Data, &single); err != nil {
		t.Fatal(err)
	}
	if single.ActivityID != "louvre" || single.FitScore < 0.5 {
		t.Errorf("unexpected score %+v", single)
	}

	code, env = do(t, r, http.MethodPost, "/api/v1/preference/batch_score",
		`{"interests": ["museum"], "activities": [{"id": "a", "category": "museum"}, {"id": "b", "category": "nightlife"}]}`, "")
	if code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	var batch models.BatchScoreResponse
	if err := json.Unmarshal(env.Data, &batch); err != nil {
		t.Fatal(err)
	}
	if len(batch.Scores) != 2 || batch.Scores[0].FitScore <= batch.Scores[1].FitScore {
		t.Errorf("unexpected batch %+v", batch.Scores)
	}

	code, env = do(t, r, http.MethodPost, "/api/v1/preference/batch_score", `{"activities": []}`, "")
	if code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if err := json.Unmarshal(env.Data, &batch); err != nil {
		t.Fatal(err)
	}
	if batch.Scores == nil || len(batch.Scores) != 0 {
		t.Errorf("expected empty scores, got %+v", batch.Scores)
	}
}

func TestRecordAndLeaderboard(t *testing.T) {
	r := newTestRouter(t)

	if code, _ := do(t, r, http.MethodPost, "/api/v1/carbon/record", `{"emissionKg": 10}`, ""); code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated record: status = %d, want 401", code)
	}

	ana, err := middleware.CreateToken(testSecret, "u-ana", "Ana", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	ben, err := middleware.CreateToken(testSecret, "u-ben", "Ben", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	if code, _ := do(t, r, http.MethodPost, "/api/v1/carbon/record", `{"emissionKg": -3}`, ana); code != http.StatusBadRequest {
		t.Errorf("negative emission: status = %d, want 400", code)
	}
	if code, _ := do(t, r, http.MethodPost, "/api/v1/carbon/record", `{}`, ana); code != http.StatusBadRequest {
		t.Errorf("missing emission: status = %d, want 400", code)
	}

	for _, rec := range []struct {
		token string
		body  string
	}{
		{ana, `{"emissionKg": 40, "itineraryId": "rome"}`},
		{ana, `{"emissionKg": 60}`},
		{ben, `{"emissionKg": 12.34}`},
	} {
		if code, env := do(t, r, http.MethodPost, "/api/v1/carbon/record", rec.body, rec.token); code != http.StatusOK {
			t.Fatalf("record %s: status %d %s", rec.body, code, env.Message)
		}
	}

	code, env := do(t, r, http.MethodGet, "/api/v1/leaderboard", "", "")
	if code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	var board struct {
		Leaderboard []models.LeaderboardEntry `json:"leaderboard"`
	}
	if err := json.Unmarshal(env.Data, &board); err != nil {
		t.Fatal(err)
	}
	want := []models.LeaderboardEntry{
		{Rank: 1, UserID: "u-ben", Name: "Ben", AvgEmissionKg: 12.3, TripCount: 1},
		{Rank: 2, UserID: "u-ana", Name: "Ana", AvgEmissionKg: 50, TripCount: 2},
	}
	if len(board.Leaderboard) != len(want) {
		t.Fatalf("unexpected leaderboard %+v", board.Leaderboard)
	}
	for i := range want {
		if board.Leaderboard[i] != want[i] {
			t.Errorf("entry %d: got %+v, want %+v", i, board.Leaderboard[i], want[i])
		}
	}

	code, env = do(t, r, http.MethodGet, "/api/v1/carbon/history", "", ana)
	if code != http.StatusOK {
		t.Fatalf("history status %d", code)
	}
	var history struct {
		Trips []models.TripCarbon `json:"trips"`
	}
	if err := json.Unmarshal(env.Data, &history); err != nil {
		t.Fatal(err)
	}
	if len(history.Trips) != 2 {
		t.Errorf("expected 2 trips for Ana, got %d", len(history.Trips))
	}
}
