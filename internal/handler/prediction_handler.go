package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/plantroute/plantroute-backend-go/internal/classifier"
	"github.com/plantroute/plantroute-backend-go/internal/models"
	"github.com/plantroute/plantroute-backend-go/internal/service"
	"github.com/plantroute/plantroute-backend-go/pkg/response"
)

// PredictionHandler handles HTTP requests for the regret and fit engines
type PredictionHandler struct {
	regret     *service.RegretService
	preference *service.PreferenceService
}

// NewPredictionHandler creates a new prediction handler
func NewPredictionHandler(regret *service.RegretService, preference *service.PreferenceService) *PredictionHandler {
	return &PredictionHandler{regret: regret, preference: preference}
}

// PredictRegret handles POST /api/v1/regret/predict?engine=
func (h *PredictionHandler) PredictRegret(c *gin.Context) {
	req := models.NewPredictRequest()
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request JSON")
		return
	}

	prediction, err := h.regret.Predict(c.Query("engine"), req)
	if err != nil {
		respondModelError(c, err)
		return
	}

	response.Success(c, models.PredictResponse{Prediction: prediction})
}

// RegretFeatures handles POST /api/v1/regret/features?engine=
func (h *PredictionHandler) RegretFeatures(c *gin.Context) {
	req := models.NewPredictRequest()
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request JSON")
		return
	}

	v, err := h.regret.Features(c.Query("engine"), req)
	if err != nil {
		respondModelError(c, err)
		return
	}

	response.Success(c, gin.H{"features": v})
}

// Score handles POST /api/v1/preference/score
func (h *PredictionHandler) Score(c *gin.Context) {
	req := models.NewScoreRequest()
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request JSON")
		return
	}

	result, err := h.preference.Score(req)
	if err != nil {
		respondModelError(c, err)
		return
	}

	response.Success(c, result)
}

// BatchScore handles POST /api/v1/preference/batch_score
func (h *PredictionHandler) BatchScore(c *gin.Context) {
	req := models.NewBatchScoreRequest()
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request JSON")
		return
	}

	result, err := h.preference.BatchScore(req)
	if err != nil {
		respondModelError(c, err)
		return
	}

	response.Success(c, result)
}

// PreferenceFeatures handles POST /api/v1/preference/features
func (h *PredictionHandler) PreferenceFeatures(c *gin.Context) {
	req := models.NewScoreRequest()
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request JSON")
		return
	}

	response.Success(c, gin.H{
		"engine":   h.preference.Engine(),
		"features": h.preference.Features(req),
	})
}

// respondModelError maps classifier failures to HTTP status codes
func respondModelError(c *gin.Context, err error) {
	c.Error(err)
	switch {
	case errors.Is(err, classifier.ErrUnknownEngine):
		response.BadRequest(c, err.Error())
	case errors.Is(err, classifier.ErrModelNotFound):
		response.ServiceUnavailable(c, "Model not available")
	default:
		response.InternalError(c, "Prediction failed")
	}
}
