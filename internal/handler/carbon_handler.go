package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/plantroute/plantroute-backend-go/internal/middleware"
	"github.com/plantroute/plantroute-backend-go/internal/models"
	"github.com/plantroute/plantroute-backend-go/internal/service"
	"github.com/plantroute/plantroute-backend-go/pkg/response"
)

// CarbonHandler handles HTTP requests for itinerary footprints
type CarbonHandler struct {
	service *service.CarbonService
}

// NewCarbonHandler creates a new carbon handler
func NewCarbonHandler(service *service.CarbonService) *CarbonHandler {
	return &CarbonHandler{service: service}
}

// Predict handles POST /api/v1/carbon/predict
func (h *CarbonHandler) Predict(c *gin.Context) {
	var it models.Itinerary
	if err := c.ShouldBindJSON(&it); err != nil {
		response.BadRequest(c, "Invalid itinerary JSON")
		return
	}

	response.Success(c, h.service.Predict(it))
}

// Alternatives handles POST /api/v1/carbon/alternatives
func (h *CarbonHandler) Alternatives(c *gin.Context) {
	req := models.AlternativesRequest{UserPreferences: models.DefaultTravelPreferences()}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request JSON")
		return
	}

	response.Success(c, h.service.Alternatives(req))
}

// Record handles POST /api/v1/carbon/record
func (h *CarbonHandler) Record(c *gin.Context) {
	var req models.RecordCarbonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid JSON body")
		return
	}

	record, err := h.service.Record(c.GetString(middleware.ContextUserID), c.GetString(middleware.ContextUserName), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEmission) {
			response.BadRequest(c, err.Error())
			return
		}
		c.Error(err)
		response.InternalError(c, "Failed to record carbon")
		return
	}

	response.Success(c, record)
}

// History handles GET /api/v1/carbon/history
func (h *CarbonHandler) History(c *gin.Context) {
	records, err := h.service.History(c.GetString(middleware.ContextUserID))
	if err != nil {
		c.Error(err)
		response.InternalError(c, "Failed to get carbon history")
		return
	}

	response.Success(c, gin.H{"trips": records})
}

// LeaderboardHandler handles HTTP requests for the leaderboard
type LeaderboardHandler struct {
	service *service.LeaderboardService
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(service *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

// GetLeaderboard handles GET /api/v1/leaderboard
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	var filter models.LeaderboardFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	entries, err := h.service.GetLeaderboard(filter)
	if err != nil {
		c.Error(err)
		response.InternalError(c, "Failed to fetch leaderboard")
		return
	}

	response.Success(c, gin.H{"leaderboard": entries})
}
