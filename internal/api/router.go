package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/plantroute/plantroute-backend-go/internal/classifier"
	"github.com/plantroute/plantroute-backend-go/internal/config"
	"github.com/plantroute/plantroute-backend-go/internal/handler"
	"github.com/plantroute/plantroute-backend-go/internal/middleware"
	"github.com/plantroute/plantroute-backend-go/internal/repository"
	"github.com/plantroute/plantroute-backend-go/internal/service"
)

// SetupRouter 设置路由. Model paths in cfg are registered on registry; empty
// paths leave whatever the caller registered in place.
func SetupRouter(cfg *config.Config, db *sql.DB, registry *classifier.Registry) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "PlantRoute API is running",
			"engines": registry.Engines(),
		})
	})

	carbonRepo := repository.NewCarbonRepository(db)
	carbonHandler := handler.NewCarbonHandler(service.NewCarbonService(carbonRepo))
	leaderboardHandler := handler.NewLeaderboardHandler(service.NewLeaderboardService(carbonRepo))

	regretService := service.NewRegretService(registry, map[string]string{
		service.EngineRegretProtection: cfg.RegretModelPath,
		service.EnginePreference:       cfg.PreferenceModelPath,
	})
	preferenceService := service.NewPreferenceService(registry, cfg.FitVariant, cfg.FitModelPath)
	predictionHandler := handler.NewPredictionHandler(regretService, preferenceService)

	auth := middleware.Auth(cfg.JWTSecret)

	// API 路由组
	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	{
		// 碳排放接口
		carbon := api.Group("/carbon")
		{
			carbon.POST("/predict", carbonHandler.Predict)
			carbon.POST("/alternatives", carbonHandler.Alternatives)
			carbon.POST("/record", auth, carbonHandler.Record)
			carbon.GET("/history", auth, carbonHandler.History)
		}

		api.GET("/leaderboard", leaderboardHandler.GetLeaderboard)

		// 后悔预测接口
		regret := api.Group("/regret")
		{
			regret.POST("/predict", predictionHandler.PredictRegret)
			regret.POST("/features", predictionHandler.RegretFeatures)
		}

		// 偏好匹配接口
		preference := api.Group("/preference")
		{
			preference.POST("/score", predictionHandler.Score)
			preference.POST("/batch_score", predictionHandler.BatchScore)
			preference.POST("/features", predictionHandler.PreferenceFeatures)
		}
	}

	return r
}
