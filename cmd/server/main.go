package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/plantroute/plantroute-backend-go/internal/api"
	"github.com/plantroute/plantroute-backend-go/internal/classifier"
	"github.com/plantroute/plantroute-backend-go/internal/config"
	"github.com/plantroute/plantroute-backend-go/internal/database"
)

func main() {
	// 加载配置
	cfg := config.Load()
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	// 初始化数据库
	dbConfig := database.Config{
		Path: cfg.DBPath,
	}
	if err := database.Init(dbConfig); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	// 模型按需加载, 每个引擎只加载一次
	registry := classifier.NewRegistry()

	// 初始化路由
	router := api.SetupRouter(cfg, database.GetDB(), registry)

	// 预热模型, 缺失时仅记录警告
	for _, engine := range registry.Engines() {
		if _, err := registry.Get(engine); err != nil {
			log.Printf("Warning: %v", err)
		}
	}

	// 启动服务器
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
