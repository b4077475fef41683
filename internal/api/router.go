package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jstwx07/routeto-backend-go/internal/cache"
	"github.com/jstwx07/routeto-backend-go/internal/config"
	"github.com/jstwx07/routeto-backend-go/internal/handler"
	"github.com/jstwx07/routeto-backend-go/internal/middleware"
	"github.com/jstwx07/routeto-backend-go/internal/routing"
	"github.com/jstwx07/routeto-backend-go/internal/service"
	"github.com/jstwx07/routeto-backend-go/internal/store"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, st *store.Store) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, If-None-Match")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 共享组件
	responseCache := cache.New()
	osrmClient := routing.NewClient(cfg.OSRMBaseURL)

	crimeHandler := handler.NewCrimeHandler(service.NewCrimeService(st, responseCache, cfg))
	clusterHandler := handler.NewClusterHandler(service.NewClusterService(st, responseCache, cfg))
	routeHandler := handler.NewRouteHandler(service.NewRouteService(st, responseCache, cfg, osrmClient))
	adminHandler := handler.NewAdminHandler(st, cfg)

	// 健康检查
	r.GET("/health", adminHandler.Health)

	// 重新加载数据集
	r.POST("/reload", adminHandler.Reload)

	// API 路由组
	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(120, time.Minute))
	{
		// 犯罪点位接口
		api.GET("/crimes", crimeHandler.GetCrimes)

		// 聚类接口
		api.GET("/clusters", clusterHandler.GetClusters)

		// 路线风险分析接口
		routes := api.Group("/routes")
		{
			routes.GET("/analyze", routeHandler.AnalyzeBetween)
			routes.POST("/analyze", routeHandler.AnalyzeRoutes)
		}
	}

	return r
}
