package main

import (
	"log"

	"github.com/jstwx07/routeto-backend-go/internal/api"
	"github.com/jstwx07/routeto-backend-go/internal/config"
	"github.com/jstwx07/routeto-backend-go/internal/store"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化数据存储并加载数据集
	st := store.New(cfg)
	snap, err := st.Load(cfg.DataPath)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	log.Printf("Dataset ready: %d records (generation %d)", len(snap.Records), snap.Generation)

	// 设置路由
	router := api.SetupRouter(cfg, st)

	// 启动服务器
	log.Printf("Server starting on %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
