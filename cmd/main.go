package main

import (
	"context"
	"os"

	"nutrilog/config"
	"nutrilog/controllers"
	"nutrilog/routes"
	"nutrilog/services"

	"go.uber.org/zap"
)

func main() {
	config.InitLogger()
	defer config.Log.Sync()

	config.LoadEnv()
	config.InitDB()
	config.InitRedis()

	var recentStore services.RecentFoodsStore = services.NewMemoryRecentFoodsStore()
	if config.Redis != nil {
		recentStore = services.NewRedisRecentFoodsStore(config.Redis)
	}
	recent := services.NewRecentFoodsService(recentStore, config.Log)

	logSvc := services.NewDailyLogService(
		services.NewGormLogStore(config.DB),
		recent,
		services.NewLogHub(),
		config.Log,
	)

	ai, err := services.NewRecipeAIService(context.Background(), os.Getenv("GEMINI_API_KEY"))
	if err != nil {
		config.Log.Fatal("failed to init recipe assistant", zap.Error(err))
	}
	defer ai.Close()

	r := routes.SetupRouter(
		controllers.NewLogController(logSvc),
		controllers.NewRecipeController(ai, logSvc),
		controllers.NewRealtimeController(logSvc),
	)
	if err := r.Run(":8080"); err != nil {
		config.Log.Fatal("server exited", zap.Error(err))
	}
}
