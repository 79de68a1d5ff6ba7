package routes

import (
	"nutrilog/controllers"
	"nutrilog/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRouter(lc *controllers.LogController, rc *controllers.RecipeController, rt *controllers.RealtimeController) *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	// Catalog lookups
	food := r.Group("/food")
	food.Use(middlewares.AuthMiddleware())
	{
		food.GET("/search", controllers.SearchFoods)
		food.GET("/barcode/:code", controllers.LookupBarcode)
		food.GET("/product/:code", controllers.GetProduct)
		food.POST("/recognize", controllers.RecognizeFood)
		food.GET("/recent", lc.ListRecentFoods)
	}

	// Daily log store
	logs := r.Group("/logs")
	logs.Use(middlewares.AuthMiddleware())
	{
		logs.GET("/:date", lc.GetLog)
		logs.POST("/:date/foods", lc.AddFood)
		logs.POST("/:date/meals", lc.AddMeal)
		logs.DELETE("/:date/foods/:foodId", lc.DeleteFood)
		logs.POST("/:date/water", lc.AddWater)
		logs.PUT("/:date/calorie-override", lc.SetCalorieOverride)
		logs.POST("/:date/recipe", rc.LogRecipe)
	}

	// AI recipe generation
	recipes := r.Group("/recipes")
	recipes.Use(middlewares.AuthMiddleware())
	{
		recipes.POST("/generate", rc.Generate)
	}

	// Realtime log stream
	ws := r.Group("/ws")
	ws.Use(middlewares.AuthMiddleware())
	{
		ws.GET("/logs/:date", rt.LogWS)
	}

	return r
}
