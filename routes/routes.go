package routes

import (
	"github.com/binarybcc/aip-tracker/config"
	"github.com/binarybcc/aip-tracker/controllers"
	"github.com/binarybcc/aip-tracker/middlewares"
	"github.com/binarybcc/aip-tracker/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter(hub *services.RealtimeHub) *gin.Engine {
	r := gin.Default()

	progressCtl := controllers.NewProgressController(services.NewProgressService(config.DB))
	realtimeCtl := controllers.NewRealtimeController(hub)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	// Protected routes
	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware())
	{
		api.POST("/setup", controllers.CompleteSetup)
		api.GET("/profile", controllers.GetProfile)
		api.GET("/dashboard", controllers.GetDashboard)

		api.POST("/food/logs", controllers.LogFood)
		api.GET("/food/logs", controllers.ListFoodLogs)

		api.POST("/water/logs", controllers.LogWater)
		api.GET("/water/today", controllers.GetWaterToday)

		api.POST("/symptoms/logs", controllers.LogSymptoms)
		api.GET("/symptoms/logs", controllers.ListSymptomLogs)

		reintro := api.Group("/reintroduction")
		{
			reintro.POST("/start", controllers.StartReintroduction)
			reintro.GET("/foods", controllers.ListReintroFoods)
			reintro.GET("/tests", controllers.ListReintroTests)
			reintro.POST("/tests", controllers.ScheduleReintroTest)
			reintro.POST("/tests/:id/complete", controllers.CompleteReintroTest)
			reintro.GET("/suggested-date", controllers.GetSuggestedTestDate)
		}

		api.GET("/progress/report", progressCtl.GetReport)
		api.GET("/achievements", controllers.ListAchievements)
		api.GET("/ws", realtimeCtl.EventsWS)
	}

	return r
}
