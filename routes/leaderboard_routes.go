package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/cleanflow-mumbai/api-go/controllers"
	"github.com/cleanflow-mumbai/api-go/middleware"
)

func SetupLeaderboardRoutes(protected *gin.RouterGroup, leaderboardController *controllers.LeaderboardController) {
	leaderboard := protected.Group("/leaderboard")
	{
		leaderboard.GET("", leaderboardController.GetLeaderboard)
		leaderboard.POST("/recompute", middleware.ModeratorOnly(), leaderboardController.RecomputeRanks)
	}
}
