package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/cleanflow-mumbai/api-go/controllers"
	"github.com/cleanflow-mumbai/api-go/middleware"
)

func SetupReportRoutes(protected *gin.RouterGroup, reportController *controllers.ReportController) {
	reports := protected.Group("/reports")
	{
		reports.POST("", reportController.CreateReport)
		reports.POST("/:id/resolve", reportController.ResolveReport)
		reports.POST("/:id/review", middleware.ModeratorOnly(), reportController.ReviewReport)
	}

	users := protected.Group("/users")
	{
		users.GET("/:userId/reports", reportController.GetUserReports)
	}
}
