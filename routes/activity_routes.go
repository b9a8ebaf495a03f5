package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/cleanflow-mumbai/api-go/controllers"
)

func SetupActivityRoutes(protected *gin.RouterGroup, activityController *controllers.ActivityController) {
	activities := protected.Group("/activities")
	{
		activities.GET("", activityController.GetActivities)
		activities.POST("/volunteer-hours", activityController.LogVolunteerHours)
	}
}
