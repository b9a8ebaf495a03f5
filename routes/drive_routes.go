package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/cleanflow-mumbai/api-go/controllers"
)

func SetupDriveRoutes(protected *gin.RouterGroup, driveController *controllers.DriveController) {
	drives := protected.Group("/drives")
	{
		drives.POST("", driveController.CreateDrive)
		drives.POST("/:id/join", driveController.JoinDrive)
		drives.POST("/:id/leave", driveController.LeaveDrive)
		drives.GET("/:id/participants", driveController.GetDriveParticipants)
	}
}
