package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/cleanflow-mumbai/api-go/controllers"
)

func SetupUploadRoutes(protected *gin.RouterGroup, uploadController *controllers.UploadController) {
	upload := protected.Group("/upload")
	{
		upload.POST("/report-photo", uploadController.GetReportPhotoURL)
		upload.POST("/avatar/temp", uploadController.GetAvatarTempURL)
		upload.POST("/avatar/confirm", uploadController.ConfirmAvatarUpload)
		upload.DELETE("/file/*key", uploadController.DeleteReportPhoto)
	}
}
