package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/cleanflow-mumbai/api-go/controllers"
	"github.com/cleanflow-mumbai/api-go/middleware"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Initialize controllers
	authController := controllers.NewAuthController(db)
	profileController := controllers.NewProfileController(db)
	reportController := controllers.NewReportController(db)
	driveController := controllers.NewDriveController(db)
	activityController := controllers.NewActivityController(db)
	leaderboardController := controllers.NewLeaderboardController(db)
	uploadController := controllers.NewUploadController(db)
	geocodeController := controllers.NewGeocodeController()
	healthController := controllers.NewHealthController(db)

	r.GET("/metrics", middleware.MetricsHandler())

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
		public.POST("/auth/google", authController.GoogleLogin)
		public.POST("/refresh-token", authController.RefreshToken)
		public.POST("/reset-password", authController.ResetPassword)
		public.POST("/reset-password/confirm", authController.ConfirmPasswordReset)
		public.GET("/health", healthController.Health)
		public.GET("/reports", reportController.GetReports)
		public.GET("/drives", driveController.GetDrives)
		public.GET("/drives/:id", driveController.GetDrive)
		public.GET("/geocode/search", geocodeController.Search)
		public.GET("/geocode/reverse", geocodeController.Reverse)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/logout", authController.Logout)
		protected.GET("/session", authController.GetSession)

		protected.GET("/profile", profileController.GetProfile)
		protected.POST("/profile", profileController.EnsureOwnProfile)
		protected.PUT("/profile", profileController.UpdateProfile)
		protected.GET("/users/:userId/profile", profileController.GetUserProfile)

		SetupReportRoutes(protected, reportController)
		SetupDriveRoutes(protected, driveController)
		SetupActivityRoutes(protected, activityController)
		SetupLeaderboardRoutes(protected, leaderboardController)
		SetupUploadRoutes(protected, uploadController)
	}
}
