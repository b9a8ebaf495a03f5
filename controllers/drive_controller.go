package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cleanflow-mumbai/api-go/models"
	"github.com/cleanflow-mumbai/api-go/types"
	"github.com/cleanflow-mumbai/api-go/utils"
	"gorm.io/gorm"
)

type DriveController struct {
	DB *gorm.DB
}

type CreateDriveRequest struct {
	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description"`
	OrganizerType string   `json:"organizer_type" binding:"omitempty,oneof=ngo community corporate"`
	LocationName  string   `json:"location_name" binding:"required"`
	Latitude      float64  `json:"latitude" binding:"required"`
	Longitude     float64  `json:"longitude" binding:"required"`
	Date          string   `json:"date" binding:"required"` // YYYY-MM-DD
	StartTime     string   `json:"start_time"`
	DurationHours int      `json:"duration_hours" binding:"omitempty,min=1,max=24"`
	MaxVolunteers int      `json:"max_volunteers" binding:"omitempty,min=1"`
	Tags          []string `json:"tags"`
	Images        []string `json:"images"`
}

func NewDriveController(db *gorm.DB) *DriveController {
	return &DriveController{DB: db}
}

func (dc *DriveController) GetDrives(c *gin.Context) {
	query := dc.DB.Model(&models.Drive{}).Order("date ASC")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var drives []models.Drive
	if err := query.Find(&drives).Error; err != nil {
		if models.ClassifyDBError(err) == models.ErrTableMissing {
			c.JSON(http.StatusOK, StandardResponse{Success: true, Data: []models.Drive{}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch drives", "success": false})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: drives})
}

func (dc *DriveController) GetDrive(c *gin.Context) {
	var drive models.Drive
	if err := dc.DB.Preload("Organizer").First(&drive, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Drive not found", "success": false})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: drive})
}

func (dc *DriveController) GetDriveParticipants(c *gin.Context) {
	var participants []models.DriveParticipant
	if err := dc.DB.Preload("User").
		Where("drive_id = ? AND status = ?", c.Param("id"), "registered").
		Find(&participants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch participants", "success": false})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: participants})
}

func (dc *DriveController) CreateDrive(c *gin.Context) {
	user := utils.GetUser(c)
	var req CreateDriveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD", "success": false})
		return
	}

	drive := models.Drive{
		OrganizerID:   user.UserID,
		OrganizerType: req.OrganizerType,
		Title:         req.Title,
		Description:   req.Description,
		LocationName:  req.LocationName,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Date:          date,
		StartTime:     req.StartTime,
		DurationHours: req.DurationHours,
		MaxVolunteers: req.MaxVolunteers,
		Status:        "upcoming",
		Tags:          req.Tags,
		Images:        req.Images,
	}
	if drive.OrganizerType == "" {
		drive.OrganizerType = "community"
	}
	if drive.DurationHours == 0 {
		drive.DurationHours = 3
	}
	if drive.MaxVolunteers == 0 {
		drive.MaxVolunteers = 50
	}

	if err := dc.DB.Create(&drive).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create drive", "success": false})
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data:    drive,
		Message: "Drive created successfully",
	})
}

// JoinDrive registers the caller for a drive. Joining twice is a no-op that
// still reports success. The participant row, both counters, and the ledger
// entry commit in a single transaction.
func (dc *DriveController) JoinDrive(c *gin.Context) {
	user := utils.GetUser(c)
	driveID := c.Param("id")

	var drive models.Drive
	if err := dc.DB.First(&drive, driveID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Drive not found", "success": false})
		return
	}

	if drive.Status != "upcoming" && drive.Status != "ongoing" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Drive is not open for registration", "success": false})
		return
	}

	var existing models.DriveParticipant
	result := dc.DB.Where("drive_id = ? AND user_id = ? AND status = ?", drive.ID, user.UserID, "registered").First(&existing)
	if result.Error == nil {
		c.JSON(http.StatusOK, StandardResponse{
			Success: true,
			Data:    gin.H{"joined": true, "already_registered": true},
			Message: "Already registered for this drive",
		})
		return
	}

	if drive.RegisteredVolunteers >= drive.MaxVolunteers {
		c.JSON(http.StatusConflict, gin.H{"error": "Drive is at full capacity", "success": false})
		return
	}

	points := types.CleanupPoints(drive.DurationHours)

	tx := dc.DB.Begin()

	participant := models.DriveParticipant{
		DriveID: drive.ID,
		UserID:  user.UserID,
		Status:  "registered",
	}

	if err := tx.Create(&participant).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join drive", "success": false})
		return
	}

	// The increment re-checks capacity against the stored row, so two
	// concurrent joins at the last slot cannot both get in.
	counter := tx.Model(&models.Drive{}).
		Where("id = ? AND registered_volunteers < max_volunteers", drive.ID).
		Update("registered_volunteers", gorm.Expr("registered_volunteers + ?", 1))
	if counter.Error != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update drive", "success": false})
		return
	}
	if counter.RowsAffected == 0 {
		tx.Rollback()
		c.JSON(http.StatusConflict, gin.H{"error": "Drive is at full capacity", "success": false})
		return
	}

	if err := bumpProfileCounters(tx, user.UserID, "cleanup_drives_joined", 1, points); err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile", "success": false})
		return
	}

	metadata, _ := json.Marshal(map[string]interface{}{
		"cleanup_title": drive.Title,
		"location":      drive.LocationName,
		"hours":         drive.DurationHours,
	})

	activity := models.Activity{
		UserID:       user.UserID,
		Type:         "cleanup_joined",
		Title:        "Cleanup Drive Joined",
		Description:  fmt.Sprintf("Participated in cleanup drive: %s", drive.Title),
		PointsEarned: points,
		Metadata:     metadata,
	}

	if err := tx.Create(&activity).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record activity", "success": false})
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    gin.H{"joined": true, "points_earned": points},
		Message: "Successfully joined drive",
	})
}

// LeaveDrive cancels the caller's registration. Both counters are clamped at
// zero on the way down.
func (dc *DriveController) LeaveDrive(c *gin.Context) {
	user := utils.GetUser(c)
	driveID := c.Param("id")

	var drive models.Drive
	if err := dc.DB.First(&drive, driveID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Drive not found", "success": false})
		return
	}

	var participant models.DriveParticipant
	if err := dc.DB.Where("drive_id = ? AND user_id = ? AND status = ?", drive.ID, user.UserID, "registered").
		First(&participant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not registered for this drive", "success": false})
		return
	}

	points := types.CleanupPoints(drive.DurationHours)

	tx := dc.DB.Begin()

	if err := tx.Delete(&participant).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to leave drive", "success": false})
		return
	}

	if err := tx.Model(&models.Drive{}).Where("id = ?", drive.ID).
		Update("registered_volunteers", gorm.Expr("GREATEST(registered_volunteers - ?, 0)", 1)).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update drive", "success": false})
		return
	}

	if err := bumpProfileCounters(tx, user.UserID, "cleanup_drives_joined", -1, -points); err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile", "success": false})
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    gin.H{"joined": false},
		Message: "Left drive successfully",
	})
}
