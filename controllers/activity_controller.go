package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cleanflow-mumbai/api-go/models"
	"github.com/cleanflow-mumbai/api-go/types"
	"github.com/cleanflow-mumbai/api-go/utils"
	"gorm.io/gorm"
)

type ActivityController struct {
	DB *gorm.DB
}

func NewActivityController(db *gorm.DB) *ActivityController {
	return &ActivityController{DB: db}
}

// GetActivities returns the caller's ledger, newest first.
func (ac *ActivityController) GetActivities(c *gin.Context) {
	user := utils.GetUser(c)

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	var activities []models.Activity
	if err := ac.DB.Where("user_id = ?", user.UserID).
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error; err != nil {
		if models.ClassifyDBError(err) == models.ErrTableMissing {
			c.JSON(http.StatusOK, StandardResponse{Success: true, Data: []models.Activity{}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activities", "success": false})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: activities})
}

// LogVolunteerHours appends a volunteer_hours ledger entry and bumps the
// profile's hour counter and impact score.
func (ac *ActivityController) LogVolunteerHours(c *gin.Context) {
	user := utils.GetUser(c)

	var input struct {
		Hours    int    `json:"hours" binding:"required,min=1,max=24"`
		Activity string `json:"activity" binding:"required"`
		Location string `json:"location"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	points := types.VolunteerPoints(input.Hours)

	metadata, _ := json.Marshal(map[string]interface{}{
		"hours":    input.Hours,
		"activity": input.Activity,
		"location": input.Location,
	})

	activity := models.Activity{
		UserID:       user.UserID,
		Type:         "volunteer_hours",
		Title:        "Volunteer Hours Logged",
		Description:  fmt.Sprintf("Volunteered %d hours for %s", input.Hours, input.Activity),
		PointsEarned: points,
		Metadata:     metadata,
	}

	tx := ac.DB.Begin()

	if err := tx.Create(&activity).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record activity", "success": false})
		return
	}

	if err := bumpProfileCounters(tx, user.UserID, "volunteer_hours", input.Hours, points); err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile", "success": false})
		return
	}

	tx.Commit()

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data:    gin.H{"activity": activity, "points_earned": points},
		Message: "Volunteer hours logged",
	})
}
