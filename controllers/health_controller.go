package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cleanflow-mumbai/api-go/models"
	"gorm.io/gorm"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

// Health probes the profiles table and classifies failures so the client's
// connectivity widget can tell "offline" from "not provisioned yet".
func (hc *HealthController) Health(c *gin.Context) {
	var count int64
	err := hc.DB.Model(&models.Profile{}).Count(&count).Error
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "success": true})
		return
	}

	if models.ClassifyDBError(err) == models.ErrTableMissing {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "setup_required",
			"error":   "Database tables not found - run the migration",
			"success": false,
		})
		return
	}

	c.JSON(http.StatusServiceUnavailable, gin.H{
		"status":  "unreachable",
		"error":   "Database connection failed",
		"success": false,
	})
}
