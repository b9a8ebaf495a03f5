package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cleanflow-mumbai/api-go/models"
	"github.com/cleanflow-mumbai/api-go/types"
	"github.com/cleanflow-mumbai/api-go/utils"
	"gorm.io/gorm"
)

type ReportController struct {
	DB *gorm.DB
}

type CreateReportRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	LocationName string   `json:"location_name" binding:"required"`
	Latitude     float64  `json:"latitude" binding:"required"`
	Longitude    float64  `json:"longitude" binding:"required"`
	Severity     string   `json:"severity" binding:"required,oneof=low moderate severe"`
	Type         string   `json:"type" binding:"omitempty,oneof=pollution cleanup"`
	Photos       []string `json:"photos"`
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

// CreateReport files a new observation and awards submission points. The
// report row, the ledger entry, and the profile counters move together in
// one transaction.
func (rc *ReportController) CreateReport(c *gin.Context) {
	user := utils.GetUser(c)
	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	reportType := req.Type
	if reportType == "" {
		reportType = "pollution"
	}

	report := models.Report{
		UserID:       user.UserID,
		Title:        req.Title,
		Description:  req.Description,
		LocationName: req.LocationName,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Severity:     req.Severity,
		Status:       "pending",
		Type:         reportType,
		Photos:       req.Photos,
	}

	points := types.ReportPoints(req.Severity)

	tx := rc.DB.Begin()

	if err := tx.Create(&report).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create report", "success": false})
		return
	}

	metadata, _ := json.Marshal(map[string]interface{}{
		"severity":     req.Severity,
		"location":     req.LocationName,
		"report_title": req.Title,
	})

	activity := models.Activity{
		UserID:          user.UserID,
		Type:            "report_submitted",
		Title:           "Pollution Report Submitted",
		Description:     fmt.Sprintf("Submitted a %s pollution report: %s", req.Severity, req.Title),
		PointsEarned:    points,
		RelatedReportID: &report.ID,
		Metadata:        metadata,
	}

	if err := tx.Create(&activity).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record activity", "success": false})
		return
	}

	if err := bumpProfileCounters(tx, user.UserID, "reports_submitted", 1, points); err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile", "success": false})
		return
	}

	tx.Commit()

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data: gin.H{
			"report":        report,
			"points_earned": points,
		},
		Message: "Report submitted successfully",
	})
}

// GetReports lists pending and approved reports, newest first. A missing
// reports table degrades to an empty list so an unprovisioned environment
// still renders.
func (rc *ReportController) GetReports(c *gin.Context) {
	query := rc.DB.Model(&models.Report{}).
		Preload("User").
		Where("status IN ?", []string{"pending", "approved"}).
		Order("created_at DESC")

	if reportType := c.Query("type"); reportType != "" {
		query = query.Where("type = ?", reportType)
	}

	var reports []models.Report
	if err := query.Find(&reports).Error; err != nil {
		if models.ClassifyDBError(err) == models.ErrTableMissing {
			log.Println("reports table not provisioned yet, returning empty list")
			c.JSON(http.StatusOK, StandardResponse{Success: true, Data: []models.Report{}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports", "success": false})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: reports})
}

func (rc *ReportController) GetUserReports(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id", "success": false})
		return
	}

	var reports []models.Report
	if err := rc.DB.Where("user_id = ?", uint(userID)).Order("created_at DESC").Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports", "success": false})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: reports})
}

// ResolveReport moves a pollution report owned by the caller from pending or
// approved to resolved. Ownership and state are checked against the stored
// row before any write.
func (rc *ReportController) ResolveReport(c *gin.Context) {
	user := utils.GetUser(c)
	reportID := c.Param("id")

	var report models.Report
	if err := rc.DB.First(&report, reportID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found", "success": false})
		return
	}

	if report.UserID != user.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the report owner can resolve it", "success": false})
		return
	}

	if report.Type != "pollution" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only pollution reports can be resolved", "success": false})
		return
	}

	if report.Status != "pending" && report.Status != "approved" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Report cannot be resolved from status " + report.Status, "success": false})
		return
	}

	if err := rc.DB.Model(&report).Update("status", "resolved").Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve report", "success": false})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    report,
		Message: "Report marked as resolved",
	})
}

// ReviewReport is the moderation transition: pending -> approved/rejected.
func (rc *ReportController) ReviewReport(c *gin.Context) {
	moderator := utils.GetUser(c)
	reportID := c.Param("id")

	var input struct {
		Decision string `json:"decision" binding:"required,oneof=approved rejected"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var report models.Report
	if err := rc.DB.First(&report, reportID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found", "success": false})
		return
	}

	if report.Status != "pending" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only pending reports can be reviewed", "success": false})
		return
	}

	now := nowFunc()
	updates := map[string]interface{}{
		"status":      input.Decision,
		"reviewed_at": now,
		"reviewed_by": moderator.UserID,
	}

	if err := rc.DB.Model(&report).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to review report", "success": false})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    report,
		Message: "Report " + input.Decision,
	})
}
