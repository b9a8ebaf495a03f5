package controllers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cleanflow-mumbai/api-go/config"
	"github.com/cleanflow-mumbai/api-go/utils"
	"gorm.io/gorm"
)

type UploadController struct {
	DB       *gorm.DB
	R2Client *s3.Client
	R2Config *config.R2Config
}

type PresignedURLRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	FileSize    int64  `json:"fileSize" binding:"required"`
}

type PresignedURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}

type AvatarConfirmRequest struct {
	TempKey string `json:"tempKey" binding:"required"`
}

const (
	photoSizeLimit  = 10 * 1024 * 1024
	avatarSizeLimit = 5 * 1024 * 1024
)

func NewUploadController(db *gorm.DB) *UploadController {
	r2Config := config.GetR2Config()

	r2Client := s3.New(s3.Options{
		BaseEndpoint: aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r2Config.AccountID)),
		Credentials: credentials.NewStaticCredentialsProvider(
			r2Config.AccessKeyID,
			r2Config.SecretAccessKey,
			"",
		),
		Region: r2Config.Region,
	})

	return &UploadController{
		DB:       db,
		R2Client: r2Client,
		R2Config: r2Config,
	}
}

// GetReportPhotoURL issues a presigned PUT for a report photo in the reports
// bucket. Keys embed the uploader's user id for the ownership check on delete.
func (uc *UploadController) GetReportPhotoURL(c *gin.Context) {
	user := utils.GetUser(c)
	var req PresignedURLRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	if !isValidPhotoType(req.ContentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid photo content type", "success": false})
		return
	}

	if req.FileSize > photoSizeLimit {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds limit", "success": false})
		return
	}

	key := uc.generatePhotoKey(user.UserID, req.FileName)

	presignedURL, err := uc.createPresignedURL(uc.R2Config.ReportsBucket, key, req.ContentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload URL", "success": false})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: PresignedURLResponse{
			UploadURL: presignedURL,
			FileURL:   fmt.Sprintf("%s/%s", uc.R2Config.PublicURL, key),
			Key:       key,
			ExpiresIn: 3600,
		},
		Message: "Presigned URL generated successfully",
	})
}

func (uc *UploadController) GetAvatarTempURL(c *gin.Context) {
	var req PresignedURLRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	if !isValidPhotoType(req.ContentType) || req.FileSize > avatarSizeLimit {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid avatar file type or size", "success": false})
		return
	}

	key := fmt.Sprintf("temp/avatars/%d_%s%s", time.Now().Unix(), uuid.New().String(), filepath.Ext(req.FileName))

	presignedURL, err := uc.createPresignedURL(uc.R2Config.AvatarsBucket, key, req.ContentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload URL", "success": false})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: PresignedURLResponse{
			UploadURL: presignedURL,
			FileURL:   fmt.Sprintf("%s/%s", uc.R2Config.PublicURL, key),
			Key:       key,
			ExpiresIn: 1800,
		},
		Message: "Temporary avatar upload URL generated successfully",
	})
}

// ConfirmAvatarUpload moves the temp object under the user's permanent
// prefix and records the public URL on the profile.
func (uc *UploadController) ConfirmAvatarUpload(c *gin.Context) {
	user := utils.GetUser(c)
	var req AvatarConfirmRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	if !strings.HasPrefix(req.TempKey, "temp/avatars/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid temp key format", "success": false})
		return
	}

	exists, err := uc.objectExists(uc.R2Config.AvatarsBucket, req.TempKey)
	if err != nil || !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Temporary avatar file not found", "success": false})
		return
	}

	permanentKey := fmt.Sprintf("users/%d/avatar/%d_avatar%s", user.UserID, time.Now().Unix(), filepath.Ext(req.TempKey))

	if err := uc.moveObject(uc.R2Config.AvatarsBucket, req.TempKey, permanentKey); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm avatar upload", "success": false})
		return
	}

	fileURL := fmt.Sprintf("%s/%s", uc.R2Config.PublicURL, permanentKey)

	uc.DB.Table("profiles").Where("user_id = ?", user.UserID).Update("avatar_url", fileURL)

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: gin.H{
			"key":     permanentKey,
			"fileUrl": fileURL,
		},
		Message: "Avatar upload confirmed successfully",
	})
}

func (uc *UploadController) DeleteReportPhoto(c *gin.Context) {
	user := utils.GetUser(c)
	key := strings.TrimPrefix(c.Param("key"), "/")

	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File key is required", "success": false})
		return
	}

	if !uc.ownsKey(key, user.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied", "success": false})
		return
	}

	if err := uc.deleteObject(uc.R2Config.ReportsBucket, key); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file", "success": false})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Message: "File deleted successfully",
	})
}

func isValidPhotoType(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/jpg", "image/png", "image/webp", "image/heic":
		return true
	}
	return false
}

func (uc *UploadController) generatePhotoKey(userID uint, fileName string) string {
	return fmt.Sprintf("reports/%d/%d_%s%s", userID, time.Now().Unix(), uuid.New().String(), filepath.Ext(fileName))
}

// ownsKey checks the user id embedded in the key path:
// reports/{userID}/{timestamp}_{uuid}.{ext}
func (uc *UploadController) ownsKey(key string, userID uint) bool {
	parts := strings.Split(key, "/")
	if len(parts) < 3 {
		return false
	}
	return fmt.Sprintf("%d", userID) == parts[1]
}

func (uc *UploadController) createPresignedURL(bucket, key, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}

	presigner := s3.NewPresignClient(uc.R2Client)
	req, err := presigner.PresignPutObject(context.TODO(), input, func(opts *s3.PresignOptions) {
		opts.Expires = time.Hour
	})

	if err != nil {
		return "", err
	}

	return req.URL, nil
}

func (uc *UploadController) objectExists(bucket, key string) (bool, error) {
	_, err := uc.R2Client.HeadObject(context.TODO(), &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (uc *UploadController) deleteObject(bucket, key string) error {
	_, err := uc.R2Client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	return err
}

func (uc *UploadController) moveObject(bucket, sourceKey, destKey string) error {
	_, err := uc.R2Client.CopyObject(context.TODO(), &s3.CopyObjectInput{
		Bucket:     aws.String(bucket),
		CopySource: aws.String(fmt.Sprintf("%s/%s", bucket, sourceKey)),
		Key:        aws.String(destKey),
	})
	if err != nil {
		return err
	}

	return uc.deleteObject(bucket, sourceKey)
}
