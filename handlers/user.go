package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"medibook/middleware"
	"medibook/services/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GetProfileHandler returns the caller's account plus role document.
func GetProfileHandler(svc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := svc.GetProfile(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			getLogger(c).Error("Get profile failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

// UpdateProfileHandler applies name / phone / address edits.
func UpdateProfileHandler(svc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var upd user.ProfileUpdate
		if err := c.ShouldBindJSON(&upd); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		profile, err := svc.UpdateProfile(c.Request.Context(), middleware.UserID(c), upd)
		if err != nil {
			getLogger(c).Error("Update profile failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

// SetFCMTokenHandler registers the caller's push token.
func SetFCMTokenHandler(svc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Token string `json:"token" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		if err := svc.SetFCMToken(c.Request.Context(), middleware.UserID(c), req.Token); err != nil {
			getLogger(c).Error("Set FCM token failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "token registered"})
	}
}

// UploadProfilePhotoHandler accepts a multipart "photo" file, stages it to a
// temp path and hands it to the media service.
func UploadProfilePhotoHandler(svc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("photo")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
			return
		}

		tmpPath := filepath.Join(os.TempDir(), uuid.NewString()+filepath.Ext(file.Filename))
		if err := c.SaveUploadedFile(file, tmpPath); err != nil {
			getLogger(c).Error("Photo staging failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
			return
		}
		defer os.Remove(tmpPath)

		url, err := svc.UpdateProfilePhoto(c.Request.Context(), middleware.UserID(c), tmpPath)
		if err != nil {
			getLogger(c).Error("Photo upload failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload photo"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"profileImage": url})
	}
}
