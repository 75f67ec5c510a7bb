package handlers

import (
	"errors"
	"net/http"

	"medibook/models"
	"medibook/services/admin"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminDoctorsHandler lists doctors for review; ?status= defaults to
// pending.
func AdminDoctorsHandler(svc admin.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := c.DefaultQuery("status", models.ApprovalPending)
		docs, err := svc.DoctorsByStatus(c.Request.Context(), status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, docs)
	}
}

// SetDoctorApprovalHandler approves or rejects the doctor in the path.
func SetDoctorApprovalHandler(svc admin.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		if err := svc.SetDoctorApproval(c.Request.Context(), c.Param("id"), req.Status); err != nil {
			if errors.Is(err, admin.ErrDoctorNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "approval status updated"})
	}
}

// PlatformStatsHandler returns the admin dashboard counts.
func PlatformStatsHandler(svc admin.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.Stats(c.Request.Context())
		if err != nil {
			getLogger(c).Error("Stats failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}
