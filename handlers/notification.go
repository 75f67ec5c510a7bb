package handlers

import (
	"net/http"

	"medibook/middleware"
	"medibook/services/notification"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func ListNotificationsHandler(svc notification.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.List(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			getLogger(c).Error("List notifications failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load notifications"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func MarkNotificationReadHandler(svc notification.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.MarkRead(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
			getLogger(c).Error("Mark notification read failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update notification"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "marked read"})
	}
}

func MarkAllNotificationsReadHandler(svc notification.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.MarkAllRead(c.Request.Context(), middleware.UserID(c)); err != nil {
			getLogger(c).Error("Mark all notifications read failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update notifications"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "all marked read"})
	}
}
