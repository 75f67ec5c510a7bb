package notificationRepo

import "medibook/models"

// NotificationRepository defines persistence operations for in-app
// notifications.
type NotificationRepository interface {
	Create(n *models.Notification) error
	ListByUser(userID string, limit int64) ([]models.Notification, error)
	MarkRead(userID, notificationID string) error
	MarkAllRead(userID string) error
}
