package models

import "time"

// Notification kinds written by booking and connection events.
const (
	NotificationAppointment = "appointment"
	NotificationConnection  = "connection"
	NotificationReminder    = "reminder"
)

// Notification is an in-app message for one user.
type Notification struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	Type      string    `bson:"type" json:"type"`
	Title     string    `bson:"title" json:"title"`
	Body      string    `bson:"body" json:"body"`
	Read      bool      `bson:"read" json:"read"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// ReminderPayload is the queued task body for a scheduled appointment
// reminder push.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	UserID        string `json:"userId"`
	Title         string `json:"title"`
	Body          string `json:"body"`
	FireDate      string `json:"fireDate"`
}
