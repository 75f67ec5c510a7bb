// Package notification persists in-app notifications and delivers FCM
// pushes. Push delivery is best effort: a missing token or an unconfigured
// Firebase app never fails the triggering operation.
package notification

import (
	"context"
	"fmt"
	"time"

	"medibook/config"
	notificationRepo "medibook/database/repository/notification"
	userRepo "medibook/database/repository/user"
	"medibook/models"
	"medibook/services/tasks"
	"medibook/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const defaultListLimit = 50

// NotificationService writes, lists and pushes user notifications.
type NotificationService interface {
	Notify(ctx context.Context, userID, kind, title, body string) error
	List(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) error
	SendPush(ctx context.Context, userID, title, body string, data map[string]string) error
	ScheduleAppointmentReminder(ctx context.Context, apt models.Appointment, userID string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo  notificationRepo.NotificationRepository
	Users userRepo.UserRepository
	// Queue enqueues delayed reminder tasks. Nil disables scheduling.
	Queue *asynq.Client
}

func NewDefaultNotificationService(repo notificationRepo.NotificationRepository, users userRepo.UserRepository, queue *asynq.Client) *DefaultNotificationService {
	return &DefaultNotificationService{Repo: repo, Users: users, Queue: queue}
}

// Notify stores an in-app notification and attempts a push. The stored
// record is the source of truth; push failures are logged and swallowed.
func (s *DefaultNotificationService) Notify(ctx context.Context, userID, kind, title, body string) error {
	n := &models.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      kind,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now(),
	}
	if err := s.Repo.Create(n); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}
	if err := s.SendPush(ctx, userID, title, body, map[string]string{"type": kind}); err != nil {
		utils.GetLogger().Debug("Notify: push skipped", zap.String("userID", userID), zap.Error(err))
	}
	return nil
}

func (s *DefaultNotificationService) List(_ context.Context, userID string) ([]models.Notification, error) {
	return s.Repo.ListByUser(userID, defaultListLimit)
}

func (s *DefaultNotificationService) MarkRead(_ context.Context, userID, notificationID string) error {
	return s.Repo.MarkRead(userID, notificationID)
}

func (s *DefaultNotificationService) MarkAllRead(_ context.Context, userID string) error {
	return s.Repo.MarkAllRead(userID)
}

// SendPush looks up the user's FCM token and delivers one message.
func (s *DefaultNotificationService) SendPush(ctx context.Context, userID, title, body string, data map[string]string) error {
	if utils.FCMClient == nil {
		return fmt.Errorf("push delivery disabled")
	}
	u, err := s.Users.GetByID(userID)
	if err != nil {
		return fmt.Errorf("SendPush: could not find user %s: %w", userID, err)
	}
	if u == nil || u.FCMToken == "" {
		return fmt.Errorf("SendPush: user %s has no FCM token", userID)
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendPush: failed to send FCM message: %w", err)
	}
	return nil
}

// ScheduleAppointmentReminder enqueues a delayed reminder task that fires
// before the appointment starts. Appointments already inside the lead window
// get no reminder.
func (s *DefaultNotificationService) ScheduleAppointmentReminder(ctx context.Context, apt models.Appointment, userID string) error {
	if s.Queue == nil {
		return nil
	}
	startAt, err := time.ParseInLocation("2006-01-02 15:04", apt.Date+" "+apt.StartTime, time.Local)
	if err != nil {
		return fmt.Errorf("bad appointment time %q %q: %w", apt.Date, apt.StartTime, err)
	}
	lead := time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute
	if lead <= 0 {
		lead = time.Hour
	}
	fireAt := startAt.Add(-lead)
	if !fireAt.After(time.Now()) {
		return nil
	}

	payload := models.ReminderPayload{
		AppointmentID: apt.ID,
		UserID:        userID,
		Title:         "Upcoming appointment",
		Body:          fmt.Sprintf("You have an appointment at %s on %s.", apt.StartTime, apt.Date),
		FireDate:      fireAt.Format(time.RFC3339),
	}
	task, opts, err := tasks.NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := s.Queue.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}
