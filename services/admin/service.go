// Package admin implements the insurance portal: doctor approval review and
// platform statistics.
package admin

import (
	"context"
	"errors"
	"fmt"

	appointmentRepo "medibook/database/repository/appointment"
	doctorRepo "medibook/database/repository/doctor"
	userRepo "medibook/database/repository/user"
	"medibook/models"
	"medibook/services/notification"
	"medibook/utils"

	"go.uber.org/zap"
)

var ErrDoctorNotFound = errors.New("doctor not found")

// DoctorReview is a directory row for the approvals screens.
type DoctorReview struct {
	models.DoctorSummary
	Email            string `json:"email"`
	ApprovalStatus   string `json:"approvalStatus"`
	AppointmentCount int64  `json:"appointmentCount"`
}

// PlatformStats is the admin dashboard summary.
type PlatformStats struct {
	PendingDoctors    int   `json:"pendingDoctors"`
	ApprovedDoctors   int   `json:"approvedDoctors"`
	RejectedDoctors   int   `json:"rejectedDoctors"`
	TotalAppointments int64 `json:"totalAppointments"`
}

// AdminService is the insurance-admin portal surface.
type AdminService interface {
	DoctorsByStatus(ctx context.Context, status string) ([]DoctorReview, error)
	SetDoctorApproval(ctx context.Context, doctorID, status string) error
	Stats(ctx context.Context) (*PlatformStats, error)
}

// DefaultAdminService is the production AdminService.
type DefaultAdminService struct {
	Doctors      doctorRepo.DoctorRepository
	Users        userRepo.UserRepository
	Appointments appointmentRepo.AppointmentRepository
	Notifier     notification.NotificationService
}

func (s *DefaultAdminService) DoctorsByStatus(_ context.Context, status string) ([]DoctorReview, error) {
	switch status {
	case models.ApprovalPending, models.ApprovalApproved, models.ApprovalRejected:
	default:
		return nil, fmt.Errorf("unknown approval status %q", status)
	}
	docs, err := s.Doctors.ListByApprovalStatus(status)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}

	userIDs := make([]string, 0, len(docs))
	for _, d := range docs {
		userIDs = append(userIDs, d.UserID)
	}
	users, err := s.Users.GetByIDs(userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch doctor accounts: %w", err)
	}
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	out := make([]DoctorReview, 0, len(docs))
	for _, d := range docs {
		u := byID[d.UserID]
		count, err := s.Appointments.CountByDoctor(d.ID)
		if err != nil {
			utils.GetLogger().Warn("DoctorsByStatus: count failed", zap.String("doctorID", d.ID), zap.Error(err))
		}
		out = append(out, DoctorReview{
			DoctorSummary: models.DoctorSummary{
				ID:             d.ID,
				FirstName:      u.FirstName,
				LastName:       u.LastName,
				Specialization: d.Specialization,
				Address:        d.Address,
				PhoneNumber:    u.PhoneNumber,
				ProfileImage:   u.ProfileImage,
			},
			Email:            u.Email,
			ApprovalStatus:   d.ApprovalStatus,
			AppointmentCount: count,
		})
	}
	return out, nil
}

// SetDoctorApproval moves a doctor to approved or rejected and tells them.
func (s *DefaultAdminService) SetDoctorApproval(ctx context.Context, doctorID, status string) error {
	if status != models.ApprovalApproved && status != models.ApprovalRejected {
		return fmt.Errorf("status must be %q or %q", models.ApprovalApproved, models.ApprovalRejected)
	}
	doc, err := s.Doctors.GetByID(doctorID)
	if err != nil {
		return fmt.Errorf("failed to fetch doctor: %w", err)
	}
	if doc == nil {
		return ErrDoctorNotFound
	}
	if err := s.Doctors.SetApprovalStatus(doctorID, status); err != nil {
		return fmt.Errorf("failed to update approval status: %w", err)
	}

	body := "Your registration was approved. You can now sign in."
	if status == models.ApprovalRejected {
		body = "Your registration was not approved. Contact support for details."
	}
	if err := s.Notifier.Notify(ctx, doc.UserID, models.NotificationConnection, "Registration review", body); err != nil {
		utils.GetLogger().Warn("SetDoctorApproval: notify failed", zap.Error(err))
	}
	return nil
}

func (s *DefaultAdminService) Stats(_ context.Context) (*PlatformStats, error) {
	stats := &PlatformStats{}
	for _, status := range []string{models.ApprovalPending, models.ApprovalApproved, models.ApprovalRejected} {
		docs, err := s.Doctors.ListByApprovalStatus(status)
		if err != nil {
			return nil, fmt.Errorf("failed to list doctors: %w", err)
		}
		switch status {
		case models.ApprovalPending:
			stats.PendingDoctors = len(docs)
		case models.ApprovalApproved:
			stats.ApprovedDoctors = len(docs)
		case models.ApprovalRejected:
			stats.RejectedDoctors = len(docs)
		}
	}
	total, err := s.Appointments.CountAll()
	if err != nil {
		return nil, fmt.Errorf("failed to count appointments: %w", err)
	}
	stats.TotalAppointments = total
	return stats, nil
}
