// Package patient implements the patient portal: doctor search, connection
// requests, the booking calendar and the patient's own appointments.
package patient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	appointmentRepo "medibook/database/repository/appointment"
	connectionRepo "medibook/database/repository/connection"
	doctorRepo "medibook/database/repository/doctor"
	patientRepo "medibook/database/repository/patient"
	recordRepo "medibook/database/repository/record"
	scheduleRepo "medibook/database/repository/schedule"
	userRepo "medibook/database/repository/user"
	"medibook/models"
	"medibook/services/notification"
	"medibook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrPatientNotFound = errors.New("patient profile not found")
	ErrDoctorNotFound  = errors.New("doctor not found")
	ErrAlreadyLinked   = errors.New("a connection with this doctor already exists")
	ErrNoPendingLink   = errors.New("no pending request with this doctor")
	ErrNotConnected    = errors.New("you are not connected to this doctor")
)

// PatientService is the patient-facing portal surface. All methods take the
// authenticated account's user ID.
type PatientService interface {
	SearchDoctors(ctx context.Context, filter models.DoctorSearchFilter) ([]models.DoctorSummary, error)

	ListConnections(ctx context.Context, userID string) ([]models.ConnectionView, error)
	RequestConnection(ctx context.Context, userID, doctorID string) (*models.ConnectionRequest, error)
	WithdrawRequest(ctx context.Context, userID, doctorID string) error
	DisconnectDoctor(ctx context.Context, userID, doctorID string) error

	DayAvailability(ctx context.Context, userID, doctorID, date string) (*models.DaySlots, error)
	BookAppointment(ctx context.Context, userID string, req models.BookingRequest) (*models.Appointment, error)
	UpcomingAppointments(ctx context.Context, userID string) ([]models.AppointmentView, error)
	CancelAppointment(ctx context.Context, userID, appointmentID string) error

	MedicalHistory(ctx context.Context, userID string) ([]models.MedicalRecord, error)
}

// DefaultPatientService is the production PatientService.
type DefaultPatientService struct {
	Patients     patientRepo.PatientRepository
	Doctors      doctorRepo.DoctorRepository
	Users        userRepo.UserRepository
	Schedules    scheduleRepo.ScheduleRepository
	Appointments appointmentRepo.AppointmentRepository
	Connections  connectionRepo.ConnectionRepository
	Records      recordRepo.RecordRepository
	Notifier     notification.NotificationService

	// SlotMinutes overrides the default slot width when positive.
	SlotMinutes int
	// Now is the clock used for availability math. Nil means time.Now.
	Now func() time.Time
}

func (s *DefaultPatientService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// patientFor resolves the patient document of an authenticated account.
func (s *DefaultPatientService) patientFor(userID string) (*models.Patient, error) {
	p, err := s.Patients.GetByUserID(userID)
	if err != nil {
		utils.GetLogger().Error("patientFor: lookup failed", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to resolve patient profile")
	}
	if p == nil {
		return nil, ErrPatientNotFound
	}
	return p, nil
}

// SearchDoctors lists approved doctors. Specialization filters in the query;
// the name filter matches case-insensitively against the account name here
// because names live on the users collection.
func (s *DefaultPatientService) SearchDoctors(_ context.Context, filter models.DoctorSearchFilter) ([]models.DoctorSummary, error) {
	docs, err := s.Doctors.ListApproved(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search doctors: %w", err)
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

	needle := strings.ToLower(strings.TrimSpace(filter.Name))
	out := make([]models.DoctorSummary, 0, len(docs))
	for _, d := range docs {
		u, ok := byID[d.UserID]
		if !ok {
			continue
		}
		if needle != "" {
			full := strings.ToLower(u.FirstName + " " + u.LastName)
			if !strings.Contains(full, needle) {
				continue
			}
		}
		out = append(out, models.DoctorSummary{
			ID:             d.ID,
			FirstName:      u.FirstName,
			LastName:       u.LastName,
			Specialization: d.Specialization,
			Address:        d.Address,
			PhoneNumber:    u.PhoneNumber,
			ProfileImage:   u.ProfileImage,
		})
	}
	return out, nil
}

func (s *DefaultPatientService) ListConnections(_ context.Context, userID string) ([]models.ConnectionView, error) {
	p, err := s.patientFor(userID)
	if err != nil {
		return nil, err
	}
	conns, err := s.Connections.ListByPatient(p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}

	doctorIDs := make([]string, 0, len(conns))
	for _, c := range conns {
		doctorIDs = append(doctorIDs, c.DoctorID)
	}
	docs, err := s.Doctors.GetByIDs(doctorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch doctors: %w", err)
	}
	userIDs := make([]string, 0, len(docs))
	docByID := make(map[string]models.Doctor, len(docs))
	for _, d := range docs {
		userIDs = append(userIDs, d.UserID)
		docByID[d.ID] = d
	}
	users, err := s.Users.GetByIDs(userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch doctor accounts: %w", err)
	}
	userByID := make(map[string]models.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	views := make([]models.ConnectionView, 0, len(conns))
	for _, c := range conns {
		v := models.ConnectionView{ConnectionRequest: c}
		if d, ok := docByID[c.DoctorID]; ok {
			v.Specialization = d.Specialization
			if u, ok := userByID[d.UserID]; ok {
				v.DoctorName = u.FirstName + " " + u.LastName
			}
		}
		views = append(views, v)
	}
	return views, nil
}

// RequestConnection opens a pending request toward an approved doctor. A
// rejected history row does not block a fresh request; it is revived back to
// pending instead of inserting a duplicate pair.
func (s *DefaultPatientService) RequestConnection(ctx context.Context, userID, doctorID string) (*models.ConnectionRequest, error) {
	p, err := s.patientFor(userID)
	if err != nil {
		return nil, err
	}
	doc, err := s.Doctors.GetByID(doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch doctor: %w", err)
	}
	if doc == nil || doc.ApprovalStatus != models.ApprovalApproved {
		return nil, ErrDoctorNotFound
	}

	existing, err := s.Connections.GetByPair(doctorID, p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing connection: %w", err)
	}
	if existing != nil {
		if existing.Status == models.ConnectionRejected {
			if err := s.Connections.SetStatus(existing.ID, models.ConnectionPending); err != nil {
				return nil, fmt.Errorf("failed to reopen connection request: %w", err)
			}
			existing.Status = models.ConnectionPending
			s.notifyDoctor(ctx, doc, "New connection request", "A patient wants to connect with you.")
			return existing, nil
		}
		return nil, ErrAlreadyLinked
	}

	now := time.Now()
	req := &models.ConnectionRequest{
		ID:          uuid.NewString(),
		DoctorID:    doctorID,
		PatientID:   p.ID,
		Status:      models.ConnectionPending,
		InitiatedBy: models.RolePatient,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Connections.Create(req); err != nil {
		return nil, fmt.Errorf("failed to create connection request: %w", err)
	}
	s.notifyDoctor(ctx, doc, "New connection request", "A patient wants to connect with you.")
	return req, nil
}

// WithdrawRequest deletes a still-pending request outright.
func (s *DefaultPatientService) WithdrawRequest(_ context.Context, userID, doctorID string) error {
	p, err := s.patientFor(userID)
	if err != nil {
		return err
	}
	if err := s.Connections.DeletePending(doctorID, p.ID); err != nil {
		return ErrNoPendingLink
	}
	return nil
}

// DisconnectDoctor flips the accepted connection to rejected, mirroring the
// doctor-side disconnect.
func (s *DefaultPatientService) DisconnectDoctor(ctx context.Context, userID, doctorID string) error {
	p, err := s.patientFor(userID)
	if err != nil {
		return err
	}
	if err := s.Connections.SetPairStatus(doctorID, p.ID, models.ConnectionAccepted, models.ConnectionRejected); err != nil {
		return ErrNotConnected
	}
	if doc, err := s.Doctors.GetByID(doctorID); err == nil && doc != nil {
		s.notifyDoctor(ctx, doc, "Connection ended", "A patient has ended the connection.")
	}
	return nil
}

// MedicalHistory returns the patient's own records across all doctors.
func (s *DefaultPatientService) MedicalHistory(_ context.Context, userID string) ([]models.MedicalRecord, error) {
	p, err := s.patientFor(userID)
	if err != nil {
		return nil, err
	}
	recs, err := s.Records.ListByPatient(p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list medical records: %w", err)
	}
	return recs, nil
}

func (s *DefaultPatientService) notifyDoctor(ctx context.Context, doc *models.Doctor, title, body string) {
	if err := s.Notifier.Notify(ctx, doc.UserID, models.NotificationConnection, title, body); err != nil {
		utils.GetLogger().Warn("notifyDoctor: notify failed", zap.Error(err))
	}
}
