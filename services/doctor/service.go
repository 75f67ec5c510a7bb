// Package doctor implements the doctor portal: working hours and vacations,
// the day's appointments, the connected-patient roster and medical records.
package doctor

import (
	"context"
	"errors"
	"fmt"
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
	ErrDoctorNotFound  = errors.New("doctor profile not found")
	ErrNotConnected    = errors.New("patient is not connected to this doctor")
	ErrRequestNotFound = errors.New("connection request not found")
)

// DoctorService is the doctor-facing portal surface. All methods take the
// authenticated account's user ID and resolve the doctor document from it.
type DoctorService interface {
	ListWorkingHours(ctx context.Context, userID string) ([]models.WorkingHoursEntry, error)
	AddWorkingHours(ctx context.Context, userID string, dayOfWeek int, startTime, endTime string) (*models.WorkingHoursEntry, error)
	DeleteWorkingHours(ctx context.Context, userID, entryID string) error

	ListVacations(ctx context.Context, userID string) ([]models.VacationRange, error)
	AddVacation(ctx context.Context, userID, startDate, endDate, reason string) (*models.VacationRange, error)
	DeleteVacation(ctx context.Context, userID, vacationID string) error

	AppointmentsByDate(ctx context.Context, userID, date string) ([]models.AppointmentView, error)
	UpcomingAppointments(ctx context.Context, userID string) ([]models.AppointmentView, error)
	CancelAppointment(ctx context.Context, userID, appointmentID string) error
	CompleteAppointment(ctx context.Context, userID, appointmentID string) error
	SetAppointmentNotes(ctx context.Context, userID, appointmentID, notes string) error

	PendingRequests(ctx context.Context, userID string) ([]models.ConnectionView, error)
	RespondToRequest(ctx context.Context, userID, requestID string, accept bool) error
	ListPatients(ctx context.Context, userID string) ([]models.PatientSummary, error)
	DisconnectPatient(ctx context.Context, userID, patientID string) error

	CreateRecord(ctx context.Context, userID string, rec models.MedicalRecord) (*models.MedicalRecord, error)
	PatientRecords(ctx context.Context, userID, patientID string) ([]models.MedicalRecord, error)
}

// DefaultDoctorService is the production DoctorService.
type DefaultDoctorService struct {
	Doctors      doctorRepo.DoctorRepository
	Users        userRepo.UserRepository
	Patients     patientRepo.PatientRepository
	Schedules    scheduleRepo.ScheduleRepository
	Appointments appointmentRepo.AppointmentRepository
	Connections  connectionRepo.ConnectionRepository
	Records      recordRepo.RecordRepository
	Notifier     notification.NotificationService
}

// doctorFor resolves the doctor document of an authenticated account.
func (s *DefaultDoctorService) doctorFor(userID string) (*models.Doctor, error) {
	doc, err := s.Doctors.GetByUserID(userID)
	if err != nil {
		utils.GetLogger().Error("doctorFor: lookup failed", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to resolve doctor profile")
	}
	if doc == nil {
		return nil, ErrDoctorNotFound
	}
	return doc, nil
}

func (s *DefaultDoctorService) PendingRequests(_ context.Context, userID string) ([]models.ConnectionView, error) {
	doc, err := s.doctorFor(userID)
	if err != nil {
		return nil, err
	}
	reqs, err := s.Connections.ListByDoctorAndStatus(doc.ID, models.ConnectionPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list connection requests: %w", err)
	}
	return s.decorateWithPatientNames(reqs)
}

// RespondToRequest accepts or rejects a pending request and tells the
// patient what happened.
func (s *DefaultDoctorService) RespondToRequest(ctx context.Context, userID, requestID string, accept bool) error {
	doc, err := s.doctorFor(userID)
	if err != nil {
		return err
	}
	req, err := s.Connections.GetByID(requestID)
	if err != nil {
		return fmt.Errorf("failed to fetch connection request: %w", err)
	}
	if req == nil || req.DoctorID != doc.ID || req.Status != models.ConnectionPending {
		return ErrRequestNotFound
	}

	status := models.ConnectionRejected
	verdict := "declined"
	if accept {
		status = models.ConnectionAccepted
		verdict = "accepted"
	}
	if err := s.Connections.SetStatus(requestID, status); err != nil {
		return fmt.Errorf("failed to update connection request: %w", err)
	}

	if patientUser := s.patientUserID(req.PatientID); patientUser != "" {
		body := fmt.Sprintf("Your connection request was %s.", verdict)
		if err := s.Notifier.Notify(ctx, patientUser, models.NotificationConnection, "Connection request update", body); err != nil {
			utils.GetLogger().Warn("RespondToRequest: notify failed", zap.Error(err))
		}
	}
	return nil
}

func (s *DefaultDoctorService) ListPatients(_ context.Context, userID string) ([]models.PatientSummary, error) {
	doc, err := s.doctorFor(userID)
	if err != nil {
		return nil, err
	}
	conns, err := s.Connections.ListByDoctorAndStatus(doc.ID, models.ConnectionAccepted)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}

	patientIDs := make([]string, 0, len(conns))
	for _, c := range conns {
		patientIDs = append(patientIDs, c.PatientID)
	}
	patients, err := s.Patients.GetByIDs(patientIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patients: %w", err)
	}

	userIDs := make([]string, 0, len(patients))
	for _, p := range patients {
		userIDs = append(userIDs, p.UserID)
	}
	users, err := s.Users.GetByIDs(userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patient accounts: %w", err)
	}
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	roster := make([]models.PatientSummary, 0, len(patients))
	for _, p := range patients {
		u := byID[p.UserID]
		roster = append(roster, models.PatientSummary{
			ID:          p.ID,
			FirstName:   u.FirstName,
			LastName:    u.LastName,
			DateOfBirth: p.DateOfBirth,
			PhoneNumber: u.PhoneNumber,
			Address:     p.Address,
		})
	}
	return roster, nil
}

// DisconnectPatient flips the accepted connection to rejected, which removes
// the patient from the roster while keeping the history row.
func (s *DefaultDoctorService) DisconnectPatient(ctx context.Context, userID, patientID string) error {
	doc, err := s.doctorFor(userID)
	if err != nil {
		return err
	}
	if err := s.Connections.SetPairStatus(doc.ID, patientID, models.ConnectionAccepted, models.ConnectionRejected); err != nil {
		return ErrNotConnected
	}
	if patientUser := s.patientUserID(patientID); patientUser != "" {
		if err := s.Notifier.Notify(ctx, patientUser, models.NotificationConnection, "Connection ended", "Your doctor has ended the connection."); err != nil {
			utils.GetLogger().Warn("DisconnectPatient: notify failed", zap.Error(err))
		}
	}
	return nil
}

// CreateRecord writes a visit record for a connected patient. The doctor and
// date fields are stamped by the server, not trusted from the payload.
func (s *DefaultDoctorService) CreateRecord(_ context.Context, userID string, rec models.MedicalRecord) (*models.MedicalRecord, error) {
	doc, err := s.doctorFor(userID)
	if err != nil {
		return nil, err
	}
	if err := s.requireConnected(doc.ID, rec.PatientID); err != nil {
		return nil, err
	}
	if rec.Diagnosis == "" {
		return nil, fmt.Errorf("diagnosis is required")
	}

	rec.ID = uuid.NewString()
	rec.DoctorID = doc.ID
	if rec.Date == "" {
		rec.Date = time.Now().Format("2006-01-02")
	}
	rec.CreatedAt = time.Now()
	for i := range rec.Prescriptions {
		rec.Prescriptions[i].ID = uuid.NewString()
	}
	if err := s.Records.Create(&rec); err != nil {
		return nil, fmt.Errorf("failed to store medical record: %w", err)
	}
	return &rec, nil
}

func (s *DefaultDoctorService) PatientRecords(_ context.Context, userID, patientID string) ([]models.MedicalRecord, error) {
	doc, err := s.doctorFor(userID)
	if err != nil {
		return nil, err
	}
	if err := s.requireConnected(doc.ID, patientID); err != nil {
		return nil, err
	}
	recs, err := s.Records.ListByPatient(patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list medical records: %w", err)
	}
	return recs, nil
}

// requireConnected guards record access behind an accepted connection.
func (s *DefaultDoctorService) requireConnected(doctorID, patientID string) error {
	conn, err := s.Connections.GetByPair(doctorID, patientID)
	if err != nil {
		return fmt.Errorf("failed to check connection: %w", err)
	}
	if conn == nil || conn.Status != models.ConnectionAccepted {
		return ErrNotConnected
	}
	return nil
}

func (s *DefaultDoctorService) patientUserID(patientID string) string {
	p, err := s.Patients.GetByID(patientID)
	if err != nil || p == nil {
		return ""
	}
	return p.UserID
}

func (s *DefaultDoctorService) decorateWithPatientNames(reqs []models.ConnectionRequest) ([]models.ConnectionView, error) {
	ids := make([]string, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.PatientID)
	}
	patients, err := s.Patients.GetByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patients: %w", err)
	}
	userIDs := make([]string, 0, len(patients))
	patientToUser := make(map[string]string, len(patients))
	for _, p := range patients {
		userIDs = append(userIDs, p.UserID)
		patientToUser[p.ID] = p.UserID
	}
	users, err := s.Users.GetByIDs(userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patient accounts: %w", err)
	}
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	views := make([]models.ConnectionView, 0, len(reqs))
	for _, r := range reqs {
		v := models.ConnectionView{ConnectionRequest: r}
		if u, ok := byID[patientToUser[r.PatientID]]; ok {
			v.PatientName = u.FirstName + " " + u.LastName
		}
		views = append(views, v)
	}
	return views, nil
}
