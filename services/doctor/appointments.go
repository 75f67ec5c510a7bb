package doctor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medibook/models"
	"medibook/services/availability"
	"medibook/utils"

	"go.uber.org/zap"
)

var ErrAppointmentNotFound = errors.New("appointment not found")

func (s *DefaultDoctorService) AppointmentsByDate(_ context.Context, userID, date string) ([]models.AppointmentView, error) {
	doc, err := s.doctorFor(userID)
	if err != nil {
		return nil, err
	}
	if _, err := time.Parse(availability.DateLayout, date); err != nil {
		return nil, fmt.Errorf("date must be YYYY-MM-DD: %q", date)
	}
	apts, err := s.Appointments.ListByDoctorAndDate(doc.ID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return s.decorateAppointments(apts)
}

func (s *DefaultDoctorService) UpcomingAppointments(_ context.Context, userID string) ([]models.AppointmentView, error) {
	doc, err := s.doctorFor(userID)
	if err != nil {
		return nil, err
	}
	today := time.Now().Format(availability.DateLayout)
	apts, err := s.Appointments.ListUpcomingByDoctor(doc.ID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return s.decorateAppointments(apts)
}

// CancelAppointment frees the slot and tells the patient. Completed
// appointments cannot be cancelled.
func (s *DefaultDoctorService) CancelAppointment(ctx context.Context, userID, appointmentID string) error {
	_, apt, err := s.ownAppointment(userID, appointmentID)
	if err != nil {
		return err
	}
	if apt.Status != models.AppointmentScheduled {
		return fmt.Errorf("only scheduled appointments can be cancelled")
	}
	if err := s.Appointments.UpdateStatus(appointmentID, models.AppointmentCancelled); err != nil {
		return fmt.Errorf("failed to cancel appointment: %w", err)
	}

	if patientUser := s.patientUserID(apt.PatientID); patientUser != "" {
		body := fmt.Sprintf("Your appointment on %s at %s was cancelled by the doctor.", apt.Date, apt.StartTime)
		if err := s.Notifier.Notify(ctx, patientUser, models.NotificationAppointment, "Appointment cancelled", body); err != nil {
			utils.GetLogger().Warn("CancelAppointment: notify failed", zap.Error(err))
		}
	}
	return nil
}

func (s *DefaultDoctorService) CompleteAppointment(_ context.Context, userID, appointmentID string) error {
	_, apt, err := s.ownAppointment(userID, appointmentID)
	if err != nil {
		return err
	}
	if apt.Status != models.AppointmentScheduled {
		return fmt.Errorf("only scheduled appointments can be completed")
	}
	if err := s.Appointments.UpdateStatus(appointmentID, models.AppointmentCompleted); err != nil {
		return fmt.Errorf("failed to complete appointment: %w", err)
	}
	return nil
}

func (s *DefaultDoctorService) SetAppointmentNotes(_ context.Context, userID, appointmentID, notes string) error {
	_, _, err := s.ownAppointment(userID, appointmentID)
	if err != nil {
		return err
	}
	if err := s.Appointments.SetNotes(appointmentID, notes); err != nil {
		return fmt.Errorf("failed to save notes: %w", err)
	}
	return nil
}

// ownAppointment fetches an appointment and verifies it belongs to the
// calling doctor.
func (s *DefaultDoctorService) ownAppointment(userID, appointmentID string) (*models.Doctor, *models.Appointment, error) {
	doc, err := s.doctorFor(userID)
	if err != nil {
		return nil, nil, err
	}
	apt, err := s.Appointments.GetByID(appointmentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch appointment: %w", err)
	}
	if apt == nil || apt.DoctorID != doc.ID {
		return nil, nil, ErrAppointmentNotFound
	}
	return doc, apt, nil
}

func (s *DefaultDoctorService) decorateAppointments(apts []models.Appointment) ([]models.AppointmentView, error) {
	patientIDs := make([]string, 0, len(apts))
	for _, a := range apts {
		patientIDs = append(patientIDs, a.PatientID)
	}
	patients, err := s.Patients.GetByIDs(patientIDs)
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

	views := make([]models.AppointmentView, 0, len(apts))
	for _, a := range apts {
		v := models.AppointmentView{Appointment: a}
		if u, ok := byID[patientToUser[a.PatientID]]; ok {
			v.PatientName = u.FirstName + " " + u.LastName
		}
		views = append(views, v)
	}
	return views, nil
}
