package patient

import (
	"context"
	"errors"
	"fmt"
	"time"

	appointmentRepo "medibook/database/repository/appointment"
	"medibook/models"
	"medibook/services/availability"
	"medibook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrSlotTaken surfaces a lost booking race to the caller as a distinct
// outcome so the UI can refresh the slot list instead of showing a failure.
var ErrSlotTaken = appointmentRepo.ErrSlotTaken

var ErrDayUnavailable = errors.New("the doctor is not available on this date")

func (s *DefaultPatientService) slotMinutes() int {
	if s.SlotMinutes > 0 {
		return s.SlotMinutes
	}
	return availability.DefaultSlotMinutes
}

// DayAvailability classifies the date and, when bookable, lists the free
// slot start times. The patient must hold an accepted connection with the
// doctor.
func (s *DefaultPatientService) DayAvailability(_ context.Context, userID, doctorID, date string) (*models.DaySlots, error) {
	p, err := s.patientFor(userID)
	if err != nil {
		return nil, err
	}
	if err := s.requireConnected(doctorID, p.ID); err != nil {
		return nil, err
	}
	day, err := time.Parse(availability.DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("date must be YYYY-MM-DD: %q", date)
	}

	hours, vacations, err := s.scheduleSnapshot(doctorID)
	if err != nil {
		return nil, err
	}

	if availability.ClassifyDate(day, hours, vacations, s.now()) == availability.DayUnavailable {
		return &models.DaySlots{Date: date, Available: false, Slots: []string{}}, nil
	}

	appointments, err := s.Appointments.ListByDoctorAndDate(doctorID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	slots := availability.ComputeAvailableSlots(day, hours, vacations, appointments, availability.Options{SlotMinutes: s.slotMinutes()})
	if slots == nil {
		slots = []string{}
	}
	return &models.DaySlots{Date: date, Available: true, Slots: slots}, nil
}

// BookAppointment books one slot. The requested start time must be a slot
// the engine would offer right now; the freshly read appointment list then
// re-checks the slot, and the unique index on active (doctor, date, start)
// bookings settles any race that slips between the read and the insert.
func (s *DefaultPatientService) BookAppointment(ctx context.Context, userID string, req models.BookingRequest) (*models.Appointment, error) {
	p, err := s.patientFor(userID)
	if err != nil {
		return nil, err
	}
	if err := s.requireConnected(req.DoctorID, p.ID); err != nil {
		return nil, err
	}
	day, err := time.Parse(availability.DateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("date must be YYYY-MM-DD: %q", req.Date)
	}
	start, err := availability.ParseClock(req.StartTime)
	if err != nil {
		return nil, err
	}

	hours, vacations, err := s.scheduleSnapshot(req.DoctorID)
	if err != nil {
		return nil, err
	}
	if availability.ClassifyDate(day, hours, vacations, s.now()) == availability.DayUnavailable {
		return nil, ErrDayUnavailable
	}

	appointments, err := s.Appointments.ListByDoctorAndDate(req.DoctorID, req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	slots := availability.ComputeAvailableSlots(day, hours, vacations, appointments, availability.Options{SlotMinutes: s.slotMinutes()})
	offered := false
	for _, slot := range slots {
		if slot == req.StartTime {
			offered = true
			break
		}
	}
	if !offered || !availability.IsSlotStillFree(req.Date, req.StartTime, appointments) {
		return nil, ErrSlotTaken
	}

	now := time.Now()
	apt := &models.Appointment{
		ID:        uuid.NewString(),
		DoctorID:  req.DoctorID,
		PatientID: p.ID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   availability.FormatClock(start + s.slotMinutes()),
		Status:    models.AppointmentScheduled,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Appointments.Create(apt); err != nil {
		if errors.Is(err, ErrSlotTaken) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("failed to book appointment: %w", err)
	}

	if doc, err := s.Doctors.GetByID(req.DoctorID); err == nil && doc != nil {
		body := fmt.Sprintf("A patient booked %s at %s.", apt.Date, apt.StartTime)
		s.notifyDoctor(ctx, doc, "New appointment", body)
	}
	if err := s.Notifier.ScheduleAppointmentReminder(ctx, *apt, userID); err != nil {
		utils.GetLogger().Warn("BookAppointment: reminder scheduling failed", zap.Error(err))
	}
	return apt, nil
}

func (s *DefaultPatientService) UpcomingAppointments(_ context.Context, userID string) ([]models.AppointmentView, error) {
	p, err := s.patientFor(userID)
	if err != nil {
		return nil, err
	}
	today := s.now().Format(availability.DateLayout)
	apts, err := s.Appointments.ListUpcomingByPatient(p.ID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	doctorIDs := make([]string, 0, len(apts))
	for _, a := range apts {
		doctorIDs = append(doctorIDs, a.DoctorID)
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

	views := make([]models.AppointmentView, 0, len(apts))
	for _, a := range apts {
		v := models.AppointmentView{Appointment: a}
		if d, ok := docByID[a.DoctorID]; ok {
			v.Specialization = d.Specialization
			if u, ok := userByID[d.UserID]; ok {
				v.DoctorName = u.FirstName + " " + u.LastName
			}
		}
		views = append(views, v)
	}
	return views, nil
}

// CancelAppointment sets the patient's own scheduled appointment to
// cancelled, freeing the slot, and tells the doctor.
func (s *DefaultPatientService) CancelAppointment(ctx context.Context, userID, appointmentID string) error {
	p, err := s.patientFor(userID)
	if err != nil {
		return err
	}
	apt, err := s.Appointments.GetByID(appointmentID)
	if err != nil {
		return fmt.Errorf("failed to fetch appointment: %w", err)
	}
	if apt == nil || apt.PatientID != p.ID {
		return fmt.Errorf("appointment not found")
	}
	if apt.Status != models.AppointmentScheduled {
		return fmt.Errorf("only scheduled appointments can be cancelled")
	}
	if err := s.Appointments.UpdateStatus(appointmentID, models.AppointmentCancelled); err != nil {
		return fmt.Errorf("failed to cancel appointment: %w", err)
	}

	if doc, err := s.Doctors.GetByID(apt.DoctorID); err == nil && doc != nil {
		body := fmt.Sprintf("The appointment on %s at %s was cancelled by the patient.", apt.Date, apt.StartTime)
		s.notifyDoctor(ctx, doc, "Appointment cancelled", body)
	}
	return nil
}

func (s *DefaultPatientService) requireConnected(doctorID, patientID string) error {
	conn, err := s.Connections.GetByPair(doctorID, patientID)
	if err != nil {
		return fmt.Errorf("failed to check connection: %w", err)
	}
	if conn == nil || conn.Status != models.ConnectionAccepted {
		return ErrNotConnected
	}
	return nil
}

func (s *DefaultPatientService) scheduleSnapshot(doctorID string) ([]models.WorkingHoursEntry, []models.VacationRange, error) {
	hours, err := s.Schedules.ListWorkingHours(doctorID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list working hours: %w", err)
	}
	vacations, err := s.Schedules.ListVacations(doctorID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list vacations: %w", err)
	}
	return hours, vacations, nil
}
