package patient

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	appointmentRepo "medibook/database/repository/appointment"
	connectionRepo "medibook/database/repository/connection"
	doctorRepo "medibook/database/repository/doctor"
	patientRepo "medibook/database/repository/patient"
	scheduleRepo "medibook/database/repository/schedule"
	"medibook/models"
)

type stubPatients struct {
	patientRepo.PatientRepository
	p *models.Patient
}

func (s *stubPatients) GetByUserID(string) (*models.Patient, error) { return s.p, nil }

type stubDoctors struct {
	doctorRepo.DoctorRepository
	doc *models.Doctor
}

func (s *stubDoctors) GetByID(string) (*models.Doctor, error) { return s.doc, nil }

type stubConnections struct {
	connectionRepo.ConnectionRepository
	conn *models.ConnectionRequest
}

func (s *stubConnections) GetByPair(string, string) (*models.ConnectionRequest, error) {
	return s.conn, nil
}

type stubSchedules struct {
	scheduleRepo.ScheduleRepository
	hours     []models.WorkingHoursEntry
	vacations []models.VacationRange
}

func (s *stubSchedules) ListWorkingHours(string) ([]models.WorkingHoursEntry, error) {
	return s.hours, nil
}

func (s *stubSchedules) ListVacations(string) ([]models.VacationRange, error) {
	return s.vacations, nil
}

type stubAppointments struct {
	appointmentRepo.AppointmentRepository
	existing  []models.Appointment
	createErr error
	created   *models.Appointment
}

func (s *stubAppointments) ListByDoctorAndDate(string, string) ([]models.Appointment, error) {
	return s.existing, nil
}

func (s *stubAppointments) Create(apt *models.Appointment) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = apt
	return nil
}

// noopNotifier satisfies NotificationService without side effects.
type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, string, string, string, string) error { return nil }
func (noopNotifier) List(context.Context, string) ([]models.Notification, error)  { return nil, nil }
func (noopNotifier) MarkRead(context.Context, string, string) error               { return nil }
func (noopNotifier) MarkAllRead(context.Context, string) error                    { return nil }
func (noopNotifier) SendPush(context.Context, string, string, string, map[string]string) error {
	return nil
}
func (noopNotifier) ScheduleAppointmentReminder(context.Context, models.Appointment, string) error {
	return nil
}

func newBookingService(apts *stubAppointments, connected bool) *DefaultPatientService {
	var conn *models.ConnectionRequest
	if connected {
		conn = &models.ConnectionRequest{DoctorID: "doc1", PatientID: "p1", Status: models.ConnectionAccepted}
	}
	return &DefaultPatientService{
		Patients: &stubPatients{p: &models.Patient{ID: "p1", UserID: "u1"}},
		Doctors:  &stubDoctors{doc: &models.Doctor{ID: "doc1", UserID: "du1", ApprovalStatus: models.ApprovalApproved}},
		Schedules: &stubSchedules{hours: []models.WorkingHoursEntry{
			// Monday 09:00-12:00.
			{ID: "wh1", DoctorID: "doc1", DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"},
		}},
		Appointments: apts,
		Connections:  &stubConnections{conn: conn},
		Notifier:     noopNotifier{},
		Now:          func() time.Time { return time.Date(2026, 2, 23, 8, 0, 0, 0, time.UTC) },
	}
}

func TestDayAvailability(t *testing.T) {
	ctx := context.Background()

	t.Run("lists free slots around a booking", func(t *testing.T) {
		apts := &stubAppointments{existing: []models.Appointment{
			{DoctorID: "doc1", Date: "2026-03-02", StartTime: "10:00", EndTime: "10:30", Status: models.AppointmentScheduled},
		}}
		svc := newBookingService(apts, true)

		day, err := svc.DayAvailability(ctx, "u1", "doc1", "2026-03-02")
		if err != nil {
			t.Fatal(err)
		}
		if !day.Available {
			t.Fatal("expected an available day")
		}
		want := []string{"09:00", "09:30", "10:30", "11:00", "11:30"}
		if !reflect.DeepEqual(day.Slots, want) {
			t.Fatalf("slots = %v, want %v", day.Slots, want)
		}
	})

	t.Run("past date is unavailable with empty slots", func(t *testing.T) {
		svc := newBookingService(&stubAppointments{}, true)

		day, err := svc.DayAvailability(ctx, "u1", "doc1", "2026-02-16")
		if err != nil {
			t.Fatal(err)
		}
		if day.Available || len(day.Slots) != 0 {
			t.Fatalf("expected unavailable day with no slots, got %+v", day)
		}
	})

	t.Run("requires an accepted connection", func(t *testing.T) {
		svc := newBookingService(&stubAppointments{}, false)

		if _, err := svc.DayAvailability(ctx, "u1", "doc1", "2026-03-02"); !errors.Is(err, ErrNotConnected) {
			t.Fatalf("err = %v, want ErrNotConnected", err)
		}
	})
}

func TestBookAppointment(t *testing.T) {
	ctx := context.Background()
	req := models.BookingRequest{DoctorID: "doc1", Date: "2026-03-02", StartTime: "09:30"}

	t.Run("books a free slot", func(t *testing.T) {
		apts := &stubAppointments{}
		svc := newBookingService(apts, true)

		apt, err := svc.BookAppointment(ctx, "u1", req)
		if err != nil {
			t.Fatal(err)
		}
		if apt.EndTime != "10:00" {
			t.Fatalf("end time = %s, want 10:00", apt.EndTime)
		}
		if apt.Status != models.AppointmentScheduled || apt.PatientID != "p1" {
			t.Fatalf("unexpected appointment %+v", apt)
		}
		if apts.created == nil {
			t.Fatal("appointment was not persisted")
		}
	})

	t.Run("rejects an occupied slot", func(t *testing.T) {
		apts := &stubAppointments{existing: []models.Appointment{
			{DoctorID: "doc1", Date: "2026-03-02", StartTime: "09:30", EndTime: "10:00", Status: models.AppointmentScheduled},
		}}
		svc := newBookingService(apts, true)

		if _, err := svc.BookAppointment(ctx, "u1", req); !errors.Is(err, ErrSlotTaken) {
			t.Fatalf("err = %v, want ErrSlotTaken", err)
		}
	})

	t.Run("cancelled booking does not block the slot", func(t *testing.T) {
		apts := &stubAppointments{existing: []models.Appointment{
			{DoctorID: "doc1", Date: "2026-03-02", StartTime: "09:30", EndTime: "10:00", Status: models.AppointmentCancelled},
		}}
		svc := newBookingService(apts, true)

		if _, err := svc.BookAppointment(ctx, "u1", req); err != nil {
			t.Fatalf("booking over a cancelled appointment failed: %v", err)
		}
	})

	t.Run("lost insert race surfaces as ErrSlotTaken", func(t *testing.T) {
		apts := &stubAppointments{createErr: appointmentRepo.ErrSlotTaken}
		svc := newBookingService(apts, true)

		if _, err := svc.BookAppointment(ctx, "u1", req); !errors.Is(err, ErrSlotTaken) {
			t.Fatalf("err = %v, want ErrSlotTaken", err)
		}
	})

	t.Run("rejects a start time outside working hours", func(t *testing.T) {
		svc := newBookingService(&stubAppointments{}, true)

		off := models.BookingRequest{DoctorID: "doc1", Date: "2026-03-02", StartTime: "13:00"}
		if _, err := svc.BookAppointment(ctx, "u1", off); !errors.Is(err, ErrSlotTaken) {
			t.Fatalf("err = %v, want ErrSlotTaken for unoffered slot", err)
		}
	})

	t.Run("rejects a vacation day", func(t *testing.T) {
		svc := newBookingService(&stubAppointments{}, true)
		svc.Schedules = &stubSchedules{
			hours:     []models.WorkingHoursEntry{{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"}},
			vacations: []models.VacationRange{{StartDate: "2026-03-02", EndDate: "2026-03-02"}},
		}

		if _, err := svc.BookAppointment(ctx, "u1", req); !errors.Is(err, ErrDayUnavailable) {
			t.Fatalf("err = %v, want ErrDayUnavailable", err)
		}
	})

	t.Run("requires an accepted connection", func(t *testing.T) {
		svc := newBookingService(&stubAppointments{}, false)

		if _, err := svc.BookAppointment(ctx, "u1", req); !errors.Is(err, ErrNotConnected) {
			t.Fatalf("err = %v, want ErrNotConnected", err)
		}
	})
}
