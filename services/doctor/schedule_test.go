package doctor

import (
	"context"
	"errors"
	"testing"

	doctorRepo "medibook/database/repository/doctor"
	scheduleRepo "medibook/database/repository/schedule"
	"medibook/models"
)

// stubDoctors resolves a fixed doctor document; unimplemented methods panic.
type stubDoctors struct {
	doctorRepo.DoctorRepository
	doc *models.Doctor
}

func (s *stubDoctors) GetByUserID(string) (*models.Doctor, error) { return s.doc, nil }

type stubSchedules struct {
	scheduleRepo.ScheduleRepository
	hours     []models.WorkingHoursEntry
	vacations []models.VacationRange
	added     *models.WorkingHoursEntry
}

func (s *stubSchedules) ListWorkingHours(string) ([]models.WorkingHoursEntry, error) {
	return s.hours, nil
}

func (s *stubSchedules) AddWorkingHours(e *models.WorkingHoursEntry) error {
	s.added = e
	return nil
}

func (s *stubSchedules) AddVacation(v *models.VacationRange) error {
	s.vacations = append(s.vacations, *v)
	return nil
}

func newScheduleService(sched *stubSchedules) *DefaultDoctorService {
	return &DefaultDoctorService{
		Doctors:   &stubDoctors{doc: &models.Doctor{ID: "doc1", UserID: "u1", ApprovalStatus: models.ApprovalApproved}},
		Schedules: sched,
	}
}

func TestAddWorkingHours(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a valid window", func(t *testing.T) {
		sched := &stubSchedules{}
		svc := newScheduleService(sched)

		entry, err := svc.AddWorkingHours(ctx, "u1", 1, "09:00", "12:00")
		if err != nil {
			t.Fatal(err)
		}
		if entry.DoctorID != "doc1" || entry.DayOfWeek != 1 {
			t.Fatalf("unexpected entry %+v", entry)
		}
		if sched.added == nil || sched.added.ID == "" {
			t.Fatal("entry was not persisted with an id")
		}
	})

	t.Run("rejects malformed times", func(t *testing.T) {
		svc := newScheduleService(&stubSchedules{})
		if _, err := svc.AddWorkingHours(ctx, "u1", 1, "9am", "12:00"); err == nil {
			t.Fatal("expected error for malformed start time")
		}
	})

	t.Run("rejects inverted window", func(t *testing.T) {
		svc := newScheduleService(&stubSchedules{})
		if _, err := svc.AddWorkingHours(ctx, "u1", 1, "12:00", "09:00"); !errors.Is(err, ErrBadTimeRange) {
			t.Fatalf("err = %v, want ErrBadTimeRange", err)
		}
		if _, err := svc.AddWorkingHours(ctx, "u1", 1, "09:00", "09:00"); !errors.Is(err, ErrBadTimeRange) {
			t.Fatalf("err = %v, want ErrBadTimeRange for empty window", err)
		}
	})

	t.Run("rejects out-of-range weekday", func(t *testing.T) {
		svc := newScheduleService(&stubSchedules{})
		if _, err := svc.AddWorkingHours(ctx, "u1", 7, "09:00", "12:00"); err == nil {
			t.Fatal("expected error for dayOfWeek 7")
		}
	})

	t.Run("rejects a second window on the same weekday", func(t *testing.T) {
		sched := &stubSchedules{hours: []models.WorkingHoursEntry{
			{ID: "wh1", DoctorID: "doc1", DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"},
		}}
		svc := newScheduleService(sched)

		if _, err := svc.AddWorkingHours(ctx, "u1", 1, "14:00", "17:00"); !errors.Is(err, ErrWeekdayOccupied) {
			t.Fatalf("err = %v, want ErrWeekdayOccupied", err)
		}
		if _, err := svc.AddWorkingHours(ctx, "u1", 2, "14:00", "17:00"); err != nil {
			t.Fatalf("different weekday should be accepted, got %v", err)
		}
	})
}

func TestAddVacation(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a valid range", func(t *testing.T) {
		sched := &stubSchedules{}
		svc := newScheduleService(sched)

		v, err := svc.AddVacation(ctx, "u1", "2026-07-01", "2026-07-14", "summer leave")
		if err != nil {
			t.Fatal(err)
		}
		if v.DoctorID != "doc1" || len(sched.vacations) != 1 {
			t.Fatalf("vacation not persisted: %+v", v)
		}
	})

	t.Run("accepts a single-day range", func(t *testing.T) {
		svc := newScheduleService(&stubSchedules{})
		if _, err := svc.AddVacation(ctx, "u1", "2026-07-01", "2026-07-01", ""); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		svc := newScheduleService(&stubSchedules{})
		if _, err := svc.AddVacation(ctx, "u1", "2026-07-14", "2026-07-01", ""); !errors.Is(err, ErrBadDateRange) {
			t.Fatalf("err = %v, want ErrBadDateRange", err)
		}
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		svc := newScheduleService(&stubSchedules{})
		if _, err := svc.AddVacation(ctx, "u1", "July 1", "2026-07-14", ""); err == nil {
			t.Fatal("expected error for malformed start date")
		}
	})
}
