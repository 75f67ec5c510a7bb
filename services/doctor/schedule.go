package doctor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medibook/models"
	"medibook/services/availability"

	"github.com/google/uuid"
)

var (
	ErrBadTimeRange    = errors.New("start time must be before end time")
	ErrBadDateRange    = errors.New("start date must not be after end date")
	ErrWeekdayOccupied = errors.New("working hours for this weekday already exist")
)

func (s *DefaultDoctorService) ListWorkingHours(_ context.Context, userID string) ([]models.WorkingHoursEntry, error) {
	doc, err := s.doctorFor(userID)
	if err != nil {
		return nil, err
	}
	hours, err := s.Schedules.ListWorkingHours(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list working hours: %w", err)
	}
	return hours, nil
}

// AddWorkingHours stores one weekday window. Each weekday holds at most one
// window; the unique index backs this up against concurrent writers.
func (s *DefaultDoctorService) AddWorkingHours(_ context.Context, userID string, dayOfWeek int, startTime, endTime string) (*models.WorkingHoursEntry, error) {
	doc, err := s.doctorFor(userID)
	if err != nil {
		return nil, err
	}
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, fmt.Errorf("dayOfWeek must be 0 (Sunday) through 6 (Saturday)")
	}
	start, err := availability.ParseClock(startTime)
	if err != nil {
		return nil, err
	}
	end, err := availability.ParseClock(endTime)
	if err != nil {
		return nil, err
	}
	if start >= end {
		return nil, ErrBadTimeRange
	}

	existing, err := s.Schedules.ListWorkingHours(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list working hours: %w", err)
	}
	for _, h := range existing {
		if h.DayOfWeek == dayOfWeek {
			return nil, ErrWeekdayOccupied
		}
	}

	entry := &models.WorkingHoursEntry{
		ID:        uuid.NewString(),
		DoctorID:  doc.ID,
		DayOfWeek: dayOfWeek,
		StartTime: startTime,
		EndTime:   endTime,
		CreatedAt: time.Now(),
	}
	if err := s.Schedules.AddWorkingHours(entry); err != nil {
		return nil, fmt.Errorf("failed to add working hours: %w", err)
	}
	return entry, nil
}

func (s *DefaultDoctorService) DeleteWorkingHours(_ context.Context, userID, entryID string) error {
	doc, err := s.doctorFor(userID)
	if err != nil {
		return err
	}
	if err := s.Schedules.DeleteWorkingHours(doc.ID, entryID); err != nil {
		return fmt.Errorf("failed to delete working hours: %w", err)
	}
	return nil
}

// ListVacations returns ranges that have not fully passed yet.
func (s *DefaultDoctorService) ListVacations(_ context.Context, userID string) ([]models.VacationRange, error) {
	doc, err := s.doctorFor(userID)
	if err != nil {
		return nil, err
	}
	today := time.Now().Format(availability.DateLayout)
	vacations, err := s.Schedules.ListVacationsEndingOnOrAfter(doc.ID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list vacations: %w", err)
	}
	return vacations, nil
}

func (s *DefaultDoctorService) AddVacation(_ context.Context, userID, startDate, endDate, reason string) (*models.VacationRange, error) {
	doc, err := s.doctorFor(userID)
	if err != nil {
		return nil, err
	}
	for _, d := range []string{startDate, endDate} {
		if _, err := time.Parse(availability.DateLayout, d); err != nil {
			return nil, fmt.Errorf("dates must be YYYY-MM-DD: %q", d)
		}
	}
	if startDate > endDate {
		return nil, ErrBadDateRange
	}

	v := &models.VacationRange{
		ID:        uuid.NewString(),
		DoctorID:  doc.ID,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    reason,
		CreatedAt: time.Now(),
	}
	if err := s.Schedules.AddVacation(v); err != nil {
		return nil, fmt.Errorf("failed to add vacation: %w", err)
	}
	return v, nil
}

func (s *DefaultDoctorService) DeleteVacation(_ context.Context, userID, vacationID string) error {
	doc, err := s.doctorFor(userID)
	if err != nil {
		return err
	}
	if err := s.Schedules.DeleteVacation(doc.ID, vacationID); err != nil {
		return fmt.Errorf("failed to delete vacation: %w", err)
	}
	return nil
}
