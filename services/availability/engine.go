// Package availability computes bookable time slots and calendar-day
// availability for a doctor from caller-supplied snapshots. Every function is
// pure: no I/O, no shared state, safe for concurrent use.
package availability

import (
	"sort"
	"time"

	"medibook/models"
)

// DayAvailability classifies a calendar date for a doctor.
type DayAvailability string

const (
	DayAvailable   DayAvailability = "available"
	DayUnavailable DayAvailability = "unavailable"
)

// OverlapPolicy selects how an existing appointment excludes a candidate slot.
type OverlapPolicy int

const (
	// OverlapStartContainment excludes a candidate only when its start time
	// falls inside an appointment's occupied interval. A candidate whose tail
	// crosses into a later appointment is still offered. This mirrors the
	// booking screens this service replaced and is the default.
	OverlapStartContainment OverlapPolicy = iota
	// OverlapFullInterval excludes a candidate when the half-open candidate
	// window intersects the appointment's window at all.
	OverlapFullInterval
)

// DefaultSlotMinutes is the bookable slot width.
const DefaultSlotMinutes = 30

// Options tune the slot computation.
type Options struct {
	SlotMinutes int
	Overlap     OverlapPolicy
}

func (o Options) slotMinutes() int {
	if o.SlotMinutes <= 0 {
		return DefaultSlotMinutes
	}
	return o.SlotMinutes
}

// ClassifyDate reports whether a doctor can take bookings on the given date.
// A date is unavailable when it lies strictly before today (calendar-day
// comparison, time of day ignored), falls inside any vacation range
// (inclusive bounds), or has no working-hours entry for its weekday.
func ClassifyDate(date time.Time, hours []models.WorkingHoursEntry, vacations []models.VacationRange, today time.Time) DayAvailability {
	ds := date.Format(DateLayout)
	if ds < today.Format(DateLayout) {
		return DayUnavailable
	}
	if onVacation(ds, vacations) {
		return DayUnavailable
	}
	weekday := int(date.Weekday())
	for _, h := range hours {
		if h.DayOfWeek == weekday {
			return DayAvailable
		}
	}
	return DayUnavailable
}

// ComputeAvailableSlots returns the ordered "HH:MM" start times a patient can
// book on the given date. The cursor walks each matching working-hours window
// in fixed steps; a candidate is dropped when a non-cancelled appointment on
// the same date occupies it under the configured overlap policy. Vacation and
// weekday checks are repeated here so a stale caller gets an empty list
// rather than phantom slots. Entries with malformed times are skipped.
func ComputeAvailableSlots(date time.Time, hours []models.WorkingHoursEntry, vacations []models.VacationRange, appointments []models.Appointment, opts Options) []string {
	ds := date.Format(DateLayout)
	if onVacation(ds, vacations) {
		return nil
	}

	step := opts.slotMinutes()
	weekday := int(date.Weekday())
	seen := make(map[string]bool)
	var slots []string

	for _, h := range hours {
		if h.DayOfWeek != weekday {
			continue
		}
		start, err := ParseClock(h.StartTime)
		if err != nil {
			continue
		}
		end, err := ParseClock(h.EndTime)
		if err != nil {
			continue
		}

		for cur := start; cur < end; cur += step {
			slot := FormatClock(cur)
			if seen[slot] {
				continue
			}
			if occupied(ds, slot, FormatClock(cur+step), appointments, opts.Overlap) {
				continue
			}
			seen[slot] = true
			slots = append(slots, slot)
		}
	}

	// Multiple windows for one weekday may emit out of order; present a
	// single ascending sequence.
	sort.Strings(slots)
	return slots
}

// IsSlotStillFree is the last-moment re-check before committing a booking:
// it narrows, but cannot close, the race window between rendering the slot
// list and writing the booking. Mutual exclusion is the storage layer's job.
func IsSlotStillFree(date, startTime string, appointments []models.Appointment) bool {
	for _, apt := range appointments {
		if apt.Status == models.AppointmentCancelled {
			continue
		}
		if apt.Date == date && apt.StartTime == startTime {
			return false
		}
	}
	return true
}

func onVacation(ds string, vacations []models.VacationRange) bool {
	for _, v := range vacations {
		if v.StartDate <= ds && ds <= v.EndDate {
			return true
		}
	}
	return false
}

func occupied(ds, slotStart, slotEnd string, appointments []models.Appointment, policy OverlapPolicy) bool {
	for _, apt := range appointments {
		if apt.Status == models.AppointmentCancelled || apt.Date != ds {
			continue
		}
		switch policy {
		case OverlapFullInterval:
			// Half-open windows: [slotStart, slotEnd) vs [apt.Start, apt.End).
			if slotStart < apt.EndTime && apt.StartTime < slotEnd {
				return true
			}
		default:
			if apt.StartTime <= slotStart && slotStart < apt.EndTime {
				return true
			}
		}
	}
	return false
}
