package availability

import (
	"reflect"
	"testing"
	"time"

	"medibook/models"
)

var (
	// Monday.
	monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	today  = time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC)
)

func mondayHours(start, end string) []models.WorkingHoursEntry {
	return []models.WorkingHoursEntry{
		{ID: "wh1", DoctorID: "doc1", DayOfWeek: 1, StartTime: start, EndTime: end},
	}
}

func TestClassifyDate_PastDate(t *testing.T) {
	past := today.AddDate(0, 0, -1)
	hours := []models.WorkingHoursEntry{{DayOfWeek: int(past.Weekday()), StartTime: "09:00", EndTime: "17:00"}}

	if got := ClassifyDate(past, hours, nil, today); got != DayUnavailable {
		t.Fatalf("past date classified %q, want unavailable", got)
	}
}

func TestClassifyDate_TodayIsNotPast(t *testing.T) {
	hours := []models.WorkingHoursEntry{{DayOfWeek: int(today.Weekday()), StartTime: "09:00", EndTime: "17:00"}}

	if got := ClassifyDate(today, hours, nil, today); got != DayAvailable {
		t.Fatalf("today classified %q, want available", got)
	}
}

func TestClassifyDate_Vacation(t *testing.T) {
	vacations := []models.VacationRange{
		{StartDate: "2026-03-01", EndDate: "2026-03-03"},
	}

	if got := ClassifyDate(monday, mondayHours("09:00", "17:00"), vacations, today); got != DayUnavailable {
		t.Fatalf("vacation date classified %q, want unavailable", got)
	}
}

func TestClassifyDate_VacationBoundsInclusive(t *testing.T) {
	vacations := []models.VacationRange{
		{StartDate: "2026-03-02", EndDate: "2026-03-02"},
	}

	if got := ClassifyDate(monday, mondayHours("09:00", "17:00"), vacations, today); got != DayUnavailable {
		t.Fatalf("single-day vacation classified %q, want unavailable", got)
	}

	dayAfter := monday.AddDate(0, 0, 1)
	hours := []models.WorkingHoursEntry{{DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00"}}
	if got := ClassifyDate(dayAfter, hours, vacations, today); got != DayAvailable {
		t.Fatalf("day after vacation classified %q, want available", got)
	}
}

func TestClassifyDate_NoWorkingHoursForWeekday(t *testing.T) {
	// Schedule only covers Tuesday; Monday has no entry.
	hours := []models.WorkingHoursEntry{{DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00"}}

	if got := ClassifyDate(monday, hours, nil, today); got != DayUnavailable {
		t.Fatalf("weekday without hours classified %q, want unavailable", got)
	}
}

func TestComputeAvailableSlots_ExampleScenario(t *testing.T) {
	// Monday 09:00-12:00, one scheduled appointment 10:00-10:30.
	appointments := []models.Appointment{
		{DoctorID: "doc1", Date: "2026-03-02", StartTime: "10:00", EndTime: "10:30", Status: models.AppointmentScheduled},
	}

	got := ComputeAvailableSlots(monday, mondayHours("09:00", "12:00"), nil, appointments, Options{})
	want := []string{"09:00", "09:30", "10:30", "11:00", "11:30"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("slots = %v, want %v", got, want)
	}
}

func TestComputeAvailableSlots_WithinWorkingWindow(t *testing.T) {
	got := ComputeAvailableSlots(monday, mondayHours("09:00", "11:00"), nil, nil, Options{})
	for _, s := range got {
		if s < "09:00" || s >= "11:00" {
			t.Fatalf("slot %s outside working window [09:00, 11:00)", s)
		}
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 slots, got %v", got)
	}
}

func TestComputeAvailableSlots_CancelledDoesNotExclude(t *testing.T) {
	appointments := []models.Appointment{
		{Date: "2026-03-02", StartTime: "10:00", EndTime: "10:30", Status: models.AppointmentCancelled},
	}

	got := ComputeAvailableSlots(monday, mondayHours("09:00", "12:00"), nil, appointments, Options{})
	found := false
	for _, s := range got {
		if s == "10:00" {
			found = true
		}
	}
	if !found {
		t.Fatalf("cancelled appointment removed the 10:00 slot: %v", got)
	}
}

func TestComputeAvailableSlots_VacationShortCircuits(t *testing.T) {
	vacations := []models.VacationRange{{StartDate: "2026-03-02", EndDate: "2026-03-02"}}

	if got := ComputeAvailableSlots(monday, mondayHours("09:00", "12:00"), vacations, nil, Options{}); len(got) != 0 {
		t.Fatalf("expected no slots on a vacation day, got %v", got)
	}
}

func TestComputeAvailableSlots_NoEntryForWeekday(t *testing.T) {
	hours := []models.WorkingHoursEntry{{DayOfWeek: 3, StartTime: "09:00", EndTime: "12:00"}}

	if got := ComputeAvailableSlots(monday, hours, nil, nil, Options{}); len(got) != 0 {
		t.Fatalf("expected no slots for weekday without hours, got %v", got)
	}
}

func TestComputeAvailableSlots_Idempotent(t *testing.T) {
	appointments := []models.Appointment{
		{Date: "2026-03-02", StartTime: "09:30", EndTime: "10:00", Status: models.AppointmentScheduled},
	}

	first := ComputeAvailableSlots(monday, mondayHours("09:00", "12:00"), nil, appointments, Options{})
	second := ComputeAvailableSlots(monday, mondayHours("09:00", "12:00"), nil, appointments, Options{})
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated calls diverged: %v vs %v", first, second)
	}
}

func TestComputeAvailableSlots_StartContainmentKeepsStraddlingSlot(t *testing.T) {
	// A 10:15-10:45 appointment does not exclude the 10:00 candidate under
	// the start-containment policy, but does under full-interval overlap.
	appointments := []models.Appointment{
		{Date: "2026-03-02", StartTime: "10:15", EndTime: "10:45", Status: models.AppointmentScheduled},
	}

	start := ComputeAvailableSlots(monday, mondayHours("10:00", "11:00"), nil, appointments, Options{Overlap: OverlapStartContainment})
	want := []string{"10:00"}
	if !reflect.DeepEqual(start, want) {
		t.Fatalf("start-containment slots = %v, want %v", start, want)
	}

	full := ComputeAvailableSlots(monday, mondayHours("10:00", "11:00"), nil, appointments, Options{Overlap: OverlapFullInterval})
	if len(full) != 0 {
		t.Fatalf("full-interval slots = %v, want none", full)
	}
}

func TestComputeAvailableSlots_NeverEmitsOccupiedStart(t *testing.T) {
	appointments := []models.Appointment{
		{Date: "2026-03-02", StartTime: "09:00", EndTime: "10:00", Status: models.AppointmentScheduled},
		{Date: "2026-03-02", StartTime: "11:00", EndTime: "11:30", Status: models.AppointmentCompleted},
	}

	got := ComputeAvailableSlots(monday, mondayHours("09:00", "12:00"), nil, appointments, Options{})
	for _, s := range got {
		for _, apt := range appointments {
			if apt.StartTime <= s && s < apt.EndTime {
				t.Fatalf("slot %s overlaps appointment %s-%s", s, apt.StartTime, apt.EndTime)
			}
		}
	}
	want := []string{"10:00", "10:30", "11:30"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("slots = %v, want %v", got, want)
	}
}

func TestComputeAvailableSlots_MergesSplitShift(t *testing.T) {
	hours := []models.WorkingHoursEntry{
		{DayOfWeek: 1, StartTime: "14:00", EndTime: "15:00"},
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"},
	}

	got := ComputeAvailableSlots(monday, hours, nil, nil, Options{})
	want := []string{"09:00", "09:30", "14:00", "14:30"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("split shift slots = %v, want %v", got, want)
	}
}

func TestComputeAvailableSlots_SkipsMalformedEntry(t *testing.T) {
	hours := []models.WorkingHoursEntry{
		{DayOfWeek: 1, StartTime: "9am", EndTime: "noon"},
		{DayOfWeek: 1, StartTime: "13:00", EndTime: "14:00"},
	}

	got := ComputeAvailableSlots(monday, hours, nil, nil, Options{})
	want := []string{"13:00", "13:30"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("slots = %v, want %v", got, want)
	}
}

func TestIsSlotStillFree(t *testing.T) {
	appointments := []models.Appointment{
		{Date: "2026-03-02", StartTime: "10:00", EndTime: "10:30", Status: models.AppointmentScheduled},
		{Date: "2026-03-02", StartTime: "11:00", EndTime: "11:30", Status: models.AppointmentCancelled},
	}

	if IsSlotStillFree("2026-03-02", "10:00", appointments) {
		t.Fatal("10:00 should be taken")
	}
	if !IsSlotStillFree("2026-03-02", "11:00", appointments) {
		t.Fatal("11:00 is only held by a cancelled appointment and should be free")
	}
	if !IsSlotStillFree("2026-03-02", "10:30", appointments) {
		t.Fatal("10:30 should be free")
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"9:30", 0, true},
		{"ab:cd", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock(570); got != "09:30" {
		t.Fatalf("FormatClock(570) = %q", got)
	}
	if got := FormatClock(0); got != "00:00" {
		t.Fatalf("FormatClock(0) = %q", got)
	}
}
