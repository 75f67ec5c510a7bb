package scheduleRepo

import "medibook/models"

// ScheduleRepository holds a doctor's recurring working hours and vacation
// blackout ranges.
type ScheduleRepository interface {
	ListWorkingHours(doctorID string) ([]models.WorkingHoursEntry, error)
	AddWorkingHours(entry *models.WorkingHoursEntry) error
	DeleteWorkingHours(doctorID, entryID string) error

	ListVacations(doctorID string) ([]models.VacationRange, error)
	ListVacationsEndingOnOrAfter(doctorID, date string) ([]models.VacationRange, error)
	AddVacation(v *models.VacationRange) error
	DeleteVacation(doctorID, vacationID string) error
}
