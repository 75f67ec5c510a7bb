package appointmentRepo

import (
	"errors"

	"medibook/models"
)

// ErrSlotTaken is returned when an insert loses the booking race: another
// active appointment already holds the (doctor, date, start time) slot.
var ErrSlotTaken = errors.New("appointment slot already taken")

// AppointmentRepository defines persistence operations for appointments.
type AppointmentRepository interface {
	// Create inserts a new appointment. Returns ErrSlotTaken when the
	// partial unique index rejects a second active booking for the slot.
	Create(apt *models.Appointment) error
	GetByID(id string) (*models.Appointment, error)
	ListByDoctorAndDate(doctorID, date string) ([]models.Appointment, error)
	ListUpcomingByDoctor(doctorID, fromDate string) ([]models.Appointment, error)
	ListUpcomingByPatient(patientID, fromDate string) ([]models.Appointment, error)
	UpdateStatus(id, status string) error
	SetNotes(id, notes string) error
	CountByDoctor(doctorID string) (int64, error)
	CountAll() (int64, error)
}
