package models

import "time"

// Appointment statuses. Cancelled appointments do not occupy a slot.
const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// Appointment is a booked 30-minute visit. Date is "2006-01-02", times are
// "HH:MM" zero-padded so plain string comparison orders them correctly.
type Appointment struct {
	ID        string    `bson:"id" json:"id"`
	DoctorID  string    `bson:"doctor_id" json:"doctorId"`
	PatientID string    `bson:"patient_id" json:"patientId"`
	Date      string    `bson:"date" json:"date"`
	StartTime string    `bson:"start_time" json:"startTime"`
	EndTime   string    `bson:"end_time" json:"endTime"`
	Status    string    `bson:"status" json:"status"`
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// AppointmentView decorates an appointment with the counterpart's name for
// list screens.
type AppointmentView struct {
	Appointment
	DoctorName     string `json:"doctorName,omitempty"`
	Specialization string `json:"specialization,omitempty"`
	PatientName    string `json:"patientName,omitempty"`
}

// BookingRequest is a patient's request to book a slot.
type BookingRequest struct {
	DoctorID  string `json:"doctorId" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
}

// DaySlots is the availability answer for one doctor and date.
type DaySlots struct {
	Date      string   `json:"date"`
	Available bool     `json:"available"`
	Slots     []string `json:"slots"`
}
