package models

import "time"

// Connection request states between a doctor and a patient.
const (
	ConnectionPending  = "pending"
	ConnectionAccepted = "accepted"
	ConnectionRejected = "rejected"
)

// ConnectionRequest links a patient to a doctor. A doctor only treats (and a
// patient only books with) counterparts on an accepted request.
type ConnectionRequest struct {
	ID          string    `bson:"id" json:"id"`
	DoctorID    string    `bson:"doctor_id" json:"doctorId"`
	PatientID   string    `bson:"patient_id" json:"patientId"`
	Status      string    `bson:"status" json:"status"`
	InitiatedBy string    `bson:"initiated_by" json:"initiatedBy"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// ConnectionView decorates a request with the counterpart's public details.
type ConnectionView struct {
	ConnectionRequest
	DoctorName     string `json:"doctorName,omitempty"`
	Specialization string `json:"specialization,omitempty"`
	PatientName    string `json:"patientName,omitempty"`
}
