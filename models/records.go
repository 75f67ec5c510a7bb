package models

import "time"

// MedicalRecord is a visit summary a doctor writes for a connected patient.
type MedicalRecord struct {
	ID            string         `bson:"id" json:"id"`
	PatientID     string         `bson:"patient_id" json:"patientId"`
	DoctorID      string         `bson:"doctor_id" json:"doctorId"`
	Date          string         `bson:"date" json:"date"`
	Diagnosis     string         `bson:"diagnosis" json:"diagnosis"`
	Treatment     string         `bson:"treatment" json:"treatment"`
	Notes         string         `bson:"notes,omitempty" json:"notes,omitempty"`
	Prescriptions []Prescription `bson:"prescriptions,omitempty" json:"prescriptions,omitempty"`
	CreatedAt     time.Time      `bson:"created_at" json:"createdAt"`
}

// Prescription is embedded in the medical record it belongs to.
type Prescription struct {
	ID             string `bson:"id" json:"id"`
	MedicationName string `bson:"medication_name" json:"medicationName"`
	Dosage         string `bson:"dosage" json:"dosage"`
	Frequency      string `bson:"frequency" json:"frequency"`
	Duration       string `bson:"duration" json:"duration"`
	Notes          string `bson:"notes,omitempty" json:"notes,omitempty"`
}
