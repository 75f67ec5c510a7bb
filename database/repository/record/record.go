package recordRepo

import "medibook/models"

// RecordRepository defines persistence operations for medical records.
type RecordRepository interface {
	Create(rec *models.MedicalRecord) error
	ListByPatient(patientID string) ([]models.MedicalRecord, error)
	ListByPatientAndDoctor(patientID, doctorID string) ([]models.MedicalRecord, error)
}
