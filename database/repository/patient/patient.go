package patientRepo

import "medibook/models"

// PatientRepository defines persistence operations for patient role documents.
type PatientRepository interface {
	Create(p *models.Patient) error
	GetByID(id string) (*models.Patient, error)
	GetByUserID(userID string) (*models.Patient, error)
	GetByIDs(ids []string) ([]models.Patient, error)
	UpdateAddress(id, address string) error
	Delete(id string) error
}
