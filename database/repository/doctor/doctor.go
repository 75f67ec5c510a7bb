package doctorRepo

import "medibook/models"

// DoctorRepository defines persistence operations for doctor role documents.
type DoctorRepository interface {
	Create(doc *models.Doctor) error
	GetByID(id string) (*models.Doctor, error)
	GetByUserID(userID string) (*models.Doctor, error)
	GetByIDs(ids []string) ([]models.Doctor, error)
	ListByApprovalStatus(status string) ([]models.Doctor, error)
	ListApproved(filter models.DoctorSearchFilter) ([]models.Doctor, error)
	SetApprovalStatus(id, status string) error
	UpdateAddress(id, address string) error
	Delete(id string) error
}
