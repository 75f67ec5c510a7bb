package connectionRepo

import "medibook/models"

// ConnectionRepository defines persistence operations for doctor-patient
// connection requests.
type ConnectionRepository interface {
	Create(req *models.ConnectionRequest) error
	GetByID(id string) (*models.ConnectionRequest, error)
	GetByPair(doctorID, patientID string) (*models.ConnectionRequest, error)
	ListByDoctorAndStatus(doctorID, status string) ([]models.ConnectionRequest, error)
	ListByPatient(patientID string) ([]models.ConnectionRequest, error)
	SetStatus(id, status string) error
	SetPairStatus(doctorID, patientID, fromStatus, toStatus string) error
	DeletePending(doctorID, patientID string) error
}
