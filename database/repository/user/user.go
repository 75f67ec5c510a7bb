package userRepo

import (
	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines persistence operations for account records.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByIDs(ids []string) ([]models.User, error)
	UpdateSetDocument(id string, updateDoc bson.M) error
	Delete(id string) error
}
