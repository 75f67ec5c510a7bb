package models

import "time"

// Role names for account records.
const (
	RoleDoctor    = "doctor"
	RolePatient   = "patient"
	RoleInsurance = "insurance"
)

// User is the base account record shared by every role. Role-specific data
// lives in the doctors / patients collections keyed by UserID.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	FirstName    string    `bson:"first_name" json:"firstName"`
	LastName     string    `bson:"last_name" json:"lastName"`
	Role         string    `bson:"role" json:"role"`
	PhoneNumber  string    `bson:"phone_number" json:"phoneNumber"`
	ProfileImage string    `bson:"profile_image,omitempty" json:"profileImage,omitempty"`
	FCMToken     string    `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}

// AuthResponse is returned on successful login.
type AuthResponse struct {
	ID           string   `json:"id"`
	Token        string   `json:"token"`
	Email        string   `json:"email"`
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	Role         string   `json:"role"`
	PhoneNumber  string   `json:"phoneNumber"`
	ProfileImage string   `json:"profileImage,omitempty"`
	Doctor       *Doctor  `json:"doctor,omitempty"`
	Patient      *Patient `json:"patient,omitempty"`
}

// Profile bundles the account record with its role document.
type Profile struct {
	User    User     `json:"user"`
	Doctor  *Doctor  `json:"doctor,omitempty"`
	Patient *Patient `json:"patient,omitempty"`
}
