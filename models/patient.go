package models

import "time"

// Patient is the role document for patient accounts. DateOfBirth is a
// calendar date in "2006-01-02" form.
type Patient struct {
	ID          string    `bson:"id" json:"id"`
	UserID      string    `bson:"user_id" json:"userId"`
	DateOfBirth string    `bson:"date_of_birth" json:"dateOfBirth"`
	Address     string    `bson:"address" json:"address"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
}

// PatientSummary is the roster view a doctor sees of a connected patient.
type PatientSummary struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
}
