package models

import "time"

// Doctor approval states, set by the insurance admin portal.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// Specializations is the fixed list offered at registration and search.
var Specializations = []string{
	"General Practice", "Family Medicine", "Internal Medicine", "Pediatrics",
	"Obstetrics & Gynecology", "Cardiology", "Dermatology", "Endocrinology",
	"Gastroenterology", "Neurology", "Oncology", "Ophthalmology", "Orthopedics",
	"Otolaryngology", "Psychiatry", "Pulmonology", "Radiology", "Rheumatology",
	"Urology", "Dentistry", "Oral Surgery", "Orthodontics", "Emergency Medicine",
	"Anesthesiology", "Physical Medicine", "Sports Medicine",
	"Allergy & Immunology", "Infectious Disease", "Nephrology", "Pain Medicine",
	"Plastic Surgery", "Vascular Surgery",
}

// IsValidSpecialization reports whether s is one of the offered specializations.
func IsValidSpecialization(s string) bool {
	for _, sp := range Specializations {
		if sp == s {
			return true
		}
	}
	return false
}

// Doctor is the role document for doctor accounts.
type Doctor struct {
	ID             string    `bson:"id" json:"id"`
	UserID         string    `bson:"user_id" json:"userId"`
	Specialization string    `bson:"specialization" json:"specialization"`
	Address        string    `bson:"address" json:"address"`
	ApprovalStatus string    `bson:"approval_status" json:"approvalStatus"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
}

// DoctorSummary is the public search/listing view of a doctor.
type DoctorSummary struct {
	ID             string `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Specialization string `json:"specialization"`
	Address        string `json:"address"`
	PhoneNumber    string `json:"phoneNumber"`
	ProfileImage   string `json:"profileImage,omitempty"`
}

// DoctorSearchFilter narrows doctor search results.
type DoctorSearchFilter struct {
	Specialization string
	Name           string
}
