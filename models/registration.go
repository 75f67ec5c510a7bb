package models

// RegisterRequest is the sign-up payload. Role-specific fields are required
// for the matching role only.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	Role        string `json:"role" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`

	// Doctor fields.
	Specialization string `json:"specialization,omitempty"`
	Address        string `json:"address,omitempty"`

	// Patient fields.
	DateOfBirth string `json:"dateOfBirth,omitempty"`
}

// LoginRequest is the sign-in payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ForgotPasswordRequest starts the email reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest completes the reset flow with the emailed token.
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}
