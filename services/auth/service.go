package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medibook/config"
	doctorRepo "medibook/database/repository/doctor"
	patientRepo "medibook/database/repository/patient"
	userRepo "medibook/database/repository/user"
	"medibook/models"
	"medibook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrAccountPending     = errors.New("your account is awaiting approval")
	ErrAccountRejected    = errors.New("your registration was not approved")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

const resetKeyPrefix = "reset:"

// AuthService covers registration, sign-in and the password reset flow.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	SignOut(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error
}

// DefaultAuthService is the production AuthService.
type DefaultAuthService struct {
	Users    userRepo.UserRepository
	Doctors  doctorRepo.DoctorRepository
	Patients patientRepo.PatientRepository
	Throttle LoginThrottle
}

func tokenLifetime() time.Duration {
	hours := config.AppConfig.TokenLifetimeHours
	if hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

// Register creates the account record plus the role document. Doctor
// accounts start pending and get no token until an insurance admin approves
// them; patients are signed in immediately.
func (s *DefaultAuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	if req.Role != models.RoleDoctor && req.Role != models.RolePatient {
		return nil, fmt.Errorf("unsupported role %q", req.Role)
	}

	existing, err := s.Users.GetByEmail(req.Email)
	if err != nil {
		utils.GetLogger().Error("Register: failed to check email", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	dob := ""
	if req.Role == models.RolePatient {
		if _, err := time.Parse("2006-01-02", req.DateOfBirth); err != nil {
			return nil, fmt.Errorf("dateOfBirth must be a YYYY-MM-DD date")
		}
		dob = req.DateOfBirth
	}
	if err := ValidatePassword(req.Password, dob); err != nil {
		return nil, err
	}
	if req.Role == models.RoleDoctor && !models.IsValidSpecialization(req.Specialization) {
		return nil, fmt.Errorf("unknown specialization %q", req.Specialization)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
		PhoneNumber:  req.PhoneNumber,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Users.Create(user); err != nil {
		utils.GetLogger().Error("Register: failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	resp := &models.AuthResponse{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Role:        user.Role,
		PhoneNumber: user.PhoneNumber,
	}

	switch req.Role {
	case models.RoleDoctor:
		doc := &models.Doctor{
			ID:             uuid.NewString(),
			UserID:         user.ID,
			Specialization: req.Specialization,
			Address:        req.Address,
			ApprovalStatus: models.ApprovalPending,
			CreatedAt:      now,
		}
		if err := s.Doctors.Create(doc); err != nil {
			utils.GetLogger().Error("Register: failed to create doctor document", zap.Error(err))
			return nil, fmt.Errorf("registration failed, please try again")
		}
		// No token: the account cannot sign in until approved.
		resp.Doctor = doc
	case models.RolePatient:
		p := &models.Patient{
			ID:          uuid.NewString(),
			UserID:      user.ID,
			DateOfBirth: dob,
			Address:     req.Address,
			CreatedAt:   now,
		}
		if err := s.Patients.Create(p); err != nil {
			utils.GetLogger().Error("Register: failed to create patient document", zap.Error(err))
			return nil, fmt.Errorf("registration failed, please try again")
		}
		resp.Patient = p
		token, err := s.issueToken(ctx, user)
		if err != nil {
			return nil, err
		}
		resp.Token = token
	}
	return resp, nil
}

// Login authenticates an account. The throttle gate runs before the
// credential check so a locked account cannot even probe passwords; wrong
// credentials record a failure, a success clears the history. Approved
// status is checked only after the password verifies so the endpoint leaks
// nothing about unapproved accounts to guessers.
func (s *DefaultAuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	now := time.Now()
	status, err := s.Throttle.IsLockedOut(ctx, req.Email, now)
	if err != nil {
		utils.GetLogger().Error("Login: throttle check failed", zap.Error(err))
		return nil, fmt.Errorf("sign in failed, please try again")
	}
	if status.Locked {
		return nil, &LockedError{RemainingSeconds: status.RemainingSeconds}
	}

	user, err := s.Users.GetByEmail(req.Email)
	if err != nil {
		utils.GetLogger().Error("Login: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("sign in failed, please try again")
	}
	if user == nil {
		s.noteFailure(ctx, req.Email, now)
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.noteFailure(ctx, req.Email, now)
		return nil, ErrInvalidCredentials
	}

	resp := &models.AuthResponse{
		ID:           user.ID,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Role:         user.Role,
		PhoneNumber:  user.PhoneNumber,
		ProfileImage: user.ProfileImage,
	}

	switch user.Role {
	case models.RoleDoctor:
		doc, err := s.Doctors.GetByUserID(user.ID)
		if err != nil || doc == nil {
			utils.GetLogger().Error("Login: failed to fetch doctor document", zap.String("userID", user.ID), zap.Error(err))
			return nil, fmt.Errorf("sign in failed, please try again")
		}
		switch doc.ApprovalStatus {
		case models.ApprovalApproved:
		case models.ApprovalRejected:
			return nil, ErrAccountRejected
		default:
			return nil, ErrAccountPending
		}
		resp.Doctor = doc
	case models.RolePatient:
		p, err := s.Patients.GetByUserID(user.ID)
		if err != nil {
			utils.GetLogger().Error("Login: failed to fetch patient document", zap.String("userID", user.ID), zap.Error(err))
			return nil, fmt.Errorf("sign in failed, please try again")
		}
		resp.Patient = p
	}

	if err := s.Throttle.Clear(ctx, req.Email); err != nil {
		utils.GetLogger().Warn("Login: failed to clear throttle", zap.Error(err))
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, err
	}
	resp.Token = token
	return resp, nil
}

// SignOut revokes the token by deleting its cached hash. Idempotent.
func (s *DefaultAuthService) SignOut(ctx context.Context, token string) error {
	key := utils.AuthCachePrefix + utils.HashToken(token)
	if err := utils.GetAuthCacheClient().Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// ForgotPassword stores a short-lived reset token and mails it out. It
// reports success even when the email is unknown so the endpoint cannot be
// used to enumerate accounts.
func (s *DefaultAuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.Users.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("ForgotPassword: failed to fetch user", zap.Error(err))
		return fmt.Errorf("password reset failed, please try again")
	}
	if user == nil {
		return nil
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	ttl := time.Duration(config.AppConfig.ResetTokenTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	if err := utils.GetResetCacheClient().Set(ctx, resetKeyPrefix+email, utils.HashToken(token), ttl).Err(); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	body := fmt.Sprintf("Use this code to reset your password (valid for %d minutes): %s", int(ttl.Minutes()), token)
	if err := utils.SendEmail(email, "Password reset", body); err != nil {
		utils.GetLogger().Error("ForgotPassword: failed to send email", zap.Error(err))
	}
	return nil
}

// ResetPassword consumes the emailed token and sets the new password. The
// new password goes through the same policy as registration.
func (s *DefaultAuthService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	client := utils.GetResetCacheClient()
	stored, err := client.Get(ctx, resetKeyPrefix+req.Email).Result()
	if err != nil || stored != utils.HashToken(req.Token) {
		return ErrInvalidResetToken
	}

	user, err := s.Users.GetByEmail(req.Email)
	if err != nil || user == nil {
		return ErrInvalidResetToken
	}

	dob := ""
	if user.Role == models.RolePatient {
		if p, err := s.Patients.GetByUserID(user.ID); err == nil && p != nil {
			dob = p.DateOfBirth
		}
	}
	if err := ValidatePassword(req.NewPassword, dob); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	update := bson.M{"password_hash": string(hash), "updated_at": time.Now()}
	if err := s.Users.UpdateSetDocument(user.ID, update); err != nil {
		utils.GetLogger().Error("ResetPassword: failed to update password", zap.Error(err))
		return fmt.Errorf("password reset failed, please try again")
	}

	// Token is single use; a clean throttle lets the user sign in at once.
	client.Del(ctx, resetKeyPrefix+req.Email)
	if err := s.Throttle.Clear(ctx, req.Email); err != nil {
		utils.GetLogger().Warn("ResetPassword: failed to clear throttle", zap.Error(err))
	}
	return nil
}

func (s *DefaultAuthService) issueToken(ctx context.Context, user *models.User) (string, error) {
	token, err := utils.GenerateToken(user.ID, user.Email, user.Role, tokenLifetime())
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	key := utils.AuthCachePrefix + utils.HashToken(token)
	if err := utils.GetAuthCacheClient().Set(ctx, key, user.ID, tokenLifetime()).Err(); err != nil {
		return "", fmt.Errorf("failed to cache token: %w", err)
	}
	return token, nil
}

func (s *DefaultAuthService) noteFailure(ctx context.Context, email string, at time.Time) {
	if err := s.Throttle.RecordFailure(ctx, email, at); err != nil {
		utils.GetLogger().Warn("Login: failed to record attempt", zap.Error(err))
	}
}
