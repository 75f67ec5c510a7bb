// Package user implements profile reads and updates shared by every role.
package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	doctorRepo "medibook/database/repository/doctor"
	patientRepo "medibook/database/repository/patient"
	userRepo "medibook/database/repository/user"
	"medibook/models"
	"medibook/services/storage"
	"medibook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

var ErrUserNotFound = errors.New("user not found")

// ProfileUpdate carries the editable profile fields. Empty fields are left
// unchanged.
type ProfileUpdate struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
}

// UserService reads and updates account profiles.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*models.Profile, error)
	SetFCMToken(ctx context.Context, userID, token string) error
	UpdateProfilePhoto(ctx context.Context, userID, localFilePath string) (string, error)
}

// DefaultUserService is the production UserService.
type DefaultUserService struct {
	Users    userRepo.UserRepository
	Doctors  doctorRepo.DoctorRepository
	Patients patientRepo.PatientRepository
	Storage  storage.StorageService
}

func (s *DefaultUserService) GetProfile(_ context.Context, userID string) (*models.Profile, error) {
	u, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	profile := &models.Profile{User: *u}
	switch u.Role {
	case models.RoleDoctor:
		doc, err := s.Doctors.GetByUserID(userID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch doctor document: %w", err)
		}
		profile.Doctor = doc
	case models.RolePatient:
		p, err := s.Patients.GetByUserID(userID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch patient document: %w", err)
		}
		profile.Patient = p
	}
	return profile, nil
}

// UpdateProfile applies the non-empty fields. Address lives on the role
// document, the rest on the account record.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*models.Profile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if upd.FirstName != "" {
		set["first_name"] = upd.FirstName
	}
	if upd.LastName != "" {
		set["last_name"] = upd.LastName
	}
	if upd.PhoneNumber != "" {
		set["phone_number"] = upd.PhoneNumber
	}
	if len(set) > 0 {
		set["updated_at"] = time.Now()
		if err := s.Users.UpdateSetDocument(userID, set); err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	if upd.Address != "" {
		switch {
		case profile.Doctor != nil:
			if err := s.Doctors.UpdateAddress(profile.Doctor.ID, upd.Address); err != nil {
				return nil, fmt.Errorf("failed to update address: %w", err)
			}
		case profile.Patient != nil:
			if err := s.Patients.UpdateAddress(profile.Patient.ID, upd.Address); err != nil {
				return nil, fmt.Errorf("failed to update address: %w", err)
			}
		}
	}

	return s.GetProfile(ctx, userID)
}

// SetFCMToken registers the device token push notifications go to.
func (s *DefaultUserService) SetFCMToken(_ context.Context, userID, token string) error {
	if err := s.Users.UpdateSetDocument(userID, bson.M{"fcm_token": token, "updated_at": time.Now()}); err != nil {
		return fmt.Errorf("failed to store FCM token: %w", err)
	}
	return nil
}

// UpdateProfilePhoto uploads the photo and stores its URL on the account.
func (s *DefaultUserService) UpdateProfilePhoto(ctx context.Context, userID, localFilePath string) (string, error) {
	if s.Storage == nil {
		return "", fmt.Errorf("media storage is not configured")
	}
	url, err := s.Storage.UploadProfilePhoto(ctx, localFilePath, userID)
	if err != nil {
		utils.GetLogger().Error("UpdateProfilePhoto: upload failed", zap.String("userID", userID), zap.Error(err))
		return "", err
	}
	if err := s.Users.UpdateSetDocument(userID, bson.M{"profile_image": url, "updated_at": time.Now()}); err != nil {
		return "", fmt.Errorf("failed to store profile image: %w", err)
	}
	return url, nil
}
