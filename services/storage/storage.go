// Package storage uploads user media to Cloudinary.
package storage

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const profileFolder = "medibook/profiles"

// StorageService stores and removes uploaded media.
type StorageService interface {
	// UploadProfilePhoto stores a local file and returns its public URL.
	UploadProfilePhoto(ctx context.Context, localFilePath, userID string) (string, error)
	DeleteFile(ctx context.Context, publicID string) error
}

// CloudinaryStorage is the production StorageService.
type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStorage(cld *cloudinary.Cloudinary) *CloudinaryStorage {
	return &CloudinaryStorage{cld: cld}
}

// UploadProfilePhoto overwrites the user's previous photo: the public ID is
// derived from the user ID so re-uploads replace rather than accumulate.
func (s *CloudinaryStorage) UploadProfilePhoto(ctx context.Context, localFilePath, userID string) (string, error) {
	overwrite := true
	result, err := s.cld.Upload.Upload(ctx, localFilePath, uploader.UploadParams{
		Folder:    profileFolder,
		PublicID:  userID,
		Overwrite: &overwrite,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload profile photo: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("upload returned no URL")
	}
	return result.SecureURL, nil
}

func (s *CloudinaryStorage) DeleteFile(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
