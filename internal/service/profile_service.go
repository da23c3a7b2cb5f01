package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"treinoapp/fitness-tracker/internal/domain"
	"treinoapp/fitness-tracker/internal/repository"
	"treinoapp/fitness-tracker/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrEmptyPhoto       = errors.New("photo content is empty")
	ErrPhotoTooLarge    = errors.New("photo exceeds the maximum allowed size")
	ErrUnsupportedPhoto = errors.New("photo must be a JPEG or PNG image")
)

// MaxPhotoSize limits uploaded profile photos to 10 MiB.
const MaxPhotoSize = 10 << 20

const storageCleanupTimeout = 10 * time.Second

// ProfileService reads profiles and handles the profile photo step.
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error)
	// UploadPhoto stores the photo bytes in the blob store under a key
	// derived from the user's id, resolves a download URL and merges it
	// into the profile document. Returns the stored URL.
	UploadPhoto(ctx context.Context, userID string, data []byte, contentType string) (string, error)
}

type profileService struct {
	userRepo    repository.UserRepository
	fileStorage storage.FileStorage
}

// NewProfileService creates a new profile service.
func NewProfileService(userRepo repository.UserRepository, fileStorage storage.FileStorage) ProfileService {
	return &profileService{
		userRepo:    userRepo,
		fileStorage: fileStorage,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *profileService) UploadPhoto(ctx context.Context, userID string, data []byte, contentType string) (string, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return "", ErrUnauthenticated
	}
	if len(data) == 0 {
		return "", ErrEmptyPhoto
	}
	if len(data) > MaxPhotoSize {
		return "", ErrPhotoTooLarge
	}

	ext := ".jpg"
	switch contentType {
	case "image/jpeg":
	case "image/png":
		ext = ".png"
	default:
		return "", ErrUnsupportedPhoto
	}

	objectKey := fmt.Sprintf("profiles/%s/%s%s", id.Hex(), uuid.NewString(), ext)

	if err := s.fileStorage.Upload(ctx, objectKey, contentType, data); err != nil {
		return "", err
	}

	downloadURL, err := s.fileStorage.DownloadURL(ctx, objectKey, storage.DefaultDownloadURLExpiry)
	if err != nil {
		s.cleanupOrphan(objectKey)
		return "", err
	}

	if err := s.userRepo.SetPhotoURL(ctx, id, downloadURL); err != nil {
		// The blob already landed; delete it so a failed merge does not
		// leave an orphaned object behind.
		s.cleanupOrphan(objectKey)
		return "", err
	}

	return downloadURL, nil
}

// cleanupOrphan is best-effort: a delete failure is logged and accepted.
func (s *profileService) cleanupOrphan(objectKey string) {
	ctx, cancel := context.WithTimeout(context.Background(), storageCleanupTimeout)
	defer cancel()
	if err := s.fileStorage.DeleteObject(ctx, objectKey); err != nil {
		log.Printf("ERROR: Failed to clean up orphaned photo '%s': %v", objectKey, err)
	}
}
