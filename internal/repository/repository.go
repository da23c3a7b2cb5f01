package repository

import (
	"context"

	"treinoapp/fitness-tracker/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound       = RepositoryError("not found")
	ErrDuplicateEmail = RepositoryError("email already registered")
	ErrUpdateFailed   = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// OnboardingData is the field bag merged into a user profile when the
// onboarding flow completes. The merge also latches OnboardingComplete.
type OnboardingData struct {
	Gender   domain.Gender
	Age      int
	HeightCm float64
	WeightKg float64
}

// UserRepository defines the interface for interacting with user profiles.
type UserRepository interface {
	Create(ctx context.Context, user *domain.UserProfile) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.UserProfile, error)
	// CompleteOnboarding merges the onboarding fields into the profile
	// document and sets onboardingComplete = true in a single update.
	CompleteOnboarding(ctx context.Context, id primitive.ObjectID, data OnboardingData) error
	SetPhotoURL(ctx context.Context, id primitive.ObjectID, photoURL string) error
}

// WorkoutRepository defines the interface for interacting with workout
// documents. Workouts live in a per-user sub-collection keyed by the
// owning userId; all reads are scoped to that owner.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error)
	ListByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error)
}
