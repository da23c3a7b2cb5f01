package service

import (
	"context"
	"strings"
	"time"

	"treinoapp/fitness-tracker/internal/domain"
	"treinoapp/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutService persists and reads workout routines.
type WorkoutService interface {
	// Create validates the draft and writes the assembled workout in one
	// call. On failure the draft is left untouched so the caller can
	// retry without re-entering exercises.
	Create(ctx context.Context, userID string, draft *Draft) (*domain.Workout, error)
	// List fetches every workout owned by the user. No pagination, no
	// caching; each call re-fetches.
	List(ctx context.Context, userID string) ([]domain.Workout, error)
	// Get fetches a single workout by (user, workout) id pair.
	Get(ctx context.Context, userID, workoutID string) (*domain.Workout, error)
}

type workoutService struct {
	workoutRepo repository.WorkoutRepository
}

// NewWorkoutService creates a new workout service.
func NewWorkoutService(workoutRepo repository.WorkoutRepository) WorkoutService {
	return &workoutService{workoutRepo: workoutRepo}
}

func (s *workoutService) Create(ctx context.Context, userID string, draft *Draft) (*domain.Workout, error) {
	if err := draft.ValidateHeader(); err != nil {
		return nil, err
	}
	if len(draft.Exercises) == 0 {
		return nil, ErrNoExercises
	}

	ownerID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	days := make([]string, len(draft.Days))
	copy(days, draft.Days)
	exercises := make([]domain.WorkoutExercise, len(draft.Exercises))
	copy(exercises, draft.Exercises)

	workout := &domain.Workout{
		UserID:      ownerID,
		Name:        strings.TrimSpace(draft.Name),
		Description: strings.TrimSpace(draft.Description),
		Days:        days,
		Exercises:   exercises,
		CreatedAt:   time.Now().UTC(),
	}

	id, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return nil, err
	}
	workout.ID = id
	return workout, nil
}

func (s *workoutService) List(ctx context.Context, userID string) ([]domain.Workout, error) {
	ownerID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	return s.workoutRepo.ListByUserID(ctx, ownerID)
}

func (s *workoutService) Get(ctx context.Context, userID, workoutID string) (*domain.Workout, error) {
	ownerID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	id, err := primitive.ObjectIDFromHex(workoutID)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	return s.workoutRepo.GetByID(ctx, ownerID, id)
}
