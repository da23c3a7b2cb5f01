package service

import (
	"context"
	"time"

	"treinoapp/fitness-tracker/internal/domain"
	"treinoapp/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ==== In-memory fakes for the repository and storage interfaces ====

type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.UserProfile

	completeErr error
	photoErr    error

	lastOnboarding *repository.OnboardingData
	lastPhotoURL   string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*domain.UserProfile{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.UserProfile) (primitive.ObjectID, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return primitive.NilObjectID, repository.ErrDuplicateEmail
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	r.users[user.ID] = &stored
	return user.ID, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.UserProfile, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.UserProfile, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) CompleteOnboarding(_ context.Context, id primitive.ObjectID, data repository.OnboardingData) error {
	if r.completeErr != nil {
		return r.completeErr
	}
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Gender = data.Gender
	u.Age = data.Age
	u.HeightCm = data.HeightCm
	u.WeightKg = data.WeightKg
	u.OnboardingComplete = true
	r.lastOnboarding = &data
	return nil
}

func (r *fakeUserRepo) SetPhotoURL(_ context.Context, id primitive.ObjectID, photoURL string) error {
	if r.photoErr != nil {
		return r.photoErr
	}
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PhotoURL = photoURL
	r.lastPhotoURL = photoURL
	return nil
}

type fakeWorkoutRepo struct {
	workouts  []*domain.Workout
	createErr error
}

func (r *fakeWorkoutRepo) Create(_ context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	if r.createErr != nil {
		return primitive.NilObjectID, r.createErr
	}
	workout.ID = primitive.NewObjectID()
	stored := *workout
	r.workouts = append(r.workouts, &stored)
	return workout.ID, nil
}

func (r *fakeWorkoutRepo) GetByID(_ context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error) {
	for _, w := range r.workouts {
		if w.ID == workoutID && w.UserID == userID {
			copied := *w
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeWorkoutRepo) ListByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.Workout, error) {
	out := []domain.Workout{}
	for _, w := range r.workouts {
		if w.UserID == userID {
			out = append(out, *w)
		}
	}
	return out, nil
}

type fakeFileStorage struct {
	uploads map[string][]byte

	uploadErr error
	urlErr    error
	deleted   []string
}

func newFakeFileStorage() *fakeFileStorage {
	return &fakeFileStorage{uploads: map[string][]byte{}}
}

func (s *fakeFileStorage) Upload(_ context.Context, objectKey, _ string, data []byte) error {
	if s.uploadErr != nil {
		return s.uploadErr
	}
	s.uploads[objectKey] = data
	return nil
}

func (s *fakeFileStorage) DownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	if s.urlErr != nil {
		return "", s.urlErr
	}
	return "https://blobs.example.com/" + objectKey, nil
}

func (s *fakeFileStorage) DeleteObject(_ context.Context, objectKey string) error {
	s.deleted = append(s.deleted, objectKey)
	delete(s.uploads, objectKey)
	return nil
}
