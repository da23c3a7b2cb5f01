package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"treinoapp/fitness-tracker/internal/domain"
	"treinoapp/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrGenderRequired = errors.New("gender is required")
	ErrInvalidGender  = errors.New("gender must be man, woman or unspecified")
	ErrAgeRequired    = errors.New("age is required")
	ErrHeightRequired = errors.New("height is required")
	ErrWeightRequired = errors.New("weight is required")
)

// Accumulator is the growing set of onboarding fields threaded through
// the wizard steps. Each Apply* function takes the accumulator collected
// so far, validates one raw input, and returns the enlarged accumulator.
//
// Validation is an empty-string check only; out-of-range values (a
// negative age, a 3-meter height) pass through unrejected.
type Accumulator struct {
	Gender   domain.Gender
	Age      int
	HeightCm float64
	WeightKg float64
}

// ApplyGender records the gender choice. Unlike the free-text steps the
// input is constrained to the three known values.
func ApplyGender(acc Accumulator, input string) (Accumulator, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return acc, ErrGenderRequired
	}
	g := domain.Gender(input)
	if !domain.ValidGender(g) {
		return acc, ErrInvalidGender
	}
	acc.Gender = g
	return acc, nil
}

// ApplyAge records the age input. Non-numeric input coerces to 0.
func ApplyAge(acc Accumulator, input string) (Accumulator, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return acc, ErrAgeRequired
	}
	acc.Age = int(coerceNumber(input))
	return acc, nil
}

// ApplyHeight records the height input in centimeters.
func ApplyHeight(acc Accumulator, input string) (Accumulator, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return acc, ErrHeightRequired
	}
	acc.HeightCm = coerceNumber(input)
	return acc, nil
}

// ApplyWeight records the weight input in kilograms.
func ApplyWeight(acc Accumulator, input string) (Accumulator, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return acc, ErrWeightRequired
	}
	acc.WeightKg = coerceNumber(input)
	return acc, nil
}

// coerceNumber parses a numeric text input; anything unparsable becomes 0.
func coerceNumber(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// OnboardingService finishes the onboarding wizard.
type OnboardingService interface {
	// Complete merges the accumulated fields into the user's profile in a
	// single update and latches onboardingComplete. On failure nothing is
	// advanced; the caller keeps the accumulator and may retry.
	Complete(ctx context.Context, userID string, acc Accumulator) (*domain.UserProfile, error)
}

type onboardingService struct {
	userRepo repository.UserRepository
}

// NewOnboardingService creates a new onboarding service.
func NewOnboardingService(userRepo repository.UserRepository) OnboardingService {
	return &onboardingService{userRepo: userRepo}
}

func (s *onboardingService) Complete(ctx context.Context, userID string, acc Accumulator) (*domain.UserProfile, error) {
	if acc.Gender == "" {
		return nil, ErrGenderRequired
	}

	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	data := repository.OnboardingData{
		Gender:   acc.Gender,
		Age:      acc.Age,
		HeightCm: acc.HeightCm,
		WeightKg: acc.WeightKg,
	}
	if err := s.userRepo.CompleteOnboarding(ctx, id, data); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}
