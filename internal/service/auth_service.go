package service

import (
	"context"
	"errors"
	"net/mail"
	"sync"
	"time"

	"treinoapp/fitness-tracker/internal/domain"
	"treinoapp/fitness-tracker/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrEmailAlreadyInUse  = errors.New("email already in use")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("no authenticated user")
	ErrHashingFailed      = errors.New("failed to hash password")
	ErrTokenGeneration    = errors.New("failed to generate authentication token")
)

const minPasswordLength = 6

// SessionEventType classifies session-changed notifications.
type SessionEventType string

const (
	SessionSignedIn  SessionEventType = "signed-in"
	SessionSignedOut SessionEventType = "signed-out"
)

// SessionEvent is delivered to session subscribers whenever a user signs
// in or out.
type SessionEvent struct {
	Type   SessionEventType
	UserID string
	Email  string
	At     time.Time
}

// AuthService handles registration, login and session notifications.
type AuthService interface {
	// Register creates the auth identity and its profile document in one
	// step; the profile starts with no photo and onboarding incomplete.
	Register(ctx context.Context, name, email, password string) (*domain.UserProfile, error)
	// Login authenticates and returns a signed JWT plus the user profile.
	Login(ctx context.Context, email, password string) (token string, user *domain.UserProfile, err error)
	// Logout emits the signed-out session event. Tokens are stateless and
	// simply expire; there is no revocation list.
	Logout(ctx context.Context, userID string) error
	// CurrentUser resolves the profile for an authenticated user id.
	CurrentUser(ctx context.Context, userID string) (*domain.UserProfile, error)
	// SessionEvents subscribes to session-changed notifications. The
	// returned cancel func must be called to release the subscription.
	SessionEvents() (<-chan SessionEvent, func())
	GetJWTSecret() string
}

type authService struct {
	userRepo      repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration

	mu          sync.Mutex
	nextSubID   int
	subscribers map[int]chan SessionEvent
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty")
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour * 24
	}
	return &authService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
		subscribers:   map[int]chan SessionEvent{},
	}
}

// Register handles new user registration.
func (s *authService) Register(ctx context.Context, name, email, password string) (*domain.UserProfile, error) {
	if name == "" || email == "" || password == "" {
		return nil, errors.New("name, email and password cannot be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailAlreadyInUse
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	user := &domain.UserProfile{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		// PhotoURL stays empty until the photo step; OnboardingComplete
		// latches true only after the final onboarding step succeeds.
		OnboardingComplete: false,
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		// The unique index closes the race between GetByEmail and Create.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyInUse
		}
		return nil, err
	}
	user.ID = userID

	user.PasswordHash = ""
	return user, nil
}

// Login handles user authentication and JWT generation.
func (s *authService) Login(ctx context.Context, email, password string) (token string, user *domain.UserProfile, err error) {
	if email == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	user, err = s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err = s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	s.publish(SessionEvent{
		Type:   SessionSignedIn,
		UserID: user.ID.Hex(),
		Email:  user.Email,
		At:     time.Now().UTC(),
	})

	user.PasswordHash = ""
	return token, user, nil
}

// Logout emits the signed-out notification for the given user.
func (s *authService) Logout(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	s.publish(SessionEvent{
		Type:   SessionSignedOut,
		UserID: userID,
		At:     time.Now().UTC(),
	})
	return nil
}

// CurrentUser resolves the profile behind an authenticated user id.
func (s *authService) CurrentUser(ctx context.Context, userID string) (*domain.UserProfile, error) {
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

// SessionEvents registers a new subscriber. Events are delivered on a
// buffered channel; a subscriber that falls behind loses events rather
// than blocking publishers.
func (s *authService) SessionEvents() (<-chan SessionEvent, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	ch := make(chan SessionEvent, 8)
	s.subscribers[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subscribers[id]; ok {
			delete(s.subscribers, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (s *authService) publish(ev SessionEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subscribers {
		select {
		case ch <- ev:
		default:
		}
	}
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given user.
func (s *authService) generateJWT(user *domain.UserProfile) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwtClaims{
		UserID: user.ID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "fitness-tracker",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

// GetJWTSecret returns the JWT secret for middleware authentication.
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
