package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Maria Silva", "maria@example.com", "password123")
	require.NoError(t, err)
	assert.False(t, user.ID.IsZero())
	assert.Equal(t, "Maria Silva", user.Name)
	assert.Equal(t, "maria@example.com", user.Email)
	assert.Empty(t, user.PasswordHash)
	assert.False(t, user.OnboardingComplete)
	assert.Empty(t, user.PhotoURL)

	token, logged, err := svc.Login(ctx, "maria@example.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, user.ID, logged.ID)
	assert.Empty(t, logged.PasswordHash)

	// The token must carry the user id and verify against the secret.
	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, "fitness-tracker", claims.Issuer)
}

func TestRegisterValidation(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Maria", "not-an-email", "password123")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.Register(ctx, "Maria", "maria@example.com", "12345")
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = svc.Register(ctx, "", "maria@example.com", "password123")
	assert.Error(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Maria", "maria@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Outra Maria", "maria@example.com", "different456")
	assert.ErrorIs(t, err, ErrEmailAlreadyInUse)
}

func TestLoginWrongCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Maria", "maria@example.com", "password123")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "maria@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCurrentUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Maria", "maria@example.com", "password123")
	require.NoError(t, err)

	got, err := svc.CurrentUser(ctx, user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
	assert.Empty(t, got.PasswordHash)

	_, err = svc.CurrentUser(ctx, "garbage")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestSessionEvents(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Maria", "maria@example.com", "password123")
	require.NoError(t, err)

	events, cancel := svc.SessionEvents()
	defer cancel()

	_, _, err = svc.Login(ctx, "maria@example.com", "password123")
	require.NoError(t, err)

	select {
	case ev := <-events:
		assert.Equal(t, SessionSignedIn, ev.Type)
		assert.Equal(t, user.ID.Hex(), ev.UserID)
		assert.Equal(t, "maria@example.com", ev.Email)
		assert.False(t, ev.At.IsZero())
	default:
		t.Fatal("expected a signed-in event")
	}

	require.NoError(t, svc.Logout(ctx, user.ID.Hex()))
	select {
	case ev := <-events:
		assert.Equal(t, SessionSignedOut, ev.Type)
		assert.Equal(t, user.ID.Hex(), ev.UserID)
	default:
		t.Fatal("expected a signed-out event")
	}
}

func TestSessionEventsCancelStopsDelivery(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)

	events, cancel := svc.SessionEvents()
	cancel()
	// Cancel twice is safe.
	cancel()

	require.NoError(t, svc.Logout(context.Background(), "some-user"))

	// The channel is closed and drained; no event was delivered after cancel.
	ev, open := <-events
	assert.False(t, open)
	assert.Zero(t, ev)
}

func TestLogoutRequiresUser(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), "test-secret", time.Hour)
	assert.ErrorIs(t, svc.Logout(context.Background(), ""), ErrUnauthenticated)
}
