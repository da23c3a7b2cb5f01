package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"treinoapp/fitness-tracker/internal/domain"
	"treinoapp/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeAuthService struct {
	user        *domain.UserProfile
	token       string
	registerErr error
	loginErr    error

	loggedOut []string
}

func (s *fakeAuthService) Register(_ context.Context, name, email, _ string) (*domain.UserProfile, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &domain.UserProfile{ID: primitive.NewObjectID(), Name: name, Email: email}, nil
}

func (s *fakeAuthService) Login(context.Context, string, string) (string, *domain.UserProfile, error) {
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return s.token, s.user, nil
}

func (s *fakeAuthService) Logout(_ context.Context, userID string) error {
	s.loggedOut = append(s.loggedOut, userID)
	return nil
}

func (s *fakeAuthService) CurrentUser(context.Context, string) (*domain.UserProfile, error) {
	if s.user == nil {
		return nil, service.ErrUnauthenticated
	}
	return s.user, nil
}

func (s *fakeAuthService) SessionEvents() (<-chan service.SessionEvent, func()) {
	ch := make(chan service.SessionEvent)
	return ch, func() { close(ch) }
}

func (s *fakeAuthService) GetJWTSecret() string { return "handler-test-secret" }

func authRouter(svc service.AuthService, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewAuthHandler(svc)

	router.POST("/auth/register", handler.Register)
	router.POST("/auth/login", handler.Login)

	authed := router.Group("/", func(c *gin.Context) {
		c.Set(ContextUserIDKey, userID)
		c.Next()
	})
	authed.POST("/auth/logout", handler.Logout)
	authed.GET("/me", handler.Me)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterHandler(t *testing.T) {
	router := authRouter(&fakeAuthService{}, "")

	w := postJSON(router, "/auth/register", `{"name": "Maria", "email": "maria@example.com", "password": "password123"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Maria", resp.Name)
	assert.Equal(t, "maria@example.com", resp.Email)
	assert.False(t, resp.OnboardingComplete)
}

func TestRegisterHandlerErrors(t *testing.T) {
	router := authRouter(&fakeAuthService{registerErr: service.ErrEmailAlreadyInUse}, "")
	w := postJSON(router, "/auth/register", `{"name": "Maria", "email": "maria@example.com", "password": "password123"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	router = authRouter(&fakeAuthService{registerErr: service.ErrWeakPassword}, "")
	w = postJSON(router, "/auth/register", `{"name": "Maria", "email": "maria@example.com", "password": "12345"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Binding rejects a syntactically invalid email before the service runs.
	router = authRouter(&fakeAuthService{}, "")
	w = postJSON(router, "/auth/register", `{"name": "Maria", "email": "not-an-email", "password": "password123"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginHandler(t *testing.T) {
	user := &domain.UserProfile{ID: primitive.NewObjectID(), Name: "Maria", Email: "maria@example.com"}
	router := authRouter(&fakeAuthService{user: user, token: "signed-token"}, "")

	w := postJSON(router, "/auth/login", `{"email": "maria@example.com", "password": "password123"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "signed-token", resp.Token)
	assert.Equal(t, "maria@example.com", resp.User.Email)
}

func TestLoginHandlerInvalidCredentials(t *testing.T) {
	router := authRouter(&fakeAuthService{loginErr: service.ErrInvalidCredentials}, "")
	w := postJSON(router, "/auth/login", `{"email": "maria@example.com", "password": "wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutHandler(t *testing.T) {
	svc := &fakeAuthService{}
	userID := primitive.NewObjectID().Hex()
	router := authRouter(svc, userID)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{userID}, svc.loggedOut)
}

func TestMeHandler(t *testing.T) {
	user := &domain.UserProfile{ID: primitive.NewObjectID(), Name: "Maria", Email: "maria@example.com"}
	router := authRouter(&fakeAuthService{user: user}, user.ID.Hex())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, user.ID.Hex(), resp.ID)
}

func TestMeHandlerUnauthenticated(t *testing.T) {
	router := authRouter(&fakeAuthService{}, primitive.NewObjectID().Hex())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
