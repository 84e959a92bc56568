package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"innerventory/cmd/server/testutil"
	"innerventory/internal/services/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	signUpEndpoint = "/api/v1/auth/sign-up"
	signInEndpoint = "/api/v1/auth/sign-in"
	meEndpoint     = "/api/v1/me"
	testJWTSecret  = "this-is-a-super-secret-jwt-key-with-32-plus-chars"
	testEmail      = "dana@example.com"
	testPassword   = "Password123"
)

// MockAuthService mocks the auth service
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.AuthResponse), args.Error(1)
}

func (m *MockAuthService) SignIn(ctx context.Context, req auth.SignInRequest) (*auth.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.AuthResponse), args.Error(1)
}

func (m *MockAuthService) UpdateUser(ctx context.Context, userID bson.ObjectID, req auth.UpdateUser) (*auth.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

// AuthTestSetup contains common test setup data
type AuthTestSetup struct {
	MockService *MockAuthService
	App         *fiber.App
	TestUser    *auth.User
}

// SetupAuthTest wires the auth routes onto a fresh app with a mock service
func SetupAuthTest(t *testing.T) *AuthTestSetup {
	t.Helper()

	mockService := &MockAuthService{}
	app := testutil.CreateTestApp(t)
	v := testutil.CreateTestValidator(t)

	h := NewHandlers(mockService, v)

	v1 := app.Group("/api/v1")
	authGrp := v1.Group("/auth")
	authGrp.Post("/sign-up", h.SignUp)
	authGrp.Post("/sign-in", h.SignIn)

	v1.Patch("/me", testutil.SetupJWTMiddleware(testJWTSecret), h.UpdateProfile)

	now := time.Now().UTC()
	testUser := &auth.User{
		ID:        bson.NewObjectID(),
		Username:  "dreyes",
		Email:     testEmail,
		Role:      auth.RoleVolunteer,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return &AuthTestSetup{
		MockService: mockService,
		App:         app,
		TestUser:    testUser,
	}
}

func TestSignUp(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		setup      func(*AuthTestSetup)
		wantStatus int
	}{
		{
			name: "successful sign-up",
			body: auth.RegisterRequest{Username: "dreyes", Email: testEmail, Password: testPassword},
			setup: func(s *AuthTestSetup) {
				s.MockService.On("Register", mock.Anything, mock.AnythingOfType("auth.RegisterRequest")).
					Return(&auth.AuthResponse{User: s.TestUser, Token: "mock-jwt-token"}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "duplicate email answers 409",
			body: auth.RegisterRequest{Username: "dreyes", Email: testEmail, Password: testPassword},
			setup: func(s *AuthTestSetup) {
				s.MockService.On("Register", mock.Anything, mock.AnythingOfType("auth.RegisterRequest")).
					Return(nil, auth.ErrDuplicate)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "weak password rejected before service",
			body:       auth.RegisterRequest{Username: "dreyes", Email: testEmail, Password: "weak"},
			setup:      func(*AuthTestSetup) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing email rejected before service",
			body:       auth.RegisterRequest{Username: "dreyes", Password: testPassword},
			setup:      func(*AuthTestSetup) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := SetupAuthTest(t)
			tt.setup(s)

			req := testutil.CreateJSONRequest(http.MethodPost, signUpEndpoint, tt.body)
			resp, err := s.App.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			s.MockService.AssertExpectations(t)
		})
	}
}

func TestSignIn(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		setup      func(*AuthTestSetup)
		wantStatus int
		wantToken  bool
	}{
		{
			name: "successful sign-in",
			body: auth.SignInRequest{Email: testEmail, Password: testPassword},
			setup: func(s *AuthTestSetup) {
				s.MockService.On("SignIn", mock.Anything, mock.AnythingOfType("auth.SignInRequest")).
					Return(&auth.AuthResponse{User: s.TestUser, Token: "mock-jwt-token"}, nil)
			},
			wantStatus: http.StatusOK,
			wantToken:  true,
		},
		{
			name: "bad credentials answer 401",
			body: auth.SignInRequest{Email: testEmail, Password: "wrong-Password1"},
			setup: func(s *AuthTestSetup) {
				s.MockService.On("SignIn", mock.Anything, mock.AnythingOfType("auth.SignInRequest")).
					Return(nil, auth.ErrInvalidCredentials)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed email rejected before service",
			body:       auth.SignInRequest{Email: "not-an-email", Password: testPassword},
			setup:      func(*AuthTestSetup) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := SetupAuthTest(t)
			tt.setup(s)

			req := testutil.CreateJSONRequest(http.MethodPost, signInEndpoint, tt.body)
			resp, err := s.App.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantToken {
				var body auth.AuthResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, "mock-jwt-token", body.Token)
			}
			s.MockService.AssertExpectations(t)
		})
	}
}

func TestUpdateProfile(t *testing.T) {
	s := SetupAuthTest(t)

	token, err := testutil.CreateTestJWT(s.TestUser.ID.Hex(), testEmail, string(auth.RoleVolunteer), []byte(testJWTSecret), time.Hour)
	require.NoError(t, err)

	s.MockService.On("UpdateUser", mock.Anything, s.TestUser.ID, mock.AnythingOfType("auth.UpdateUser")).
		Return(s.TestUser, nil)

	first := "Dana"
	req := testutil.CreateAuthenticatedRequest(http.MethodPatch, meEndpoint, auth.UpdateUser{FirstName: &first}, token)
	resp, err := s.App.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	s.MockService.AssertExpectations(t)
}

func TestUpdateProfile_RequiresToken(t *testing.T) {
	s := SetupAuthTest(t)

	first := "Dana"
	req := testutil.CreateJSONRequest(http.MethodPatch, meEndpoint, auth.UpdateUser{FirstName: &first})
	resp, err := s.App.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	s.MockService.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything, mock.Anything)
}
