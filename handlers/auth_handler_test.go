package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/storyarchive/content-api/models"
	"github.com/storyarchive/content-api/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, email, password, passwordConfirmation string) (*models.User, error) {
	args := m.Called(ctx, email, password, passwordConfirmation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestAuthHandler_HandleSignup(t *testing.T) {
	t.Run("successful signup returns 201 without the hash", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		handler := NewAuthHandler(mockAuth, zap.NewNop())

		user := models.NewUser("a@x.com", "$2a$10$hash")
		mockAuth.On("Register", mock.Anything, "a@x.com", "pw123", "pw123").Return(user, nil)

		rec := postJSON(t, handler.HandleSignup, "/signup", SignupRequest{
			Email:           "a@x.com",
			Password:        "pw123",
			ConfirmPassword: "pw123",
		})

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.NotContains(t, rec.Body.String(), "$2a$10$hash")
		assert.NotContains(t, rec.Body.String(), "password_hash")

		var response struct {
			Data UserResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, user.ID, response.Data.ID)
		assert.Equal(t, "a@x.com", response.Data.Email)
		mockAuth.AssertExpectations(t)
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		handler := NewAuthHandler(mockAuth, zap.NewNop())

		req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewBufferString("{not json"))
		rec := httptest.NewRecorder()
		handler.HandleSignup(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockAuth.AssertNotCalled(t, "Register")
	})

	t.Run("missing fields return 400 with field details", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		handler := NewAuthHandler(mockAuth, zap.NewNop())

		rec := postJSON(t, handler.HandleSignup, "/signup", SignupRequest{Email: "a@x.com"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var response ErrorResponseBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, "bad_request", response.Error)
		assert.Contains(t, response.Details, "Password")
		mockAuth.AssertNotCalled(t, "Register")
	})

	t.Run("invalid email format returns 400", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		handler := NewAuthHandler(mockAuth, zap.NewNop())

		rec := postJSON(t, handler.HandleSignup, "/signup", SignupRequest{
			Email:           "not-an-email",
			Password:        "pw123",
			ConfirmPassword: "pw123",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockAuth.AssertNotCalled(t, "Register")
	})

	t.Run("password mismatch returns 400", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		handler := NewAuthHandler(mockAuth, zap.NewNop())

		mockAuth.On("Register", mock.Anything, "a@x.com", "pw123", "pw456").
			Return(nil, services.ErrPasswordMismatch)

		rec := postJSON(t, handler.HandleSignup, "/signup", SignupRequest{
			Email:           "a@x.com",
			Password:        "pw123",
			ConfirmPassword: "pw456",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate email returns 409", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		handler := NewAuthHandler(mockAuth, zap.NewNop())

		mockAuth.On("Register", mock.Anything, "a@x.com", "pw123", "pw123").
			Return(nil, services.ErrEmailTaken)

		rec := postJSON(t, handler.HandleSignup, "/signup", SignupRequest{
			Email:           "a@x.com",
			Password:        "pw123",
			ConfirmPassword: "pw123",
		})

		assert.Equal(t, http.StatusConflict, rec.Code)

		var response ErrorResponseBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, "conflict", response.Error)
	})

	t.Run("store failure returns 500 with generic message", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		handler := NewAuthHandler(mockAuth, zap.NewNop())

		mockAuth.On("Register", mock.Anything, "a@x.com", "pw123", "pw123").
			Return(nil, services.WrapInternal("store unreachable", assert.AnError))

		rec := postJSON(t, handler.HandleSignup, "/signup", SignupRequest{
			Email:           "a@x.com",
			Password:        "pw123",
			ConfirmPassword: "pw123",
		})

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "store unreachable")
	})
}

func TestAuthHandler_HandleLogin(t *testing.T) {
	t.Run("successful login returns token", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		handler := NewAuthHandler(mockAuth, zap.NewNop())

		mockAuth.On("Login", mock.Anything, "a@x.com", "pw123").
			Return("signed.session.token", nil)

		rec := postJSON(t, handler.HandleLogin, "/login", LoginRequest{
			Email:    "a@x.com",
			Password: "pw123",
		})

		assert.Equal(t, http.StatusOK, rec.Code)

		var response struct {
			Data LoginResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, "Login successful.", response.Data.Message)
		assert.Equal(t, "signed.session.token", response.Data.Token)
	})

	t.Run("unknown email returns 401", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		handler := NewAuthHandler(mockAuth, zap.NewNop())

		mockAuth.On("Login", mock.Anything, "nobody@x.com", "pw123").
			Return("", services.ErrUserNotFound)

		rec := postJSON(t, handler.HandleLogin, "/login", LoginRequest{
			Email:    "nobody@x.com",
			Password: "pw123",
		})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong password returns 401", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		handler := NewAuthHandler(mockAuth, zap.NewNop())

		mockAuth.On("Login", mock.Anything, "a@x.com", "wrong").
			Return("", services.ErrInvalidCredentials)

		rec := postJSON(t, handler.HandleLogin, "/login", LoginRequest{
			Email:    "a@x.com",
			Password: "wrong",
		})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing fields return 400", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		handler := NewAuthHandler(mockAuth, zap.NewNop())

		rec := postJSON(t, handler.HandleLogin, "/login", LoginRequest{Email: "a@x.com"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockAuth.AssertNotCalled(t, "Login")
	})
}

// ErrorResponseBody mirrors the error payload shape for assertions
type ErrorResponseBody struct {
	Error   string                 `json:"error"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details"`
}

func TestTimeFormat(t *testing.T) {
	// Response timestamps use RFC3339
	formatted := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).Format(timeFormat)
	assert.Equal(t, "2025-06-01T12:00:00Z", formatted)
}
