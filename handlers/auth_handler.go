package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/storyarchive/content-api/models"
	"github.com/storyarchive/content-api/utils"
	"go.uber.org/zap"
)

// SignupRequest represents a registration request. Passwords are compared
// exactly; no length policy beyond being non-empty.
type SignupRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse carries a principal's public fields only; the password hash
// never appears in a response body.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt string    `json:"created_at"`
}

// LoginResponse carries the signed session token
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// AuthService defines the credential operations the handler depends on
type AuthService interface {
	// Register creates a new principal from validated credentials
	Register(ctx context.Context, email, password, passwordConfirmation string) (*models.User, error)

	// Login verifies credentials and returns a signed session token
	Login(ctx context.Context, email, password string) (string, error)
}

// AuthHandler handles registration and login HTTP requests
type AuthHandler struct {
	auth   AuthService
	logger *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		logger: logger,
	}
}

// HandleSignup handles POST /signup
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	user, err := h.auth.Register(r.Context(), req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	response := UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.UTC().Format(timeFormat),
	}

	if err := utils.WriteCreated(w, response); err != nil {
		h.logger.Error("failed to write signup response", zap.Error(err))
	}
}

// HandleLogin handles POST /login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	response := LoginResponse{
		Message: "Login successful.",
		Token:   token,
	}

	if err := utils.WriteOK(w, response); err != nil {
		h.logger.Error("failed to write login response", zap.Error(err))
	}
}
