// Package auth implements credential issuance and session authentication:
// account registration, password verification, and signed session tokens.
package auth

import (
	"context"
	"errors"

	"github.com/storyarchive/content-api/models"
	"github.com/storyarchive/content-api/repositories"
	"github.com/storyarchive/content-api/services"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Service orchestrates registration and login against an injected credential
// store and token manager. Each call is a single independent request/response
// exchange; no state is carried between calls.
type Service struct {
	users  repositories.UserRepository
	tokens *TokenManager
	cost   int
	logger *zap.Logger
}

// NewService creates an auth service. cost is the bcrypt work factor; values
// outside bcrypt's accepted range are clamped to the default (10).
func NewService(users repositories.UserRepository, tokens *TokenManager, cost int, logger *zap.Logger) *Service {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Service{
		users:  users,
		tokens: tokens,
		cost:   cost,
		logger: logger,
	}
}

// Register validates the input, hashes the password, and persists a new
// principal. The email is compared exactly as given: no trimming or case
// folding. The store's unique index is the final authority on conflicts, so
// a concurrent registration between the pre-check and the insert still
// surfaces as a conflict error.
func (s *Service) Register(ctx context.Context, email, password, passwordConfirmation string) (*models.User, error) {
	if email == "" {
		return nil, services.ErrEmailRequired
	}
	if password == "" {
		return nil, services.NewDomainError(services.ErrorTypeValidation, "password is required", nil)
	}
	if password != passwordConfirmation {
		return nil, services.ErrPasswordMismatch
	}

	// Pre-check for a friendlier conflict response; the insert below remains
	// safe without it.
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil, services.ErrEmailTaken
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, services.WrapInternal("failed to check existing user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, services.WrapInternal("failed to hash password", err)
	}

	user := models.NewUser(email, string(hash))
	if err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateEmail):
			// Lost the race against a concurrent registration.
			return nil, services.ErrEmailTaken
		case errors.Is(err, repositories.ErrInvalidRecord):
			return nil, services.NewDomainError(services.ErrorTypeValidation, "invalid user record", err)
		default:
			return nil, services.WrapInternal("failed to create user", err)
		}
	}

	s.logger.Info("user registered", zap.String("id", user.ID.String()), zap.String("email", user.Email))
	return user, nil
}

// Login verifies the credentials and returns a signed session token. An
// unknown email and a wrong password both report the unauthorized kind; the
// distinct error values are internal only.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.logger.Debug("login for unknown email")
			return "", services.ErrUserNotFound
		}
		return "", services.WrapInternal("failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Debug("password mismatch", zap.String("id", user.ID.String()))
		return "", services.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", services.WrapInternal("failed to issue token", err)
	}

	s.logger.Info("user logged in", zap.String("id", user.ID.String()))
	return token, nil
}

// VerifyToken validates a session token and returns the principal ID it
// asserts. Used by the middleware protecting content mutations.
func (s *Service) VerifyToken(tokenString string) (string, error) {
	userID, err := s.tokens.Verify(tokenString)
	if err != nil {
		return "", err
	}
	return userID.String(), nil
}
