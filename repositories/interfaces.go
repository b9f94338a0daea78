package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storyarchive/content-api/models"
)

// Sentinel errors returned by repositories. Services translate these into
// domain errors at their boundary; nothing storage-specific leaks past them.
var (
	// ErrNotFound is returned when a record does not exist. For credential
	// lookups absence is a normal result, not a failure.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when an insert collides with the UNIQUE
	// index on users.email. The index, not the caller's prior lookup, is the
	// sole authority on whether the email is taken.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidRecord is returned when a record is missing required fields.
	ErrInvalidRecord = errors.New("invalid record")
)

// UserRepository handles principal credential records. Create must be atomic
// with respect to email uniqueness regardless of any preceding GetByEmail
// check; credentials are immutable once written, so no update or delete is
// exposed.
type UserRepository interface {
	// Create persists a new user. Returns ErrDuplicateEmail if the email is
	// already registered and ErrInvalidRecord if email or hash is empty.
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID. Returns ErrNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetByEmail retrieves a user by its exact email as stored.
	// Returns ErrNotFound when absent.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// ContentRepository handles story entry data operations
type ContentRepository interface {
	// Create creates a new content entry
	Create(ctx context.Context, content *models.Content) error

	// GetByID retrieves a content entry by ID. Returns ErrNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Content, error)

	// List retrieves all content entries, newest first
	List(ctx context.Context) ([]*models.Content, error)

	// Update updates a content entry. Returns ErrNotFound when absent.
	Update(ctx context.Context, content *models.Content) error

	// Delete deletes a content entry. Returns ErrNotFound when absent.
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	Users    UserRepository
	Contents ContentRepository
}
